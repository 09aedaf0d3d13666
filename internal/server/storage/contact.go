package storage

import (
	"context"

	"github.com/iudanet/phonevault/internal/models"
)

// ContactStorage defines interface for contact persistence.
// Every operation is scoped by the owning user id: a contact id alone
// is never sufficient to reach a row.
type ContactStorage interface {
	// ListContacts returns contacts of the owner ordered by name.
	// Non-empty search filters by case-insensitive substring match
	// over name, phone and address.
	// Returns empty slice if no contacts found
	ListContacts(ctx context.Context, ownerID int64, search string) ([]*models.Contact, error)

	// GetContact retrieves a single contact owned by ownerID
	// Returns ErrContactNotFound if no row matches (id, ownerID)
	GetContact(ctx context.Context, ownerID, id int64) (*models.Contact, error)

	// CreateContact inserts a new contact and returns the generated id
	CreateContact(ctx context.Context, contact *models.Contact) (int64, error)

	// UpdateContact replaces name, phone and address of the contact.
	// Full-replace semantics: address is overwritten, not merged.
	// Returns ErrContactNotFound if no row matches (id, ownerID)
	UpdateContact(ctx context.Context, contact *models.Contact) error

	// DeleteContact removes the contact owned by ownerID
	// Returns ErrContactNotFound if no row matches (id, ownerID)
	DeleteContact(ctx context.Context, ownerID, id int64) error
}
