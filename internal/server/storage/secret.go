package storage

import (
	"context"

	"github.com/iudanet/phonevault/internal/models"
)

// SecretStorage defines interface for secret persistence.
// Same owner-scoping rules as ContactStorage.
type SecretStorage interface {
	// ListSecrets returns secret summaries of the owner ordered by
	// creation time descending (most recent first).
	// Non-empty search filters by case-insensitive substring match over
	// title, username and url; non-empty category filters by exact match.
	// The projection never includes password, api_key or notes.
	// Returns empty slice if no secrets found
	ListSecrets(ctx context.Context, ownerID int64, search, category string) ([]*models.SecretSummary, error)

	// GetSecret retrieves the full secret record owned by ownerID,
	// including sensitive fields
	// Returns ErrSecretNotFound if no row matches (id, ownerID)
	GetSecret(ctx context.Context, ownerID, id int64) (*models.Secret, error)

	// CreateSecret inserts a new secret and returns the generated id
	CreateSecret(ctx context.Context, secret *models.Secret) (int64, error)

	// UpdateSecret replaces all mutable fields of the secret and
	// bumps updated_at. Full-replace semantics.
	// Returns ErrSecretNotFound if no row matches (id, ownerID)
	UpdateSecret(ctx context.Context, secret *models.Secret) error

	// DeleteSecret removes the secret owned by ownerID
	// Returns ErrSecretNotFound if no row matches (id, ownerID)
	DeleteSecret(ctx context.Context, ownerID, id int64) error
}
