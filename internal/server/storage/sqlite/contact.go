package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/phonevault/internal/models"
	"github.com/iudanet/phonevault/internal/server/storage"
)

// ListContacts returns contacts of the owner ordered by name,
// optionally filtered by case-insensitive substring search
func (s *Storage) ListContacts(ctx context.Context, ownerID int64, search string) ([]*models.Contact, error) {
	query := `
		SELECT id, user_id, name, phone, address, created_at
		FROM contacts
		WHERE user_id = ?
	`
	args := []any{ownerID}

	if search != "" {
		// instr по lower() вместо LIKE: не требует экранирования % и _
		query += ` AND (instr(lower(name), lower(?)) > 0
			OR instr(lower(phone), lower(?)) > 0
			OR instr(lower(address), lower(?)) > 0)`
		args = append(args, search, search, search)
	}

	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	contacts := make([]*models.Contact, 0)

	for rows.Next() {
		contact := &models.Contact{}
		var createdAt int64

		err := rows.Scan(
			&contact.ID,
			&contact.UserID,
			&contact.Name,
			&contact.Phone,
			&contact.Address,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}

		contact.CreatedAt = time.Unix(createdAt, 0)
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return contacts, nil
}

// GetContact retrieves a single contact owned by ownerID
func (s *Storage) GetContact(ctx context.Context, ownerID, id int64) (*models.Contact, error) {
	query := `
		SELECT id, user_id, name, phone, address, created_at
		FROM contacts
		WHERE id = ? AND user_id = ?
	`

	contact := &models.Contact{}
	var createdAt int64

	err := s.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&contact.ID,
		&contact.UserID,
		&contact.Name,
		&contact.Phone,
		&contact.Address,
		&createdAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	contact.CreatedAt = time.Unix(createdAt, 0)

	return contact, nil
}

// CreateContact inserts a new contact and returns the generated id
func (s *Storage) CreateContact(ctx context.Context, contact *models.Contact) (int64, error) {
	query := `
		INSERT INTO contacts (user_id, name, phone, address, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		contact.UserID,
		contact.Name,
		contact.Phone,
		contact.Address,
		contact.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert contact: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

// UpdateContact replaces name, phone and address of the contact (full replace)
func (s *Storage) UpdateContact(ctx context.Context, contact *models.Contact) error {
	query := `
		UPDATE contacts
		SET name = ?, phone = ?, address = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		contact.Name,
		contact.Phone,
		contact.Address,
		contact.ID,
		contact.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrContactNotFound
	}

	return nil
}

// DeleteContact removes the contact owned by ownerID
func (s *Storage) DeleteContact(ctx context.Context, ownerID, id int64) error {
	query := `DELETE FROM contacts WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrContactNotFound
	}

	return nil
}
