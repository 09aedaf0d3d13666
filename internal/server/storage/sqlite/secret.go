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

// ListSecrets returns secret summaries of the owner, most recent first.
// Проекция намеренно не включает password, api_key и notes:
// списки никогда не раскрывают sensitive поля
func (s *Storage) ListSecrets(ctx context.Context, ownerID int64, search, category string) ([]*models.SecretSummary, error) {
	query := `
		SELECT id, title, category, username, url, created_at
		FROM secrets
		WHERE user_id = ?
	`
	args := []any{ownerID}

	if search != "" {
		query += ` AND (instr(lower(title), lower(?)) > 0
			OR instr(lower(username), lower(?)) > 0
			OR instr(lower(url), lower(?)) > 0)`
		args = append(args, search, search, search)
	}

	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query secrets: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	secrets := make([]*models.SecretSummary, 0)

	for rows.Next() {
		secret := &models.SecretSummary{}
		var createdAt int64

		err := rows.Scan(
			&secret.ID,
			&secret.Title,
			&secret.Category,
			&secret.Username,
			&secret.URL,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan secret: %w", err)
		}

		secret.CreatedAt = time.Unix(createdAt, 0)
		secrets = append(secrets, secret)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return secrets, nil
}

// GetSecret retrieves the full secret record owned by ownerID,
// including sensitive fields
func (s *Storage) GetSecret(ctx context.Context, ownerID, id int64) (*models.Secret, error) {
	query := `
		SELECT id, user_id, title, category, username, password, api_key, url, notes, created_at, updated_at
		FROM secrets
		WHERE id = ? AND user_id = ?
	`

	secret := &models.Secret{}
	var createdAt, updatedAt int64

	err := s.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&secret.ID,
		&secret.UserID,
		&secret.Title,
		&secret.Category,
		&secret.Username,
		&secret.Password,
		&secret.APIKey,
		&secret.URL,
		&secret.Notes,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSecretNotFound
		}
		return nil, fmt.Errorf("failed to get secret: %w", err)
	}

	secret.CreatedAt = time.Unix(createdAt, 0)
	secret.UpdatedAt = time.Unix(updatedAt, 0)

	return secret, nil
}

// CreateSecret inserts a new secret and returns the generated id
func (s *Storage) CreateSecret(ctx context.Context, secret *models.Secret) (int64, error) {
	query := `
		INSERT INTO secrets (user_id, title, category, username, password, api_key, url, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		secret.UserID,
		secret.Title,
		secret.Category,
		secret.Username,
		secret.Password,
		secret.APIKey,
		secret.URL,
		secret.Notes,
		secret.CreatedAt.Unix(),
		secret.UpdatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert secret: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

// UpdateSecret replaces all mutable fields of the secret (full replace)
// and bumps updated_at
func (s *Storage) UpdateSecret(ctx context.Context, secret *models.Secret) error {
	query := `
		UPDATE secrets
		SET title = ?, category = ?, username = ?, password = ?, api_key = ?, url = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		secret.Title,
		secret.Category,
		secret.Username,
		secret.Password,
		secret.APIKey,
		secret.URL,
		secret.Notes,
		secret.UpdatedAt.Unix(),
		secret.ID,
		secret.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update secret: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrSecretNotFound
	}

	return nil
}

// DeleteSecret removes the secret owned by ownerID
func (s *Storage) DeleteSecret(ctx context.Context, ownerID, id int64) error {
	query := `DELETE FROM secrets WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete secret: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrSecretNotFound
	}

	return nil
}
