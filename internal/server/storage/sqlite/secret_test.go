package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/phonevault/internal/models"
	"github.com/iudanet/phonevault/internal/server/storage"
)

// createTestSecret inserts a secret and returns its id
func createTestSecret(t *testing.T, ctx context.Context, s *Storage, ownerID int64, secret *models.Secret) int64 {
	t.Helper()

	secret.UserID = ownerID
	if secret.Category == "" {
		secret.Category = "general"
	}
	if secret.CreatedAt.IsZero() {
		secret.CreatedAt = time.Now()
	}
	if secret.UpdatedAt.IsZero() {
		secret.UpdatedAt = secret.CreatedAt
	}

	id, err := s.CreateSecret(ctx, secret)
	require.NoError(t, err)

	return id
}

func TestSecretStorage_GetSecret_FullRecord(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ownerID := createTestUser(t, ctx, s, "secret_owner")

	id := createTestSecret(t, ctx, s, ownerID, &models.Secret{
		Title:    "GitHub",
		Category: "dev",
		Username: "octocat",
		Password: "hunter2",
		APIKey:   "ghp_abc123",
		URL:      "https://github.com",
		Notes:    "personal account",
	})

	secret, err := s.GetSecret(ctx, ownerID, id)
	require.NoError(t, err)

	// getOne возвращает все поля, включая sensitive
	assert.Equal(t, "GitHub", secret.Title)
	assert.Equal(t, "dev", secret.Category)
	assert.Equal(t, "octocat", secret.Username)
	assert.Equal(t, "hunter2", secret.Password)
	assert.Equal(t, "ghp_abc123", secret.APIKey)
	assert.Equal(t, "https://github.com", secret.URL)
	assert.Equal(t, "personal account", secret.Notes)
}

func TestSecretStorage_ListProjection(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ownerID := createTestUser(t, ctx, s, "projection")

	createTestSecret(t, ctx, s, ownerID, &models.Secret{
		Title:    "Bank",
		Username: "client1",
		Password: "super-secret",
		APIKey:   "key-123",
		Notes:    "pin 0000",
		URL:      "https://bank.example",
	})

	secrets, err := s.ListSecrets(ctx, ownerID, "", "")
	require.NoError(t, err)
	require.Len(t, secrets, 1)

	// Summary не содержит полей password/api_key/notes вообще,
	// только безопасную проекцию
	summary := secrets[0]
	assert.Equal(t, "Bank", summary.Title)
	assert.Equal(t, "client1", summary.Username)
	assert.Equal(t, "https://bank.example", summary.URL)
}

func TestSecretStorage_ListOrderedByCreatedAtDesc(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ownerID := createTestUser(t, ctx, s, "ordering")

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"oldest", "middle", "newest"} {
		createTestSecret(t, ctx, s, ownerID, &models.Secret{
			Title:     title,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	secrets, err := s.ListSecrets(ctx, ownerID, "", "")
	require.NoError(t, err)
	require.Len(t, secrets, 3)
	assert.Equal(t, "newest", secrets[0].Title)
	assert.Equal(t, "oldest", secrets[2].Title)
}

func TestSecretStorage_ListFilters(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ownerID := createTestUser(t, ctx, s, "filters")

	createTestSecret(t, ctx, s, ownerID, &models.Secret{Title: "AWS prod", Category: "work", Username: "admin"})
	createTestSecret(t, ctx, s, ownerID, &models.Secret{Title: "Netflix", Category: "home", URL: "https://netflix.com"})

	// Substring search по title, case-insensitive
	secrets, err := s.ListSecrets(ctx, ownerID, "aws", "")
	require.NoError(t, err)
	require.Len(t, secrets, 1)
	assert.Equal(t, "AWS prod", secrets[0].Title)

	// Search по url
	secrets, err = s.ListSecrets(ctx, ownerID, "netflix.com", "")
	require.NoError(t, err)
	require.Len(t, secrets, 1)
	assert.Equal(t, "Netflix", secrets[0].Title)

	// Category exact match
	secrets, err = s.ListSecrets(ctx, ownerID, "", "work")
	require.NoError(t, err)
	require.Len(t, secrets, 1)
	assert.Equal(t, "AWS prod", secrets[0].Title)

	// Category не матчится по подстроке
	secrets, err = s.ListSecrets(ctx, ownerID, "", "wor")
	require.NoError(t, err)
	assert.Empty(t, secrets)

	// Search + category вместе
	secrets, err = s.ListSecrets(ctx, ownerID, "admin", "home")
	require.NoError(t, err)
	assert.Empty(t, secrets)
}

func TestSecretStorage_UpdateFullReplace(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ownerID := createTestUser(t, ctx, s, "updater")

	id := createTestSecret(t, ctx, s, ownerID, &models.Secret{
		Title:    "Old title",
		Username: "olduser",
		Password: "oldpass",
		Notes:    "old notes",
	})

	// Full replace: не переданные опциональные поля затираются
	err := s.UpdateSecret(ctx, &models.Secret{
		ID:        id,
		UserID:    ownerID,
		Title:     "New title",
		Category:  "general",
		Password:  "newpass",
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)

	secret, err := s.GetSecret(ctx, ownerID, id)
	require.NoError(t, err)
	assert.Equal(t, "New title", secret.Title)
	assert.Equal(t, "newpass", secret.Password)
	assert.Empty(t, secret.Username)
	assert.Empty(t, secret.Notes)
}

func TestSecretStorage_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ownerA := createTestUser(t, ctx, s, "secret_a")
	ownerB := createTestUser(t, ctx, s, "secret_b")

	id := createTestSecret(t, ctx, s, ownerA, &models.Secret{Title: "private"})

	_, err := s.GetSecret(ctx, ownerB, id)
	assert.ErrorIs(t, err, storage.ErrSecretNotFound)

	err = s.UpdateSecret(ctx, &models.Secret{ID: id, UserID: ownerB, Title: "stolen"})
	assert.ErrorIs(t, err, storage.ErrSecretNotFound)

	err = s.DeleteSecret(ctx, ownerB, id)
	assert.ErrorIs(t, err, storage.ErrSecretNotFound)

	secret, err := s.GetSecret(ctx, ownerA, id)
	require.NoError(t, err)
	assert.Equal(t, "private", secret.Title)
}

func TestSecretStorage_DeleteNotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ownerID := createTestUser(t, ctx, s, "deleter")

	err := s.DeleteSecret(ctx, ownerID, 12345)
	assert.ErrorIs(t, err, storage.ErrSecretNotFound)
}
