package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/iudanet/phonevault/internal/models"
	"github.com/iudanet/phonevault/internal/server/storage"
)

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users       map[string]*models.User // username -> User
	nextID      int64
	createError error
	getError    error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	if _, exists := m.users[user.Username]; exists {
		return 0, storage.ErrUserAlreadyExists
	}
	m.nextID++
	stored := *user
	stored.ID = m.nextID
	m.users[user.Username] = &stored
	return stored.ID, nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

// mockContactStorage is a mock implementation of ContactStorage for testing
type mockContactStorage struct {
	contacts map[int64]*models.Contact
	nextID   int64
	listErr  error
}

func newMockContactStorage() *mockContactStorage {
	return &mockContactStorage{contacts: make(map[int64]*models.Contact)}
}

func (m *mockContactStorage) ListContacts(ctx context.Context, ownerID int64, search string) ([]*models.Contact, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]*models.Contact, 0)
	for _, c := range m.contacts {
		if c.UserID != ownerID {
			continue
		}
		if search != "" && !containsFold(c.Name, search) &&
			!containsFold(c.Phone, search) && !containsFold(c.Address, search) {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *mockContactStorage) GetContact(ctx context.Context, ownerID, id int64) (*models.Contact, error) {
	c, ok := m.contacts[id]
	if !ok || c.UserID != ownerID {
		return nil, storage.ErrContactNotFound
	}
	return c, nil
}

func (m *mockContactStorage) CreateContact(ctx context.Context, contact *models.Contact) (int64, error) {
	m.nextID++
	stored := *contact
	stored.ID = m.nextID
	m.contacts[stored.ID] = &stored
	return stored.ID, nil
}

func (m *mockContactStorage) UpdateContact(ctx context.Context, contact *models.Contact) error {
	existing, ok := m.contacts[contact.ID]
	if !ok || existing.UserID != contact.UserID {
		return storage.ErrContactNotFound
	}
	existing.Name = contact.Name
	existing.Phone = contact.Phone
	existing.Address = contact.Address
	return nil
}

func (m *mockContactStorage) DeleteContact(ctx context.Context, ownerID, id int64) error {
	c, ok := m.contacts[id]
	if !ok || c.UserID != ownerID {
		return storage.ErrContactNotFound
	}
	delete(m.contacts, id)
	return nil
}

// mockSecretStorage is a mock implementation of SecretStorage for testing
type mockSecretStorage struct {
	secrets map[int64]*models.Secret
	nextID  int64
}

func newMockSecretStorage() *mockSecretStorage {
	return &mockSecretStorage{secrets: make(map[int64]*models.Secret)}
}

func (m *mockSecretStorage) ListSecrets(ctx context.Context, ownerID int64, search, category string) ([]*models.SecretSummary, error) {
	result := make([]*models.SecretSummary, 0)
	for _, s := range m.secrets {
		if s.UserID != ownerID {
			continue
		}
		if search != "" && !containsFold(s.Title, search) &&
			!containsFold(s.Username, search) && !containsFold(s.URL, search) {
			continue
		}
		if category != "" && s.Category != category {
			continue
		}
		summary := s.Summary()
		result = append(result, &summary)
	}
	return result, nil
}

func (m *mockSecretStorage) GetSecret(ctx context.Context, ownerID, id int64) (*models.Secret, error) {
	s, ok := m.secrets[id]
	if !ok || s.UserID != ownerID {
		return nil, storage.ErrSecretNotFound
	}
	return s, nil
}

func (m *mockSecretStorage) CreateSecret(ctx context.Context, secret *models.Secret) (int64, error) {
	m.nextID++
	stored := *secret
	stored.ID = m.nextID
	m.secrets[stored.ID] = &stored
	return stored.ID, nil
}

func (m *mockSecretStorage) UpdateSecret(ctx context.Context, secret *models.Secret) error {
	existing, ok := m.secrets[secret.ID]
	if !ok || existing.UserID != secret.UserID {
		return storage.ErrSecretNotFound
	}
	updated := *secret
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	m.secrets[secret.ID] = &updated
	return nil
}

func (m *mockSecretStorage) DeleteSecret(ctx context.Context, ownerID, id int64) error {
	s, ok := m.secrets[id]
	if !ok || s.UserID != ownerID {
		return storage.ErrSecretNotFound
	}
	delete(m.secrets, id)
	return nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
