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

// createTestContact inserts a contact and returns its id
func createTestContact(t *testing.T, ctx context.Context, s *Storage, ownerID int64, name, phone, address string) int64 {
	t.Helper()

	id, err := s.CreateContact(ctx, &models.Contact{
		UserID:    ownerID,
		Name:      name,
		Phone:     phone,
		Address:   address,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	return id
}

func TestContactStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ownerID := createTestUser(t, ctx, s, "alice_owner")

	// Create
	id := createTestContact(t, ctx, s, ownerID, "Alice", "555-1000", "")

	// Search находит ровно этот контакт
	contacts, err := s.ListContacts(ctx, ownerID, "Alice")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, id, contacts[0].ID)
	assert.Equal(t, "555-1000", contacts[0].Phone)

	// Update (full replace)
	err = s.UpdateContact(ctx, &models.Contact{
		ID:     id,
		UserID: ownerID,
		Name:   "Alice",
		Phone:  "555-2000",
	})
	require.NoError(t, err)

	contact, err := s.GetContact(ctx, ownerID, id)
	require.NoError(t, err)
	assert.Equal(t, "555-2000", contact.Phone)
	assert.Empty(t, contact.Address)

	// Delete
	require.NoError(t, s.DeleteContact(ctx, ownerID, id))

	_, err = s.GetContact(ctx, ownerID, id)
	assert.ErrorIs(t, err, storage.ErrContactNotFound)
}

func TestContactStorage_ListOrderedByName(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ownerID := createTestUser(t, ctx, s, "sorted")

	createTestContact(t, ctx, s, ownerID, "Charlie", "3", "")
	createTestContact(t, ctx, s, ownerID, "Alice", "1", "")
	createTestContact(t, ctx, s, ownerID, "Bob", "2", "")

	contacts, err := s.ListContacts(ctx, ownerID, "")
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "Alice", contacts[0].Name)
	assert.Equal(t, "Bob", contacts[1].Name)
	assert.Equal(t, "Charlie", contacts[2].Name)
}

func TestContactStorage_SearchCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ownerID := createTestUser(t, ctx, s, "searcher")

	createTestContact(t, ctx, s, ownerID, "Alice Smith", "555-1000", "Main Street 1")
	createTestContact(t, ctx, s, ownerID, "Bob Jones", "555-2000", "")

	tests := []struct {
		name      string
		search    string
		wantNames []string
	}{
		{name: "match by name lowercase", search: "alice", wantNames: []string{"Alice Smith"}},
		{name: "match by phone", search: "2000", wantNames: []string{"Bob Jones"}},
		{name: "match by address", search: "main street", wantNames: []string{"Alice Smith"}},
		{name: "match both by shared prefix", search: "555", wantNames: []string{"Alice Smith", "Bob Jones"}},
		{name: "no match", search: "zzz", wantNames: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts, err := s.ListContacts(ctx, ownerID, tt.search)
			require.NoError(t, err)

			names := make([]string, 0, len(contacts))
			for _, c := range contacts {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestContactStorage_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ownerA := createTestUser(t, ctx, s, "owner_a")
	ownerB := createTestUser(t, ctx, s, "owner_b")

	id := createTestContact(t, ctx, s, ownerA, "Private", "555-0000", "")

	// Чужой валидный id неотличим от несуществующего
	_, err := s.GetContact(ctx, ownerB, id)
	assert.ErrorIs(t, err, storage.ErrContactNotFound)

	err = s.UpdateContact(ctx, &models.Contact{ID: id, UserID: ownerB, Name: "X", Phone: "1"})
	assert.ErrorIs(t, err, storage.ErrContactNotFound)

	err = s.DeleteContact(ctx, ownerB, id)
	assert.ErrorIs(t, err, storage.ErrContactNotFound)

	// Запись владельца не пострадала
	contact, err := s.GetContact(ctx, ownerA, id)
	require.NoError(t, err)
	assert.Equal(t, "Private", contact.Name)

	// Списки не пересекаются
	contacts, err := s.ListContacts(ctx, ownerB, "")
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
