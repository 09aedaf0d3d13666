package storage

import (
	"context"

	"github.com/iudanet/phonevault/internal/models"
)

// UserStorage defines interface for user credential persistence
type UserStorage interface {
	// CreateUser persists a new user and returns the generated id
	// Returns ErrUserAlreadyExists if username is taken
	CreateUser(ctx context.Context, user *models.User) (int64, error)

	// GetUserByUsername retrieves user by username (case-sensitive)
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by numeric id
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
}
