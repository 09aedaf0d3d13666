package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrContactNotFound indicates that contact was not found for the given owner.
	// Existence under another owner is deliberately indistinguishable from absence.
	ErrContactNotFound = errors.New("contact not found")

	// ErrSecretNotFound indicates that secret was not found for the given owner
	ErrSecretNotFound = errors.New("secret not found")
)
