// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
// Every lookup returns ErrUserNotFound when no row matches; callers that treat
// absence as a valid result translate that themselves.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByGoogleID retrieves a single user by their linked Google subject ID.
	FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error)

	// FindByEmailConfirmToken retrieves the user holding the given confirmation token.
	FindByEmailConfirmToken(ctx context.Context, token string) (*entity.User, error)

	// FindByResetPasswordToken retrieves the user holding the given reset token.
	FindByResetPasswordToken(ctx context.Context, token string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Save writes the full state of an existing user entity back to the storage,
	// including fields cleared to nil (consumed tokens).
	Save(ctx context.Context, user *entity.User) error
}
