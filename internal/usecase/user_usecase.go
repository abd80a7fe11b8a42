// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
)

// CreateLocalUserInput defines the data required to create a local account.
type CreateLocalUserInput struct {
	Email        string
	Password     string
	FullName     string
	ConfirmToken string
}

// UpdateUserInput carries a partial profile update. Nil fields are left
// untouched.
type UpdateUserInput struct {
	FullName *string
}

// UserUsecase defines the business rules for account lifecycle: creation
// (local and Google), email confirmation, password reset and profile update.
type UserUsecase interface {
	// CreateLocalUser registers a new password-backed account. It fails with
	// ErrDuplicateEmail when the email is already registered.
	CreateLocalUser(ctx context.Context, input *CreateLocalUserInput) (*entity.User, error)

	// CreateGoogleUser finds or creates the account for a verified Google
	// identity. A repeat call with the same googleID returns the existing
	// record unchanged. A matching local account gets the googleID linked
	// and its email forced confirmed.
	CreateGoogleUser(ctx context.Context, email, googleID, fullName string) (*entity.User, error)

	// MarkEmailConfirmed consumes a confirmation token. It fails with
	// ErrInvalidToken when no user holds the token.
	MarkEmailConfirmed(ctx context.Context, token string) (*entity.User, error)

	// SetResetPasswordToken stamps a reset token and its expiry on the user.
	SetResetPasswordToken(ctx context.Context, user *entity.User, token string, expiresAt time.Time) (*entity.User, error)

	// ResetPassword consumes a reset token and applies the new password. It
	// fails with ErrInvalidOrExpiredToken for an unknown, consumed or
	// out-of-window token.
	ResetPassword(ctx context.Context, token, newPassword string) (*entity.User, error)

	// FindByEmail returns the user for the email, or nil when none exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns the user for the id, or nil when none exists.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// Update applies a partial profile update. It fails with ErrUserNotFound
	// when the id does not resolve.
	Update(ctx context.Context, id int64, input *UpdateUserInput) (*entity.User, error)
}
