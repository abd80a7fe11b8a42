// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// usersService implements the UserUsecase interface.
type usersService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// UsersServiceParams holds dependencies for UsersService, injected by Fx.
type UsersServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewUsersService is the constructor for usersService. It receives all dependencies as interfaces.
func NewUsersService(params UsersServiceParams) usecase.UserUsecase {
	return &usersService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *usersService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateLocalUser creates a user with an email/password credential. The account
// starts unconfirmed and holds the confirmation token until it is redeemed.
func (srv *usersService) CreateLocalUser(ctx context.Context, input *usecase.CreateLocalUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Creating local user", slog.String("email", input.Email))

	existing, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email")
	}
	if existing != nil {
		return nil, domainerrors.ErrDuplicateEmail
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	confirmToken := input.ConfirmToken
	user := &entity.User{
		Email:             input.Email,
		FullName:          input.FullName,
		PasswordHash:      &hash,
		EmailConfirmed:    false,
		EmailConfirmToken: &confirmToken,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		// The unique index is the real guard against concurrent signups.
		if appErr, ok := domainerrors.AsAppError(err); ok {
			return nil, appErr
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("Local user created", slog.Int64("user_id", user.ID))

	return user, nil
}

// CreateGoogleUser resolves a federated identity into a local account. The
// operation is idempotent: repeated calls with the same Google subject return
// the existing account.
func (srv *usersService) CreateGoogleUser(ctx context.Context, email, googleID, fullName string) (*entity.User, error) {
	srv.log(ctx).Info("Resolving Google user", slog.String("email", email))

	byGoogleID, err := srv.userRepo.FindByGoogleID(ctx, googleID)
	if err == nil {
		return byGoogleID, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by google id")
	}

	var resolved *entity.User
	txErr := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		byEmail, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			// An account already exists for this address. Link the Google
			// identity to it; Google has verified ownership of the address,
			// so the account counts as confirmed from here on.
			byEmail.GoogleID = &googleID
			byEmail.EmailConfirmed = true
			byEmail.EmailConfirmToken = nil
			if err := userRepo.Save(ctx, byEmail); err != nil {
				return errors.Wrap(err, "failed to link google identity")
			}
			resolved = byEmail

			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find user by email")
		}

		user := &entity.User{
			Email:          email,
			FullName:       fullName,
			GoogleID:       &googleID,
			EmailConfirmed: true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create google user")
		}
		resolved = user

		return nil
	})
	if txErr != nil {
		if appErr, ok := domainerrors.AsAppError(txErr); ok {
			return nil, appErr
		}

		return nil, txErr
	}

	srv.log(ctx).Info("Google user resolved", slog.Int64("user_id", resolved.ID))

	return resolved, nil
}

// MarkEmailConfirmed redeems an email confirmation token. The token is cleared
// on success, so presenting it a second time fails.
func (srv *usersService) MarkEmailConfirmed(ctx context.Context, token string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmailConfirmToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidToken
		}

		return nil, errors.Wrap(err, "failed to find user by confirm token")
	}

	user.EmailConfirmed = true
	user.EmailConfirmToken = nil
	if err := srv.userRepo.Save(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to confirm email")
	}

	srv.log(ctx).Info("Email confirmed", slog.Int64("user_id", user.ID))

	return user, nil
}

// SetResetPasswordToken stores a reset token and its expiry on the user.
func (srv *usersService) SetResetPasswordToken(ctx context.Context, user *entity.User, token string, expiresAt time.Time) (*entity.User, error) {
	user.ResetPasswordToken = &token
	user.ResetPasswordExpiresAt = &expiresAt
	if err := srv.userRepo.Save(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to store reset token")
	}

	return user, nil
}

// ResetPassword redeems a reset token and replaces the user's credential.
// Replacing the hash and clearing the token happen in one transaction so a
// redeemed token can never be replayed against the old credential.
func (srv *usersService) ResetPassword(ctx context.Context, token, newPassword string) (*entity.User, error) {
	user, err := srv.userRepo.FindByResetPasswordToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidOrExpiredToken
		}

		return nil, errors.Wrap(err, "failed to find user by reset token")
	}

	if user.ResetPasswordExpiresAt == nil || user.ResetPasswordExpiresAt.Before(time.Now()) {
		return nil, domainerrors.ErrInvalidOrExpiredToken
	}

	hash, err := srv.hasher.Hash(newPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	txErr := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user.PasswordHash = &hash
		user.ResetPasswordToken = nil
		user.ResetPasswordExpiresAt = nil

		return repoFactory.UserRepo().Save(ctx, user)
	})
	if txErr != nil {
		return nil, errors.Wrap(txErr, "failed to reset password")
	}

	srv.log(ctx).Info("Password reset", slog.Int64("user_id", user.ID))

	return user, nil
}

// FindByEmail returns the user with the given email, or nil when none exists.
func (srv *usersService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return user, nil
}

// FindByID returns the user with the given ID, or nil when none exists.
func (srv *usersService) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

// Update applies a partial update to the user's profile fields.
func (srv *usersService) Update(ctx context.Context, id int64, input *usecase.UpdateUserInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}

	if err := srv.userRepo.Save(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}
