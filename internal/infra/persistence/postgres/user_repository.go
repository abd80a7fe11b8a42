// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "email = ?", email)
}

// FindByGoogleID retrieves a single user by their linked Google subject ID.
func (repo *userRepository) FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	return repo.findOne(ctx, "google_id = ?", googleID)
}

// FindByEmailConfirmToken retrieves the user holding the given confirmation token.
func (repo *userRepository) FindByEmailConfirmToken(ctx context.Context, token string) (*entity.User, error) {
	return repo.findOne(ctx, "email_confirm_token = ?", token)
}

// FindByResetPasswordToken retrieves the user holding the given reset token.
func (repo *userRepository) FindByResetPasswordToken(ctx context.Context, token string) (*entity.User, error) {
	return repo.findOne(ctx, "reset_password_token = ?", token)
}

func (repo *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// The unique index on email (and google_id) is the real duplicate
		// guard; a concurrent insert surfaces here as a constraint violation.
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateEmail.WrapMessage("unique constraint violated on insert")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Carry the generated ID and timestamps back to the entity.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Save writes the full state of an existing user back to the database.
// A full save (not a sparse update) is required so that token fields cleared
// to nil are actually written out; that is what makes confirm/reset tokens
// one-shot.
func (repo *userRepository) Save(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	userM.CreatedAt = user.CreatedAt

	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateEmail.WrapMessage("unique constraint violated on save")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save user")
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:                     data.ID,
		Email:                  data.Email,
		FullName:               data.FullName,
		PasswordHash:           data.PasswordHash,
		GoogleID:               data.GoogleID,
		EmailConfirmed:         data.EmailConfirmed,
		EmailConfirmToken:      data.EmailConfirmToken,
		ResetPasswordToken:     data.ResetPasswordToken,
		ResetPasswordExpiresAt: data.ResetPasswordExpiresAt,
		CreatedAt:              data.CreatedAt,
		UpdatedAt:              data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:                     data.ID,
		Email:                  data.Email,
		FullName:               data.FullName,
		PasswordHash:           data.PasswordHash,
		GoogleID:               data.GoogleID,
		EmailConfirmed:         data.EmailConfirmed,
		EmailConfirmToken:      data.EmailConfirmToken,
		ResetPasswordToken:     data.ResetPasswordToken,
		ResetPasswordExpiresAt: data.ResetPasswordExpiresAt,
	}
}
