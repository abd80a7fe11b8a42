package impl

import (
	"context"
	"testing"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/infra/auth"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// usersServiceFixtures holds all test dependencies for users service tests.
type usersServiceFixtures struct {
	service  usecase.UserUsecase
	userRepo *memoryUserRepo
}

func createTestUsersService(t *testing.T) usersServiceFixtures {
	t.Helper()

	userRepo := newMemoryUserRepo()
	service := NewUsersService(UsersServiceParams{
		TxManager: &memoryTxManager{userRepo: userRepo, productRepo: newMemoryProductRepo()},
		UserRepo:  userRepo,
		Hasher:    auth.NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}),
		Logger:    testLogger(),
	})

	return usersServiceFixtures{
		service:  service,
		userRepo: userRepo,
	}
}

func TestUsersService_CreateLocalUser(t *testing.T) {
	fixtures := createTestUsersService(t)
	ctx := context.Background()

	user, err := fixtures.service.CreateLocalUser(ctx, &usecase.CreateLocalUserInput{
		Email:        "alice@example.com",
		Password:     "hunter2hunter2",
		FullName:     "Alice",
		ConfirmToken: "tok-confirm-1",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.False(t, user.EmailConfirmed)
	require.NotNil(t, user.EmailConfirmToken)
	assert.Equal(t, "tok-confirm-1", *user.EmailConfirmToken)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "hunter2hunter2", *user.PasswordHash)
}

func TestUsersService_CreateLocalUser_DuplicateEmail(t *testing.T) {
	fixtures := createTestUsersService(t)
	ctx := context.Background()

	_, err := fixtures.service.CreateLocalUser(ctx, &usecase.CreateLocalUserInput{
		Email:        "alice@example.com",
		Password:     "hunter2hunter2",
		FullName:     "Alice",
		ConfirmToken: "tok-1",
	})
	require.NoError(t, err)

	_, err = fixtures.service.CreateLocalUser(ctx, &usecase.CreateLocalUserInput{
		Email:        "alice@example.com",
		Password:     "different-pass",
		FullName:     "Mallory",
		ConfirmToken: "tok-2",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)
}

func TestUsersService_CreateGoogleUser_NewAccount(t *testing.T) {
	fixtures := createTestUsersService(t)
	ctx := context.Background()

	user, err := fixtures.service.CreateGoogleUser(ctx, "bob@example.com", "google-sub-1", "Bob")
	require.NoError(t, err)

	assert.True(t, user.EmailConfirmed)
	assert.Nil(t, user.PasswordHash)
	assert.Nil(t, user.EmailConfirmToken)
	require.NotNil(t, user.GoogleID)
	assert.Equal(t, "google-sub-1", *user.GoogleID)
}

func TestUsersService_CreateGoogleUser_Idempotent(t *testing.T) {
	fixtures := createTestUsersService(t)
	ctx := context.Background()

	first, err := fixtures.service.CreateGoogleUser(ctx, "bob@example.com", "google-sub-1", "Bob")
	require.NoError(t, err)

	second, err := fixtures.service.CreateGoogleUser(ctx, "bob@example.com", "google-sub-1", "Bob")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestUsersService_CreateGoogleUser_LinksExistingLocalAccount(t *testing.T) {
	fixtures := createTestUsersService(t)
	ctx := context.Background()

	local, err := fixtures.service.CreateLocalUser(ctx, &usecase.CreateLocalUserInput{
		Email:        "carol@example.com",
		Password:     "hunter2hunter2",
		FullName:     "Carol",
		ConfirmToken: "tok-pending",
	})
	require.NoError(t, err)
	require.False(t, local.EmailConfirmed)

	linked, err := fixtures.service.CreateGoogleUser(ctx, "carol@example.com", "google-sub-9", "Carol G")
	require.NoError(t, err)

	assert.Equal(t, local.ID, linked.ID)
	assert.True(t, linked.EmailConfirmed, "Google has verified the address, so the link confirms it")
	assert.Nil(t, linked.EmailConfirmToken)
	require.NotNil(t, linked.GoogleID)
	assert.Equal(t, "google-sub-9", *linked.GoogleID)
	assert.NotNil(t, linked.PasswordHash, "linking must not drop the local credential")
}

func TestUsersService_MarkEmailConfirmed_OneShot(t *testing.T) {
	fixtures := createTestUsersService(t)
	ctx := context.Background()

	_, err := fixtures.service.CreateLocalUser(ctx, &usecase.CreateLocalUserInput{
		Email:        "dave@example.com",
		Password:     "hunter2hunter2",
		FullName:     "Dave",
		ConfirmToken: "tok-once",
	})
	require.NoError(t, err)

	confirmed, err := fixtures.service.MarkEmailConfirmed(ctx, "tok-once")
	require.NoError(t, err)
	assert.True(t, confirmed.EmailConfirmed)
	assert.Nil(t, confirmed.EmailConfirmToken)

	// Replaying the consumed token must fail.
	_, err = fixtures.service.MarkEmailConfirmed(ctx, "tok-once")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestUsersService_MarkEmailConfirmed_UnknownToken(t *testing.T) {
	fixtures := createTestUsersService(t)

	_, err := fixtures.service.MarkEmailConfirmed(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestUsersService_ResetPassword(t *testing.T) {
	fixtures := createTestUsersService(t)
	ctx := context.Background()

	user, err := fixtures.service.CreateLocalUser(ctx, &usecase.CreateLocalUserInput{
		Email:        "erin@example.com",
		Password:     "old-password-1",
		FullName:     "Erin",
		ConfirmToken: "tok-c",
	})
	require.NoError(t, err)
	oldHash := *user.PasswordHash

	_, err = fixtures.service.SetResetPasswordToken(ctx, user, "tok-reset", time.Now().Add(time.Hour))
	require.NoError(t, err)

	updated, err := fixtures.service.ResetPassword(ctx, "tok-reset", "new-password-1")
	require.NoError(t, err)

	assert.NotEqual(t, oldHash, *updated.PasswordHash)
	assert.Nil(t, updated.ResetPasswordToken)
	assert.Nil(t, updated.ResetPasswordExpiresAt)

	// The token was consumed together with the credential swap.
	_, err = fixtures.service.ResetPassword(ctx, "tok-reset", "another-password")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrExpiredToken)
}

func TestUsersService_ResetPassword_ExpiredToken(t *testing.T) {
	fixtures := createTestUsersService(t)
	ctx := context.Background()

	user, err := fixtures.service.CreateLocalUser(ctx, &usecase.CreateLocalUserInput{
		Email:        "frank@example.com",
		Password:     "old-password-1",
		FullName:     "Frank",
		ConfirmToken: "tok-c",
	})
	require.NoError(t, err)

	_, err = fixtures.service.SetResetPasswordToken(ctx, user, "tok-stale", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = fixtures.service.ResetPassword(ctx, "tok-stale", "new-password-1")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrExpiredToken)

	// The expired token stays on the record; only redemption clears it.
	stored, findErr := fixtures.userRepo.FindByResetPasswordToken(ctx, "tok-stale")
	require.NoError(t, findErr)
	assert.NotNil(t, stored.ResetPasswordToken)
}

func TestUsersService_Update(t *testing.T) {
	fixtures := createTestUsersService(t)
	ctx := context.Background()

	user, err := fixtures.service.CreateLocalUser(ctx, &usecase.CreateLocalUserInput{
		Email:        "grace@example.com",
		Password:     "hunter2hunter2",
		FullName:     "Grace",
		ConfirmToken: "tok-c",
	})
	require.NoError(t, err)

	newName := "Grace Hopper"
	updated, err := fixtures.service.Update(ctx, user.ID, &usecase.UpdateUserInput{FullName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", updated.FullName)

	// A nil field leaves the current value in place.
	unchanged, err := fixtures.service.Update(ctx, user.ID, &usecase.UpdateUserInput{})
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", unchanged.FullName)
}

func TestUsersService_Update_UnknownUser(t *testing.T) {
	fixtures := createTestUsersService(t)

	name := "Nobody"
	_, err := fixtures.service.Update(context.Background(), 404, &usecase.UpdateUserInput{FullName: &name})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUsersService_FindByEmail_MissReturnsNil(t *testing.T) {
	fixtures := createTestUsersService(t)

	user, err := fixtures.service.FindByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}
