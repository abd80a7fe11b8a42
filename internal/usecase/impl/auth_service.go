package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface on top of the user usecase.
type authService struct {
	userUsecase   usecase.UserUsecase
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	tokenGen      service.TokenGenerator
	mailer        service.Mailer
	resetTokenTTL time.Duration
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserUsecase  usecase.UserUsecase
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	TokenGen     service.TokenGenerator
	Mailer       service.Mailer
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	resetTokenTTL := time.Hour
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.ResetTokenTTL > 0 {
		resetTokenTTL = params.Config.Auth.ResetTokenTTL
	}

	return &authService{
		userUsecase:   params.UserUsecase,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		tokenGen:      params.TokenGen,
		mailer:        params.Mailer,
		resetTokenTTL: resetTokenTTL,
		logger:        params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates a local account and sends the confirmation email. A mail
// delivery failure is logged but does not undo the signup; the account simply
// stays unconfirmed until the token is re-sent out of band.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	confirmToken, err := srv.tokenGen.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate confirmation token")
	}

	user, err := srv.userUsecase.CreateLocalUser(ctx, &usecase.CreateLocalUserInput{
		Email:        input.Email,
		Password:     input.Password,
		FullName:     input.FullName,
		ConfirmToken: confirmToken,
	})
	if err != nil {
		return nil, err
	}

	if err := srv.mailer.SendConfirmationEmail(ctx, user.Email, user.FullName, confirmToken); err != nil {
		srv.log(ctx).Error("Failed to send confirmation email",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err))
	}

	return &usecase.SignupOutput{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}, nil
}

// Login authenticates a local credential. Unknown email, wrong password and a
// federated-only account all collapse into ErrInvalidCredentials so the
// response never reveals which check failed.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userUsecase.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasPassword() {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !srv.hasher.Check(input.Password, *user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, err := srv.tokenService.Issue(user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	srv.log(ctx).Info("User logged in", slog.Int64("user_id", user.ID))

	return &usecase.LoginOutput{AccessToken: accessToken}, nil
}

// ConfirmEmail consumes a confirmation token.
func (srv *authService) ConfirmEmail(ctx context.Context, token string) (*usecase.ConfirmEmailOutput, error) {
	user, err := srv.userUsecase.MarkEmailConfirmed(ctx, token)
	if err != nil {
		return nil, err
	}

	return &usecase.ConfirmEmailOutput{
		ID:             user.ID,
		Email:          user.Email,
		EmailConfirmed: user.EmailConfirmed,
	}, nil
}

// ForgotPassword issues a reset token for the account behind the email. An
// unknown email returns success without doing anything, so the endpoint cannot
// be used to probe which addresses are registered.
func (srv *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := srv.userUsecase.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		srv.log(ctx).Info("Password reset requested for unknown email")

		return nil
	}

	resetToken, err := srv.tokenGen.Generate()
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	expiresAt := time.Now().Add(srv.resetTokenTTL)
	if _, err := srv.userUsecase.SetResetPasswordToken(ctx, user, resetToken, expiresAt); err != nil {
		return err
	}

	if err := srv.mailer.SendPasswordResetEmail(ctx, user.Email, user.FullName, resetToken); err != nil {
		srv.log(ctx).Error("Failed to send password reset email",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err))
	}

	srv.log(ctx).Info("Password reset token issued", slog.Int64("user_id", user.ID))

	return nil
}

// ResetPassword consumes a reset token and replaces the account's password.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) (*usecase.ResetPasswordOutput, error) {
	user, err := srv.userUsecase.ResetPassword(ctx, input.Token, input.NewPassword)
	if err != nil {
		return nil, err
	}

	return &usecase.ResetPasswordOutput{
		ID:    user.ID,
		Email: user.Email,
	}, nil
}

// LoginWithGoogle resolves a verified Google identity into a local account and
// issues the same session token a local login would.
func (srv *authService) LoginWithGoogle(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.LoginOutput, error) {
	fullName := input.FullName
	if fullName == "" {
		fullName = input.Email
	}

	user, err := srv.userUsecase.CreateGoogleUser(ctx, input.Email, input.GoogleID, fullName)
	if err != nil {
		return nil, err
	}

	accessToken, err := srv.tokenService.Issue(user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	srv.log(ctx).Info("User logged in via Google", slog.Int64("user_id", user.ID))

	return &usecase.LoginOutput{AccessToken: accessToken}, nil
}
