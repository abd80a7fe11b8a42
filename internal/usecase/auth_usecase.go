package usecase

import "context"

// --- Input DTOs ---

// SignupInput defines the data required to sign up a local account.
type SignupInput struct {
	Email    string
	Password string
	FullName string
}

// LoginInput defines the data required for a local login.
type LoginInput struct {
	Email    string
	Password string
}

// GoogleLoginInput carries a verified Google identity. FullName may be empty,
// in which case it defaults to the email.
type GoogleLoginInput struct {
	Email    string
	GoogleID string
	FullName string
}

// ResetPasswordInput defines the data required to consume a reset token.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// --- Output DTOs ---
// Outputs are public-safe projections: no hash, no tokens.

// SignupOutput returns the newly created account's public fields.
type SignupOutput struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// LoginOutput returns the issued session token.
type LoginOutput struct {
	AccessToken string `json:"accessToken"`
}

// ConfirmEmailOutput returns the confirmation result.
type ConfirmEmailOutput struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	EmailConfirmed bool   `json:"isEmailConfirmed"`
}

// ResetPasswordOutput identifies the account whose password was replaced.
type ResetPasswordOutput struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// AuthUsecase orchestrates signup, login and the token lifecycles on top of
// the user usecase and the token issuer.
type AuthUsecase interface {
	// Signup creates a local account and triggers the confirmation email.
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)

	// Login authenticates a local account and issues a session token. Any
	// failure mode surfaces as ErrInvalidCredentials.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// ConfirmEmail consumes a confirmation token.
	ConfirmEmail(ctx context.Context, token string) (*ConfirmEmailOutput, error)

	// ForgotPassword starts the reset lifecycle. An unknown email is a
	// silent no-op so callers cannot probe for account existence.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and applies the new password.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) (*ResetPasswordOutput, error)

	// LoginWithGoogle creates-or-links the account for a verified Google
	// identity and issues a session token. The first call creates,
	// subsequent calls log in; there is no separate Google signup path.
	LoginWithGoogle(ctx context.Context, input *GoogleLoginInput) (*LoginOutput, error)
}
