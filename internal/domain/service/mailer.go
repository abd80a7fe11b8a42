package service

import "context"

// Mailer delivers transactional email. Implementations are expected to be
// best-effort: the auth flows log a delivery failure but never fail the
// operation that triggered the mail.
type Mailer interface {
	// SendConfirmationEmail sends the email-confirmation token to a new account.
	SendConfirmationEmail(ctx context.Context, to, fullName, token string) error

	// SendPasswordResetEmail sends the password-reset token to an account.
	SendPasswordResetEmail(ctx context.Context, to, fullName, token string) error
}
