// Package mail delivers transactional email through Mailgun.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"

	"storefront/config"
	"storefront/internal/domain/service"
)

const sendTimeout = 10 * time.Second

// mailgunMailer implements service.Mailer using the Mailgun API.
type mailgunMailer struct {
	domain  string
	apiKey  string
	sender  string
	baseURL string
	logger  *slog.Logger
}

// logOnlyMailer is used when no Mailgun configuration is present. It records
// the would-be delivery so local development still shows the tokens.
type logOnlyMailer struct {
	logger *slog.Logger
}

// NewMailer constructs the Mailer. Without Mailgun configuration it falls
// back to a log-only implementation.
func NewMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	if cfg.Mailgun == nil || cfg.Mailgun.APIKey == "" {
		logger.Warn("Mailgun not configured, email delivery disabled")

		return &logOnlyMailer{logger: logger}
	}

	return &mailgunMailer{
		domain:  cfg.Mailgun.Domain,
		apiKey:  cfg.Mailgun.APIKey,
		sender:  cfg.Mailgun.Sender,
		baseURL: cfg.Mailgun.BaseURL,
		logger:  logger,
	}
}

func (m *mailgunMailer) SendConfirmationEmail(ctx context.Context, to, fullName, token string) error {
	subject := "Confirm your email"
	text := fmt.Sprintf(
		"Hi %s,\n\nConfirm your email address by opening the link below:\n\n%s/auth/confirm-email?token=%s\n",
		fullName, m.baseURL, token,
	)

	return m.send(ctx, to, subject, text)
}

func (m *mailgunMailer) SendPasswordResetEmail(ctx context.Context, to, fullName, token string) error {
	subject := "Reset your password"
	text := fmt.Sprintf(
		"Hi %s,\n\nA password reset was requested for your account. Use the token below within one hour:\n\n%s\n\nIf you did not request this, ignore this email.\n",
		fullName, token,
	)

	return m.send(ctx, to, subject, text)
}

func (m *mailgunMailer) send(ctx context.Context, to, subject, text string) error {
	client := mg.NewMailgun(m.domain, m.apiKey)
	msg := client.NewMessage(m.sender, subject, text, to)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, _, err := client.Send(sendCtx, msg)

	return err
}

func (m *logOnlyMailer) SendConfirmationEmail(_ context.Context, to, _, token string) error {
	m.logger.Info("Email delivery disabled, confirmation token not sent",
		slog.String("to", to), slog.String("token", token))

	return nil
}

func (m *logOnlyMailer) SendPasswordResetEmail(_ context.Context, to, _, token string) error {
	m.logger.Info("Email delivery disabled, reset token not sent",
		slog.String("to", to), slog.String("token", token))

	return nil
}
