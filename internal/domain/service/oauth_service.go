package service

import "context"

// OAuthUser represents verified user information from an OAuth provider.
type OAuthUser struct {
	ID            string // Provider-specific user ID (Google's 'sub' claim)
	Email         string // User's email address
	Name          string // User's display name
	EmailVerified bool   // Whether the email is verified by the provider
}

// OAuthAuthService defines the interface for OAuth ID-token verification.
// This is used for Google Sign-In where the client sends an ID token directly.
type OAuthAuthService interface {
	// VerifyIDToken verifies an OAuth ID token and returns user information.
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
}
