package service

import "github.com/golang-jwt/jwt/v5"

// Claims defines the custom claims carried by access tokens.
type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating session tokens.
// The core treats the issued token as an unstructured string; signing details
// live behind this interface.
type TokenService interface {
	// Issue creates a signed access token with payload {subject: userID, email}.
	Issue(userID int64, email string) (string, error)

	// Validate checks the validity of a token string and returns its claims.
	Validate(tokenString string) (*Claims, error)
}
