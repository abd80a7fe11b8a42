package auth

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"

	"storefront/internal/domain/service"
)

const tokenByteLength = 32

// randomTokenGenerator draws tokens from crypto/rand.
type randomTokenGenerator struct{}

// NewTokenGenerator is the constructor for randomTokenGenerator.
func NewTokenGenerator() service.TokenGenerator {
	return &randomTokenGenerator{}
}

// Generate returns 32 random bytes as a 64-character hex string.
func (g *randomTokenGenerator) Generate() (string, error) {
	b := make([]byte, tokenByteLength)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return hex.EncodeToString(b), nil
}
