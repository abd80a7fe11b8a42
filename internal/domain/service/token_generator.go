package service

// TokenGenerator produces opaque one-shot tokens for email confirmation and
// password reset. Tokens are unpredictable and collision-resistant in
// practice; uniqueness is probabilistic, not enforced at this layer.
type TokenGenerator interface {
	// Generate returns a fresh 32-byte value rendered as a 64-character
	// hexadecimal string, drawn from a cryptographically secure random source.
	Generate() (string, error)
}
