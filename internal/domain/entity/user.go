// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core entity of the system, representing a single account.
// An account is either "local" (holds a password hash) or Google-federated
// (holds a Google subject ID), or both when the two have been linked by email.
type User struct {
	ID                     int64      // Unique identifier, assigned by the store on creation.
	Email                  string     // Primary contact email, used as the login identifier. Unique.
	FullName               string     // Optional display name.
	PasswordHash           *string    // Bcrypt hash of the password. Nil for Google-only accounts.
	GoogleID               *string    // Google 'sub' claim. Nil until the account is linked to Google. Unique when present.
	EmailConfirmed         bool       // Whether the account email has been proven. Google accounts start confirmed.
	EmailConfirmToken      *string    // One-shot confirmation token. Present until confirmed, then cleared.
	ResetPasswordToken     *string    // One-shot reset token. Set on request, cleared on use or when superseded.
	ResetPasswordExpiresAt *time.Time // End of the reset token's validity window. Paired with ResetPasswordToken.
	CreatedAt              time.Time  // Timestamp of account creation.
	UpdatedAt              time.Time  // Timestamp of the last modification.
}

// HasPassword reports whether the account can authenticate locally.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
