// Package model contains the GORM persistence models mirroring the database schema.
package model

import "time"

// UserModel mirrors the 'users' table. The unique indexes on email and
// google_id are the actual race guards for concurrent signup and linking;
// the service-level existence checks are only a fast path.
type UserModel struct {
	ID                     int64      `gorm:"primaryKey;autoIncrement"`
	Email                  string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName               string     `gorm:"type:varchar(100)"`
	PasswordHash           *string    `gorm:"type:varchar(255)"`
	GoogleID               *string    `gorm:"type:varchar(255);uniqueIndex"`
	EmailConfirmed         bool       `gorm:"not null;default:false"`
	EmailConfirmToken      *string    `gorm:"type:varchar(64);index"`
	ResetPasswordToken     *string    `gorm:"type:varchar(64);index"`
	ResetPasswordExpiresAt *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
