package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	UID           string `gorm:"uniqueIndex;size:36;not null"` // public identity, owner key on every record
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null"`
	Disabled      bool
	ResetToken    string `gorm:"index;size:16"`
	ResetTokenExp time.Time
}

// RevokedToken remembers the jti of tokens that were signed out before expiry.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:36"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}
