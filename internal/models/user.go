package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered user in the system. Verification state and the
// one-time-password fields live here so that every OTP is generated per user
// with its own expiry, never shared across the process.
type User struct {
	gorm.Model
	Name         string `gorm:"size:255;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PhoneNumber  string `gorm:"size:10;index"`
	PasswordHash string `gorm:"size:255;not null"`
	DateOfBirth  time.Time
	Role         string `gorm:"size:50;not null;default:'user';index"`
	IsVerified   bool   `gorm:"not null;default:false"`

	OTPCode        string `gorm:"size:4"`
	OTPExpiresAt   *time.Time
	OTPTriesLeft   int `gorm:"not null;default:3"`
	OTPLockedUntil *time.Time
}
