package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Account is the public social identity of a user. Exactly one account exists
// per user; it is created by a post-registration hook, never by the user
// directly. Settings, ExtraData and Metadata are free-form JSON documents the
// client owns; the server only interprets a handful of well-known keys.
type Account struct {
	gorm.Model
	OwnerID   uint `gorm:"uniqueIndex;not null"`
	Owner     User `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FirstName string `gorm:"size:255"`
	LastName  string `gorm:"size:255"`

	IsVerified bool `gorm:"not null;default:false"`

	Settings  datatypes.JSONMap
	ExtraData datatypes.JSONMap
	Metadata  datatypes.JSONMap

	ClubInterests []*ClubInterest `gorm:"many2many:account_club_interests;"`
}

// FullName returns the display name used in response messages.
func (a *Account) FullName() string {
	if a.FirstName == "" && a.LastName == "" {
		return "first name or last name was not provided"
	}
	return a.FirstName + " " + a.LastName
}

// settingEnabled reports whether a boolean settings key is explicitly true.
func (a *Account) settingEnabled(key string) bool {
	if a.Settings == nil {
		return false
	}
	v, ok := a.Settings[key].(bool)
	return ok && v
}

// IsPrivate reports whether the account only accepts followers through the
// friend-request flow.
func (a *Account) IsPrivate() bool {
	return a.settingEnabled("make_private")
}

// TwoFAEnabled reports whether login requires an OTP round-trip.
func (a *Account) TwoFAEnabled() bool {
	return a.settingEnabled("enable_2fa")
}

// DefaultAccountSettings is the settings document stamped onto every account
// at creation time.
func DefaultAccountSettings() datatypes.JSONMap {
	return datatypes.JSONMap{
		"hide_likes":   nil,
		"hide_account": nil,
		"make_private": false,
		"enable_2fa":   true,
	}
}
