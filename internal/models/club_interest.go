package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClubInterest is a football club an account can mark as an interest.
type ClubInterest struct {
	gorm.Model
	Name      string `gorm:"size:200;index;not null"`
	League    string `gorm:"size:200;index"`
	Thumbnail datatypes.JSONMap
}
