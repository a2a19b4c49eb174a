package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Post is a user-authored argument. The shareable link is generated once at
// creation and is unique per post.
type Post struct {
	gorm.Model
	OwnerID   uint    `gorm:"index;not null"`
	Owner     User    `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AccountID uint    `gorm:"index;not null"`
	Account   Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Body          string `gorm:"not null"`
	Thumbnail     datatypes.JSONMap
	ShareableLink string `gorm:"size:512;unique;not null"`
}

// PostActivity records one actor's engagement with a post. Reactions
// (like/repost/bookmark) share a single row per (owner, account, post) whose
// flags are flipped in place; comments are additive and always get their own
// row with Comment set and no flags.
type PostActivity struct {
	gorm.Model
	OwnerID   uint `gorm:"index;not null"`
	AccountID uint `gorm:"index;not null"`
	PostID    uint `gorm:"index;not null"`
	Post      Post `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Comment    *string
	IsLike     bool `gorm:"not null;default:false"`
	IsRepost   bool `gorm:"not null;default:false"`
	IsBookmark bool `gorm:"not null;default:false"`
}

// IsReaction reports whether the row is the reaction row (as opposed to a comment).
func (pa *PostActivity) IsReaction() bool {
	return pa.Comment == nil
}

// ActivityFeedback nests under a PostActivity: a reply to a comment, or a like
// of a comment. IsLike is nil for plain replies.
type ActivityFeedback struct {
	gorm.Model
	OwnerID        uint         `gorm:"index;not null"`
	AccountID      uint         `gorm:"index;not null"`
	PostActivityID uint         `gorm:"index;not null"`
	PostActivity   PostActivity `gorm:"foreignKey:PostActivityID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Response *string
	IsLike   *bool
}
