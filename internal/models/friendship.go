package models

import "gorm.io/gorm"

// Friendship is the per-account relationship ledger: who follows this account,
// who it follows, and who it has archived or blocked. A ledger is materialized
// lazily on the first relationship mutation, not at account creation.
//
// Membership rules:
//   - an account can only be blocked after it has been a follower, and
//     unblocking returns it to the followers set, never to following;
//   - counts are always derived from the live sets, never stored.
type Friendship struct {
	gorm.Model
	OwnerID   uint    `gorm:"index;not null"`
	Owner     User    `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AccountID uint    `gorm:"uniqueIndex;not null"`
	Account   Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Followers []*Account `gorm:"many2many:friendship_followers;"`
	Following []*Account `gorm:"many2many:friendship_following;"`
	Archived  []*Account `gorm:"many2many:friendship_archived;"`
	Blocked   []*Account `gorm:"many2many:friendship_blocked;"`
}
