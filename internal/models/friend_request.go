package models

import "time"

// FriendRequestStatus defines the state of a follow request to a private account.
type FriendRequestStatus string

const (
	// StatusPending means the request has been sent but not acted on.
	StatusPending FriendRequestStatus = "PENDING"

	// StatusAccept means the receiver accepted; accepting also establishes
	// the mutual follow edge between sender and receiver.
	StatusAccept FriendRequestStatus = "ACCEPT"

	// StatusDeclined is transient: a declined request row is deleted, so after
	// the transition it is indistinguishable from never having been sent.
	StatusDeclined FriendRequestStatus = "DECLINED"
)

// FriendRequest gates follow creation for private accounts. Duplicate PENDING
// requests between the same pair are prevented by get-or-create on
// (sender, receiver, status).
type FriendRequest struct {
	ID         uint                `gorm:"primarykey"`
	SenderID   uint                `gorm:"index;not null"`
	ReceiverID uint                `gorm:"index;not null"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Sender   Account `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Receiver Account `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
