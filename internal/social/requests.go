package social

import (
	"errors"

	"arguefc/backend/internal/models"

	"gorm.io/gorm"
)

// AcceptRequest transitions a friend request to ACCEPT and establishes the
// mutual follow edge: the sender joins the receiver's followers set and the
// receiver joins the sender's following set. Acceptance is not just a status
// change, so the whole transition runs in one transaction.
//
// Only the addressed receiver may accept. Returns the sender account so the
// caller can build its response message.
func AcceptRequest(db *gorm.DB, receiver *models.Account, requestID uint) (*models.Account, error) {
	var req models.FriendRequest
	if err := db.First(&req, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !receiver.IsVerified || req.ReceiverID != receiver.ID {
		return nil, ErrForbidden
	}

	var sender models.Account
	if err := db.First(&sender, req.SenderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&req).Update("status", models.StatusAccept).Error; err != nil {
			return err
		}

		receiverLedger, err := LedgerFor(tx, receiver.OwnerID, receiver.ID)
		if err != nil {
			return err
		}
		if err := tx.Model(receiverLedger).Association("Followers").Append(&sender); err != nil {
			return err
		}

		senderLedger, err := LedgerFor(tx, sender.OwnerID, sender.ID)
		if err != nil {
			return err
		}
		return tx.Model(senderLedger).Association("Following").Append(receiver)
	})
	if err != nil {
		return nil, err
	}
	return &sender, nil
}

// DeclineRequest marks a request DECLINED and deletes the row. No history is
// kept: after declining, the pair can go through the request flow again as if
// nothing had happened.
func DeclineRequest(db *gorm.DB, receiver *models.Account, requestID uint) (*models.Account, error) {
	var req models.FriendRequest
	if err := db.Preload("Sender").First(&req, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !receiver.IsVerified || req.ReceiverID != receiver.ID {
		return nil, ErrForbidden
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&req).Update("status", models.StatusDeclined).Error; err != nil {
			return err
		}
		return tx.Delete(&req).Error
	})
	if err != nil {
		return nil, err
	}
	sender := req.Sender
	return &sender, nil
}

// PendingRequestsQuery returns the query for requests awaiting action by the
// given receiver account, oldest first.
func PendingRequestsQuery(db *gorm.DB, receiverID uint) *gorm.DB {
	return db.Model(&models.FriendRequest{}).
		Preload("Sender").
		Where("receiver_id = ? AND status = ?", receiverID, models.StatusPending).
		Order("created_at")
}

// PendingRequestCount is the live count of PENDING requests addressed to the account.
func PendingRequestCount(db *gorm.DB, receiverID uint) (int64, error) {
	var count int64
	err := db.Model(&models.FriendRequest{}).
		Where("receiver_id = ? AND status = ?", receiverID, models.StatusPending).
		Count(&count).Error
	return count, err
}
