package social

import (
	"errors"

	"arguefc/backend/internal/models"

	"gorm.io/gorm"
)

// Join tables backing the relationship ledger sets.
const (
	followersTable = "friendship_followers"
	followingTable = "friendship_following"
	archivedTable  = "friendship_archived"
	blockedTable   = "friendship_blocked"
)

// Outcome describes the resulting state of a ledger mutation.
type Outcome string

const (
	OutcomeFollowing  Outcome = "following"
	OutcomeUnfollowed Outcome = "unfollowed"
	OutcomeRequested  Outcome = "requested"
	OutcomePrivate    Outcome = "private"
	OutcomeBlocked    Outcome = "blocked"
	OutcomeUnblocked  Outcome = "unblocked"
)

// LedgerFor returns the relationship ledger for (owner, account), creating it
// on first use. Ledgers are never pre-provisioned at account creation.
func LedgerFor(db *gorm.DB, ownerID, accountID uint) (*models.Friendship, error) {
	ledger := models.Friendship{OwnerID: ownerID, AccountID: accountID}
	err := db.Where(models.Friendship{OwnerID: ownerID, AccountID: accountID}).
		FirstOrCreate(&ledger).Error
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

// FindLedger returns the existing ledger for an account, or ErrNoLedger.
func FindLedger(db *gorm.DB, ownerID, accountID uint) (*models.Friendship, error) {
	var ledger models.Friendship
	err := db.Where("owner_id = ? AND account_id = ?", ownerID, accountID).First(&ledger).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoLedger
	}
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

// inSet reports whether an account is a member of one of a ledger's sets.
func inSet(db *gorm.DB, joinTable string, ledgerID, accountID uint) (bool, error) {
	var count int64
	err := db.Table(joinTable).
		Where("friendship_id = ? AND account_id = ?", ledgerID, accountID).
		Count(&count).Error
	return count > 0, err
}

// Follow establishes a follow edge from actor to target, or a pending friend
// request when the target account is private.
//
// Both sides must be verified and actor may not target itself. The public path
// mutates both ledgers (actor.following and target.followers) inside a single
// transaction so the edge is never half-applied.
func Follow(db *gorm.DB, actor, target *models.Account) (Outcome, error) {
	if !actor.IsVerified || !target.IsVerified || actor.ID == target.ID {
		return "", ErrForbidden
	}

	ledger, err := LedgerFor(db, actor.OwnerID, actor.ID)
	if err != nil {
		return "", err
	}

	following, err := inSet(db, followingTable, ledger.ID, target.ID)
	if err != nil {
		return "", err
	}
	if following {
		return "", ErrAlreadyFollowing
	}

	if target.IsPrivate() {
		if err := createPendingRequest(db, actor.ID, target.ID); err != nil {
			return "", err
		}
		return OutcomeRequested, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(ledger).Association("Following").Append(target); err != nil {
			return err
		}
		targetLedger, err := LedgerFor(tx, target.OwnerID, target.ID)
		if err != nil {
			return err
		}
		return tx.Model(targetLedger).Association("Followers").Append(actor)
	})
	if err != nil {
		return "", err
	}
	return OutcomeFollowing, nil
}

// ToggleFollow flips target's membership in the actor's following set.
//
// Unlike Follow, this path touches only the actor's ledger; the target's
// followers set is left alone. That one-sidedness matches the shipped
// behavior and is relied on by callers, so it is intentional here.
// A private target that is not yet followed yields OutcomePrivate without
// mutating anything; the caller has to go through the request flow.
func ToggleFollow(db *gorm.DB, actor, target *models.Account) (Outcome, error) {
	ledger, err := LedgerFor(db, actor.OwnerID, actor.ID)
	if err != nil {
		return "", err
	}

	following, err := inSet(db, followingTable, ledger.ID, target.ID)
	if err != nil {
		return "", err
	}

	if target.IsPrivate() && !following {
		return OutcomePrivate, nil
	}

	if following {
		if err := db.Model(ledger).Association("Following").Delete(target); err != nil {
			return "", err
		}
		return OutcomeUnfollowed, nil
	}

	if err := db.Model(ledger).Association("Following").Append(target); err != nil {
		return "", err
	}
	return OutcomeFollowing, nil
}

// ToggleBlock moves target between the actor's followers and blocked sets.
// Only a current follower (or an already blocked account) can be blocked;
// unblocking returns the account to followers, never to following.
func ToggleBlock(db *gorm.DB, actor, target *models.Account) (Outcome, error) {
	ledger, err := LedgerFor(db, actor.OwnerID, actor.ID)
	if err != nil {
		return "", err
	}

	isFollower, err := inSet(db, followersTable, ledger.ID, target.ID)
	if err != nil {
		return "", err
	}
	isBlocked, err := inSet(db, blockedTable, ledger.ID, target.ID)
	if err != nil {
		return "", err
	}

	if !isFollower && !isBlocked {
		return "", ErrNotFollower
	}

	if !isBlocked {
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(ledger).Association("Followers").Delete(target); err != nil {
				return err
			}
			return tx.Model(ledger).Association("Blocked").Append(target)
		})
		if err != nil {
			return "", err
		}
		return OutcomeBlocked, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(ledger).Association("Blocked").Delete(target); err != nil {
			return err
		}
		return tx.Model(ledger).Association("Followers").Append(target)
	})
	if err != nil {
		return "", err
	}
	return OutcomeUnblocked, nil
}

// createPendingRequest is get-or-create keyed on (sender, receiver, PENDING),
// so duplicate pending requests between the same pair collapse to one row.
func createPendingRequest(db *gorm.DB, senderID, receiverID uint) error {
	req := models.FriendRequest{SenderID: senderID, ReceiverID: receiverID, Status: models.StatusPending}
	return db.Where(models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.StatusPending,
	}).FirstOrCreate(&req).Error
}
