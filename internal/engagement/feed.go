package engagement

import (
	"errors"

	"arguefc/backend/internal/models"
	"arguefc/backend/internal/social"

	"gorm.io/gorm"
)

// FeedQuery assembles the caller's feed: posts authored by anyone in the
// caller's followers or following sets (by account or by owning user),
// newest first. ErrNoFeedSources is returned when both sets are empty or no
// ledger exists yet.
func FeedQuery(db *gorm.DB, account *models.Account) (*gorm.DB, error) {
	ledger, err := social.FindLedger(db, account.OwnerID, account.ID)
	if err != nil {
		if errors.Is(err, social.ErrNoLedger) {
			return nil, ErrNoFeedSources
		}
		return nil, err
	}

	followerIDs, err := social.FollowerIDs(db, ledger.ID)
	if err != nil {
		return nil, err
	}
	followingIDs, err := social.FollowingIDs(db, ledger.ID)
	if err != nil {
		return nil, err
	}

	accountIDs := append(append([]uint{}, followerIDs...), followingIDs...)
	if len(accountIDs) == 0 {
		return nil, ErrNoFeedSources
	}

	var ownerIDs []uint
	err = db.Model(&models.Account{}).
		Distinct("owner_id").
		Where("id IN ?", accountIDs).
		Pluck("owner_id", &ownerIDs).Error
	if err != nil {
		return nil, err
	}

	query := db.Model(&models.Post{}).
		Preload("Account").
		Where("owner_id IN ? OR account_id IN ?", ownerIDs, accountIDs).
		Order("created_at DESC")
	return query, nil
}
