package social

import (
	"arguefc/backend/internal/models"

	"gorm.io/gorm"
)

// SuggestQuery builds the "accounts you may know" query for the given account:
// a two-hop expansion along the followers edge.
//
//  1. F  = direct followers of the account
//  2. O  = owning users of the accounts in F
//  3. FF = union of the followers sets of every ledger owned by a user in O
//  4. result = FF minus the account itself minus F, deduplicated
//
// There is no ranking; rows come back in the store's default order and the
// caller paginates. ErrNoLedger is returned when the account has no
// relationship ledger yet.
func SuggestQuery(db *gorm.DB, account *models.Account) (*gorm.DB, error) {
	ledger, err := FindLedger(db, account.OwnerID, account.ID)
	if err != nil {
		return nil, err
	}

	followerIDs, err := FollowerIDs(db, ledger.ID)
	if err != nil {
		return nil, err
	}
	if len(followerIDs) == 0 {
		return emptyAccountQuery(db), nil
	}

	var ownerIDs []uint
	err = db.Model(&models.Account{}).
		Distinct("owner_id").
		Where("id IN ?", followerIDs).
		Pluck("owner_id", &ownerIDs).Error
	if err != nil {
		return nil, err
	}

	var ledgerIDs []uint
	err = db.Model(&models.Friendship{}).
		Where("owner_id IN ?", ownerIDs).
		Pluck("id", &ledgerIDs).Error
	if err != nil {
		return nil, err
	}
	if len(ledgerIDs) == 0 {
		return emptyAccountQuery(db), nil
	}

	twoHop := db.Table(followersTable).
		Distinct("account_id").
		Where("friendship_id IN ?", ledgerIDs)

	query := db.Model(&models.Account{}).
		Where("id IN (?)", twoHop).
		Where("id <> ?", account.ID).
		Where("id NOT IN ?", followerIDs)
	return query, nil
}

// Suggest runs SuggestQuery without pagination.
func Suggest(db *gorm.DB, account *models.Account) ([]models.Account, error) {
	query, err := SuggestQuery(db, account)
	if err != nil {
		return nil, err
	}
	var accounts []models.Account
	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func emptyAccountQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Account{}).Where("1 = 0")
}
