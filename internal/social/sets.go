package social

import (
	"arguefc/backend/internal/models"

	"gorm.io/gorm"
)

// setQuery lists the accounts in one ledger set, for paginated views.
func setQuery(db *gorm.DB, joinTable string, ledgerID uint) *gorm.DB {
	return db.Model(&models.Account{}).
		Joins("JOIN "+joinTable+" jt ON jt.account_id = accounts.id").
		Where("jt.friendship_id = ?", ledgerID)
}

func FollowersQuery(db *gorm.DB, ledgerID uint) *gorm.DB {
	return setQuery(db, followersTable, ledgerID)
}

func FollowingQuery(db *gorm.DB, ledgerID uint) *gorm.DB {
	return setQuery(db, followingTable, ledgerID)
}

func ArchivedQuery(db *gorm.DB, ledgerID uint) *gorm.DB {
	return setQuery(db, archivedTable, ledgerID)
}

func BlockedQuery(db *gorm.DB, ledgerID uint) *gorm.DB {
	return setQuery(db, blockedTable, ledgerID)
}

// IsFollower reports whether the account is in the ledger's followers set.
func IsFollower(db *gorm.DB, ledgerID, accountID uint) (bool, error) {
	return inSet(db, followersTable, ledgerID, accountID)
}

// IsFollowing reports whether the account is in the ledger's following set.
func IsFollowing(db *gorm.DB, ledgerID, accountID uint) (bool, error) {
	return inSet(db, followingTable, ledgerID, accountID)
}
