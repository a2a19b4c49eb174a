package social

import (
	"gorm.io/gorm"
)

// setCount is the live cardinality of one ledger set. Counts are derived on
// every call; nothing is cached.
func setCount(db *gorm.DB, joinTable string, ledgerID uint) (int64, error) {
	var count int64
	err := db.Table(joinTable).Where("friendship_id = ?", ledgerID).Count(&count).Error
	return count, err
}

func FollowersCount(db *gorm.DB, ledgerID uint) (int64, error) {
	return setCount(db, followersTable, ledgerID)
}

func FollowingCount(db *gorm.DB, ledgerID uint) (int64, error) {
	return setCount(db, followingTable, ledgerID)
}

func ArchivedCount(db *gorm.DB, ledgerID uint) (int64, error) {
	return setCount(db, archivedTable, ledgerID)
}

func BlockedCount(db *gorm.DB, ledgerID uint) (int64, error) {
	return setCount(db, blockedTable, ledgerID)
}

// setMemberIDs returns the account ids in one ledger set.
func setMemberIDs(db *gorm.DB, joinTable string, ledgerID uint) ([]uint, error) {
	var ids []uint
	err := db.Table(joinTable).Where("friendship_id = ?", ledgerID).Pluck("account_id", &ids).Error
	return ids, err
}

func FollowerIDs(db *gorm.DB, ledgerID uint) ([]uint, error) {
	return setMemberIDs(db, followersTable, ledgerID)
}

func FollowingIDs(db *gorm.DB, ledgerID uint) ([]uint, error) {
	return setMemberIDs(db, followingTable, ledgerID)
}
