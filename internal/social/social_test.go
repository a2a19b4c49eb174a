package social_test

import (
	"fmt"
	"testing"

	"arguefc/backend/internal/database"
	"arguefc/backend/internal/models"
	"arguefc/backend/internal/social"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled second connection would see a different empty in-memory DB.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newAccount(t *testing.T, db *gorm.DB, name string, private bool) *models.Account {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "irrelevant",
		IsVerified:   true,
	}
	require.NoError(t, db.Create(&user).Error)

	settings := models.DefaultAccountSettings()
	settings["make_private"] = private

	account := models.Account{
		OwnerID:    user.ID,
		FirstName:  name,
		LastName:   "Tester",
		IsVerified: true,
		Settings:   settings,
	}
	require.NoError(t, db.Create(&account).Error)

	account.Owner = user
	return &account
}

func TestFollowPublicIsBidirectional(t *testing.T) {
	db := setupDB(t)
	a := newAccount(t, db, "alice", false)
	b := newAccount(t, db, "bob", false)

	outcome, err := social.Follow(db, a, b)
	require.NoError(t, err)
	require.Equal(t, social.OutcomeFollowing, outcome)

	aLedger, err := social.FindLedger(db, a.OwnerID, a.ID)
	require.NoError(t, err)
	following, err := social.IsFollowing(db, aLedger.ID, b.ID)
	require.NoError(t, err)
	require.True(t, following, "target must be in actor's following set")

	bLedger, err := social.FindLedger(db, b.OwnerID, b.ID)
	require.NoError(t, err)
	follower, err := social.IsFollower(db, bLedger.ID, a.ID)
	require.NoError(t, err)
	require.True(t, follower, "actor must be in target's followers set")
}

func TestFollowRejectsSelfAndUnverified(t *testing.T) {
	db := setupDB(t)
	a := newAccount(t, db, "alice", false)
	b := newAccount(t, db, "bob", false)

	_, err := social.Follow(db, a, a)
	require.ErrorIs(t, err, social.ErrForbidden)

	b.IsVerified = false
	_, err = social.Follow(db, a, b)
	require.ErrorIs(t, err, social.ErrForbidden)
}

func TestFollowAlreadyFollowing(t *testing.T) {
	db := setupDB(t)
	a := newAccount(t, db, "alice", false)
	b := newAccount(t, db, "bob", false)

	_, err := social.Follow(db, a, b)
	require.NoError(t, err)

	_, err = social.Follow(db, a, b)
	require.ErrorIs(t, err, social.ErrAlreadyFollowing)
}

func TestFollowPrivateCreatesPendingRequest(t *testing.T) {
	db := setupDB(t)
	a := newAccount(t, db, "alice", false)
	p := newAccount(t, db, "petra", true)

	outcome, err := social.Follow(db, a, p)
	require.NoError(t, err)
	require.Equal(t, social.OutcomeRequested, outcome)

	var requests []models.FriendRequest
	require.NoError(t, db.Where("sender_id = ? AND receiver_id = ?", a.ID, p.ID).Find(&requests).Error)
	require.Len(t, requests, 1)
	require.Equal(t, models.StatusPending, requests[0].Status)

	// No ledger set was touched.
	aLedger, err := social.FindLedger(db, a.OwnerID, a.ID)
	require.NoError(t, err)
	count, err := social.FollowingCount(db, aLedger.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	// Re-sending collapses onto the existing PENDING row.
	_, err = social.Follow(db, a, p)
	require.NoError(t, err)
	require.NoError(t, db.Where("sender_id = ? AND receiver_id = ?", a.ID, p.ID).Find(&requests).Error)
	require.Len(t, requests, 1)
}

func TestToggleFollowMutatesOnlyActorLedger(t *testing.T) {
	db := setupDB(t)
	a := newAccount(t, db, "alice", false)
	b := newAccount(t, db, "bob", false)

	outcome, err := social.ToggleFollow(db, a, b)
	require.NoError(t, err)
	require.Equal(t, social.OutcomeFollowing, outcome)

	aLedger, err := social.FindLedger(db, a.OwnerID, a.ID)
	require.NoError(t, err)
	following, err := social.IsFollowing(db, aLedger.ID, b.ID)
	require.NoError(t, err)
	require.True(t, following)

	// The toggle path is one-sided: the target's followers set stays empty.
	_, err = social.FindLedger(db, b.OwnerID, b.ID)
	require.ErrorIs(t, err, social.ErrNoLedger)

	outcome, err = social.ToggleFollow(db, a, b)
	require.NoError(t, err)
	require.Equal(t, social.OutcomeUnfollowed, outcome)

	following, err = social.IsFollowing(db, aLedger.ID, b.ID)
	require.NoError(t, err)
	require.False(t, following)
}

func TestToggleFollowPrivateIsNoOp(t *testing.T) {
	db := setupDB(t)
	a := newAccount(t, db, "alice", false)
	p := newAccount(t, db, "petra", true)

	outcome, err := social.ToggleFollow(db, a, p)
	require.NoError(t, err)
	require.Equal(t, social.OutcomePrivate, outcome)

	aLedger, err := social.FindLedger(db, a.OwnerID, a.ID)
	require.NoError(t, err)
	count, err := social.FollowingCount(db, aLedger.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestToggleFollowPrivateAlreadyFollowingUnfollows(t *testing.T) {
	db := setupDB(t)
	a := newAccount(t, db, "alice", false)
	p := newAccount(t, db, "petra", true)

	ledger, err := social.LedgerFor(db, a.OwnerID, a.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(ledger).Association("Following").Append(p))

	outcome, err := social.ToggleFollow(db, a, p)
	require.NoError(t, err)
	require.Equal(t, social.OutcomeUnfollowed, outcome)
}

func TestToggleBlockRequiresFollower(t *testing.T) {
	db := setupDB(t)
	a := newAccount(t, db, "alice", false)
	b := newAccount(t, db, "bob", false)

	_, err := social.ToggleBlock(db, a, b)
	require.ErrorIs(t, err, social.ErrNotFollower)
}

func TestToggleBlockRoundTrip(t *testing.T) {
	db := setupDB(t)
	a := newAccount(t, db, "alice", false)
	b := newAccount(t, db, "bob", false)

	ledger, err := social.LedgerFor(db, a.OwnerID, a.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(ledger).Association("Followers").Append(b))

	outcome, err := social.ToggleBlock(db, a, b)
	require.NoError(t, err)
	require.Equal(t, social.OutcomeBlocked, outcome)

	isFollower, err := social.IsFollower(db, ledger.ID, b.ID)
	require.NoError(t, err)
	require.False(t, isFollower)
	blocked, err := social.BlockedCount(db, ledger.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, blocked)

	// Toggling again restores followers membership, a net no-op.
	outcome, err = social.ToggleBlock(db, a, b)
	require.NoError(t, err)
	require.Equal(t, social.OutcomeUnblocked, outcome)

	isFollower, err = social.IsFollower(db, ledger.ID, b.ID)
	require.NoError(t, err)
	require.True(t, isFollower)
	blocked, err = social.BlockedCount(db, ledger.ID)
	require.NoError(t, err)
	require.Zero(t, blocked)

	// Never returned to following.
	following, err := social.IsFollowing(db, ledger.ID, b.ID)
	require.NoError(t, err)
	require.False(t, following)
}

func TestAcceptRequestEstablishesMutualFollow(t *testing.T) {
	db := setupDB(t)
	sender := newAccount(t, db, "sam", false)
	receiver := newAccount(t, db, "petra", true)

	_, err := social.Follow(db, sender, receiver)
	require.NoError(t, err)

	var req models.FriendRequest
	require.NoError(t, db.Where("sender_id = ? AND receiver_id = ?", sender.ID, receiver.ID).First(&req).Error)

	got, err := social.AcceptRequest(db, receiver, req.ID)
	require.NoError(t, err)
	require.Equal(t, sender.ID, got.ID)

	receiverLedger, err := social.FindLedger(db, receiver.OwnerID, receiver.ID)
	require.NoError(t, err)
	isFollower, err := social.IsFollower(db, receiverLedger.ID, sender.ID)
	require.NoError(t, err)
	require.True(t, isFollower, "sender must join receiver's followers")

	senderLedger, err := social.FindLedger(db, sender.OwnerID, sender.ID)
	require.NoError(t, err)
	following, err := social.IsFollowing(db, senderLedger.ID, receiver.ID)
	require.NoError(t, err)
	require.True(t, following, "receiver must join sender's following")

	pending, err := social.PendingRequestCount(db, receiver.ID)
	require.NoError(t, err)
	require.Zero(t, pending)
}

func TestAcceptRequestOnlyByReceiver(t *testing.T) {
	db := setupDB(t)
	sender := newAccount(t, db, "sam", false)
	receiver := newAccount(t, db, "petra", true)
	other := newAccount(t, db, "oscar", false)

	_, err := social.Follow(db, sender, receiver)
	require.NoError(t, err)

	var req models.FriendRequest
	require.NoError(t, db.Where("sender_id = ?", sender.ID).First(&req).Error)

	_, err = social.AcceptRequest(db, other, req.ID)
	require.ErrorIs(t, err, social.ErrForbidden)

	_, err = social.AcceptRequest(db, receiver, req.ID+100)
	require.ErrorIs(t, err, social.ErrNotFound)
}

func TestDeclineRequestDeletesRowAndAllowsResend(t *testing.T) {
	db := setupDB(t)
	sender := newAccount(t, db, "sam", false)
	receiver := newAccount(t, db, "petra", true)

	_, err := social.Follow(db, sender, receiver)
	require.NoError(t, err)

	var req models.FriendRequest
	require.NoError(t, db.Where("sender_id = ?", sender.ID).First(&req).Error)

	got, err := social.DeclineRequest(db, receiver, req.ID)
	require.NoError(t, err)
	require.Equal(t, sender.ID, got.ID)

	// Declined requests leave no trace.
	var count int64
	require.NoError(t, db.Model(&models.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ?", sender.ID, receiver.ID).
		Count(&count).Error)
	require.Zero(t, count)

	// A fresh request can be filed as if nothing happened.
	outcome, err := social.Follow(db, sender, receiver)
	require.NoError(t, err)
	require.Equal(t, social.OutcomeRequested, outcome)
}

func TestCountsTrackLiveSets(t *testing.T) {
	db := setupDB(t)
	a := newAccount(t, db, "alice", false)
	b := newAccount(t, db, "bob", false)
	c := newAccount(t, db, "cara", false)

	ledger, err := social.LedgerFor(db, a.OwnerID, a.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(ledger).Association("Followers").Append(b, c))
	require.NoError(t, db.Model(ledger).Association("Following").Append(b))

	followers, err := social.FollowersCount(db, ledger.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, followers)

	following, err := social.FollowingCount(db, ledger.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, following)

	require.NoError(t, db.Model(ledger).Association("Followers").Delete(c))
	followers, err = social.FollowersCount(db, ledger.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, followers)
}

func TestLedgerForIsLazyGetOrCreate(t *testing.T) {
	db := setupDB(t)
	a := newAccount(t, db, "alice", false)

	_, err := social.FindLedger(db, a.OwnerID, a.ID)
	require.ErrorIs(t, err, social.ErrNoLedger)

	first, err := social.LedgerFor(db, a.OwnerID, a.ID)
	require.NoError(t, err)
	second, err := social.LedgerFor(db, a.OwnerID, a.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}
