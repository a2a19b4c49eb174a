package social_test

import (
	"testing"

	"arguefc/backend/internal/models"
	"arguefc/backend/internal/social"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func accountIDs(accounts []models.Account) []uint {
	ids := make([]uint, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids
}

func addFollower(t *testing.T, db *gorm.DB, owner, follower *models.Account) {
	t.Helper()
	ledger, err := social.LedgerFor(db, owner.OwnerID, owner.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(ledger).Association("Followers").Append(follower))
}

func TestSuggestTwoHopExpansion(t *testing.T) {
	db := setupDB(t)
	alice := newAccount(t, db, "alice", false)
	bob := newAccount(t, db, "bob", false)
	cara := newAccount(t, db, "cara", false)
	dave := newAccount(t, db, "dave", false)

	// bob follows alice; cara, dave and alice follow bob.
	addFollower(t, db, alice, bob)
	addFollower(t, db, bob, cara)
	addFollower(t, db, bob, dave)
	addFollower(t, db, bob, alice)

	suggested, err := social.Suggest(db, alice)
	require.NoError(t, err)

	ids := accountIDs(suggested)
	require.ElementsMatch(t, []uint{cara.ID, dave.ID}, ids)
	require.NotContains(t, ids, alice.ID, "never suggest the account itself")
	require.NotContains(t, ids, bob.ID, "never suggest an existing follower")
}

func TestSuggestExcludesDirectFollowers(t *testing.T) {
	db := setupDB(t)
	alice := newAccount(t, db, "alice", false)
	bob := newAccount(t, db, "bob", false)
	cara := newAccount(t, db, "cara", false)

	// cara is already a direct follower of alice and also follows bob.
	addFollower(t, db, alice, bob)
	addFollower(t, db, alice, cara)
	addFollower(t, db, bob, cara)

	suggested, err := social.Suggest(db, alice)
	require.NoError(t, err)
	require.NotContains(t, accountIDs(suggested), cara.ID)
}

func TestSuggestWithoutLedger(t *testing.T) {
	db := setupDB(t)
	alice := newAccount(t, db, "alice", false)

	_, err := social.Suggest(db, alice)
	require.ErrorIs(t, err, social.ErrNoLedger)
}

func TestSuggestWithoutFollowersIsEmpty(t *testing.T) {
	db := setupDB(t)
	alice := newAccount(t, db, "alice", false)

	_, err := social.LedgerFor(db, alice.OwnerID, alice.ID)
	require.NoError(t, err)

	suggested, err := social.Suggest(db, alice)
	require.NoError(t, err)
	require.Empty(t, suggested)
}

func TestSuggestDeduplicates(t *testing.T) {
	db := setupDB(t)
	alice := newAccount(t, db, "alice", false)
	bob := newAccount(t, db, "bob", false)
	eve := newAccount(t, db, "eve", false)
	cara := newAccount(t, db, "cara", false)

	// Both bob and eve follow alice, and cara follows both of them:
	// cara is reachable twice but must be suggested once.
	addFollower(t, db, alice, bob)
	addFollower(t, db, alice, eve)
	addFollower(t, db, bob, cara)
	addFollower(t, db, eve, cara)

	suggested, err := social.Suggest(db, alice)
	require.NoError(t, err)
	require.Equal(t, []uint{cara.ID}, accountIDs(suggested))
}
