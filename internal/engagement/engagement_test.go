package engagement_test

import (
	"fmt"
	"testing"

	"arguefc/backend/internal/database"
	"arguefc/backend/internal/engagement"
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

func newAccount(t *testing.T, db *gorm.DB, name string) *models.Account {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "irrelevant",
		IsVerified:   true,
	}
	require.NoError(t, db.Create(&user).Error)

	account := models.Account{
		OwnerID:    user.ID,
		FirstName:  name,
		LastName:   "Tester",
		IsVerified: true,
		Settings:   models.DefaultAccountSettings(),
	}
	require.NoError(t, db.Create(&account).Error)

	account.Owner = user
	return &account
}

func newPost(t *testing.T, db *gorm.DB, author *models.Account, body string) *models.Post {
	t.Helper()

	post, err := engagement.NewPost(db, author, body, nil, "https://arguefc.com")
	require.NoError(t, err)
	return post
}

func TestToggleReactionCreatesAndFlips(t *testing.T) {
	db := setupDB(t)
	author := newAccount(t, db, "alice")
	reader := newAccount(t, db, "bob")
	post := newPost(t, db, author, "who wins the derby?")

	active, err := engagement.ToggleReaction(db, reader, post.ID, engagement.ReactionLike)
	require.NoError(t, err)
	require.True(t, active)

	// The second toggle flips the same row off instead of deleting it.
	active, err = engagement.ToggleReaction(db, reader, post.ID, engagement.ReactionLike)
	require.NoError(t, err)
	require.False(t, active)

	var rows int64
	require.NoError(t, db.Model(&models.PostActivity{}).
		Where("post_id = ? AND comment IS NULL", post.ID).
		Count(&rows).Error)
	require.EqualValues(t, 1, rows, "reactions share a single row per actor and post")
}

func TestToggleReactionSharesRowAcrossFlags(t *testing.T) {
	db := setupDB(t)
	author := newAccount(t, db, "alice")
	reader := newAccount(t, db, "bob")
	post := newPost(t, db, author, "match thread")

	_, err := engagement.ToggleReaction(db, reader, post.ID, engagement.ReactionLike)
	require.NoError(t, err)
	_, err = engagement.ToggleReaction(db, reader, post.ID, engagement.ReactionBookmark)
	require.NoError(t, err)
	_, err = engagement.ToggleReaction(db, reader, post.ID, engagement.ReactionRepost)
	require.NoError(t, err)

	var row models.PostActivity
	require.NoError(t, db.Where("post_id = ? AND account_id = ? AND comment IS NULL",
		post.ID, reader.ID).First(&row).Error)
	require.True(t, row.IsLike)
	require.True(t, row.IsBookmark)
	require.True(t, row.IsRepost)
}

func TestToggleReactionRejectsOwnPost(t *testing.T) {
	db := setupDB(t)
	author := newAccount(t, db, "alice")
	post := newPost(t, db, author, "self praise")

	for _, reaction := range []engagement.Reaction{
		engagement.ReactionLike,
		engagement.ReactionRepost,
		engagement.ReactionBookmark,
	} {
		_, err := engagement.ToggleReaction(db, author, post.ID, reaction)
		require.ErrorIs(t, err, engagement.ErrOwnPost)
	}
}

func TestToggleReactionUnknownPost(t *testing.T) {
	db := setupDB(t)
	reader := newAccount(t, db, "bob")

	_, err := engagement.ToggleReaction(db, reader, 999, engagement.ReactionLike)
	require.ErrorIs(t, err, engagement.ErrNotFound)
}

func TestCommentsAreAdditive(t *testing.T) {
	db := setupDB(t)
	author := newAccount(t, db, "alice")
	reader := newAccount(t, db, "bob")
	post := newPost(t, db, author, "opinions welcome")

	first, err := engagement.AddComment(db, reader, post.ID, "great take")
	require.NoError(t, err)
	second, err := engagement.AddComment(db, reader, post.ID, "on reflection, terrible take")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	counts, err := engagement.CountsFor(db, post.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, counts.Comments)
}

func TestAddCommentRejectsOwnPost(t *testing.T) {
	db := setupDB(t)
	author := newAccount(t, db, "alice")
	post := newPost(t, db, author, "no replies to self")

	_, err := engagement.AddComment(db, author, post.ID, "me again")
	require.ErrorIs(t, err, engagement.ErrOwnPost)
}

func TestReplyCommentOnlyByPostOwner(t *testing.T) {
	db := setupDB(t)
	author := newAccount(t, db, "alice")
	reader := newAccount(t, db, "bob")
	stranger := newAccount(t, db, "cara")
	post := newPost(t, db, author, "discuss")

	comment, err := engagement.AddComment(db, reader, post.ID, "a comment")
	require.NoError(t, err)

	_, err = engagement.ReplyComment(db, stranger, comment.ID, "butting in")
	require.ErrorIs(t, err, engagement.ErrNotPostOwner)

	reply, err := engagement.ReplyComment(db, author, comment.ID, "thanks")
	require.NoError(t, err)
	require.Equal(t, comment.ID, reply.PostActivityID)
}

func TestToggleCommentLikeRoundTrip(t *testing.T) {
	db := setupDB(t)
	author := newAccount(t, db, "alice")
	reader := newAccount(t, db, "bob")
	post := newPost(t, db, author, "discuss")

	comment, err := engagement.AddComment(db, reader, post.ID, "a comment")
	require.NoError(t, err)

	// Only the post owner may like comments on their post.
	_, err = engagement.ToggleCommentLike(db, reader, comment.ID)
	require.ErrorIs(t, err, engagement.ErrNotPostOwner)

	active, err := engagement.ToggleCommentLike(db, author, comment.ID)
	require.NoError(t, err)
	require.True(t, active)

	active, err = engagement.ToggleCommentLike(db, author, comment.ID)
	require.NoError(t, err)
	require.False(t, active)

	var rows int64
	require.NoError(t, db.Model(&models.ActivityFeedback{}).
		Where("post_activity_id = ?", comment.ID).
		Count(&rows).Error)
	require.EqualValues(t, 0, rows, "unliking a comment removes the row")
}

func TestCountsForAggregatesLiveRows(t *testing.T) {
	db := setupDB(t)
	author := newAccount(t, db, "alice")
	bob := newAccount(t, db, "bob")
	cara := newAccount(t, db, "cara")
	post := newPost(t, db, author, "big news")

	_, err := engagement.ToggleReaction(db, bob, post.ID, engagement.ReactionLike)
	require.NoError(t, err)
	_, err = engagement.ToggleReaction(db, cara, post.ID, engagement.ReactionLike)
	require.NoError(t, err)
	_, err = engagement.ToggleReaction(db, cara, post.ID, engagement.ReactionRepost)
	require.NoError(t, err)
	_, err = engagement.AddComment(db, bob, post.ID, "congrats")
	require.NoError(t, err)

	counts, err := engagement.CountsFor(db, post.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, counts.Likes)
	require.EqualValues(t, 1, counts.Comments)
	require.EqualValues(t, 1, counts.Reposts)
	require.EqualValues(t, 0, counts.Bookmarks)

	// Unliking drops the aggregate back down.
	_, err = engagement.ToggleReaction(db, bob, post.ID, engagement.ReactionLike)
	require.NoError(t, err)
	counts, err = engagement.CountsFor(db, post.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, counts.Likes)
}

func TestNewPostGeneratesDistinctShareableLinks(t *testing.T) {
	db := setupDB(t)
	author := newAccount(t, db, "alice")

	first := newPost(t, db, author, "one")
	second := newPost(t, db, author, "two")

	require.NotEmpty(t, first.ShareableLink)
	require.NotEqual(t, first.ShareableLink, second.ShareableLink)
	require.Contains(t, first.ShareableLink, "https://arguefc.com/p/")
}

func TestReactionRowsQueryFiltersByFlag(t *testing.T) {
	db := setupDB(t)
	author := newAccount(t, db, "alice")
	reader := newAccount(t, db, "bob")
	bookmarked := newPost(t, db, author, "bookmark me")
	liked := newPost(t, db, author, "like me")

	_, err := engagement.ToggleReaction(db, reader, bookmarked.ID, engagement.ReactionBookmark)
	require.NoError(t, err)
	_, err = engagement.ToggleReaction(db, reader, liked.ID, engagement.ReactionLike)
	require.NoError(t, err)

	var rows []models.PostActivity
	require.NoError(t, engagement.ReactionRowsQuery(db, reader, engagement.ReactionBookmark).Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, bookmarked.ID, rows[0].PostID)
	require.Equal(t, bookmarked.ID, rows[0].Post.ID)
}

func TestFeedQueryUsesFollowGraph(t *testing.T) {
	db := setupDB(t)
	alice := newAccount(t, db, "alice")
	bob := newAccount(t, db, "bob")
	cara := newAccount(t, db, "cara")

	// alice follows bob; cara is unrelated.
	_, err := social.Follow(db, alice, bob)
	require.NoError(t, err)

	visible := newPost(t, db, bob, "from bob")
	newPost(t, db, cara, "from cara")

	query, err := engagement.FeedQuery(db, alice)
	require.NoError(t, err)

	var posts []models.Post
	require.NoError(t, query.Find(&posts).Error)
	require.Len(t, posts, 1)
	require.Equal(t, visible.ID, posts[0].ID)
}

func TestFeedQueryWithoutSources(t *testing.T) {
	db := setupDB(t)
	alice := newAccount(t, db, "alice")

	_, err := engagement.FeedQuery(db, alice)
	require.ErrorIs(t, err, engagement.ErrNoFeedSources)
}
