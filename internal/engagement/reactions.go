package engagement

import (
	"errors"

	"arguefc/backend/internal/models"

	"gorm.io/gorm"
)

// Reaction is one of the boolean engagement flags on a post.
type Reaction string

const (
	ReactionLike     Reaction = "like"
	ReactionRepost   Reaction = "repost"
	ReactionBookmark Reaction = "bookmark"
)

// ToggleReaction flips the given flag for (actor, post). All three reactions
// share a single row per actor and post; comments never do (see AddComment).
// Returns whether the reaction is active after the toggle.
func ToggleReaction(db *gorm.DB, actor *models.Account, postID uint, reaction Reaction) (bool, error) {
	post, err := findPost(db, postID)
	if err != nil {
		return false, err
	}
	if post.OwnerID == actor.OwnerID || post.AccountID == actor.ID {
		return false, ErrOwnPost
	}

	var row models.PostActivity
	err = db.Where("owner_id = ? AND account_id = ? AND post_id = ? AND comment IS NULL",
		actor.OwnerID, actor.ID, postID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.PostActivity{
			OwnerID:   actor.OwnerID,
			AccountID: actor.ID,
			PostID:    postID,
		}
		setFlag(&row, reaction, true)
		if err := db.Create(&row).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	next := !flag(&row, reaction)
	setFlag(&row, reaction, next)
	if err := db.Model(&row).Update(flagColumn(reaction), next).Error; err != nil {
		return false, err
	}
	return next, nil
}

// AddComment records a comment as its own activity row. Comments are additive:
// the same actor can comment any number of times on the same post.
func AddComment(db *gorm.DB, actor *models.Account, postID uint, text string) (*models.PostActivity, error) {
	post, err := findPost(db, postID)
	if err != nil {
		return nil, err
	}
	if post.OwnerID == actor.OwnerID || post.AccountID == actor.ID {
		return nil, ErrOwnPost
	}

	row := models.PostActivity{
		OwnerID:   actor.OwnerID,
		AccountID: actor.ID,
		PostID:    postID,
		Comment:   &text,
	}
	if err := db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ReplyComment creates feedback nested under a comment. Only the owner of the
// commented post may reply.
func ReplyComment(db *gorm.DB, actor *models.Account, activityID uint, response string) (*models.ActivityFeedback, error) {
	activity, err := findActivity(db, activityID)
	if err != nil {
		return nil, err
	}
	if activity.Post.OwnerID != actor.OwnerID && activity.Post.AccountID != actor.ID {
		return nil, ErrNotPostOwner
	}

	feedback := models.ActivityFeedback{
		OwnerID:        actor.OwnerID,
		AccountID:      actor.ID,
		PostActivityID: activity.ID,
		Response:       &response,
	}
	if err := db.Create(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ToggleCommentLike toggles the actor's like on a comment: an existing like
// row is deleted, otherwise one is created. Only the post owner may like
// comments on their post. Returns whether the like is active after the toggle.
func ToggleCommentLike(db *gorm.DB, actor *models.Account, activityID uint) (bool, error) {
	activity, err := findActivity(db, activityID)
	if err != nil {
		return false, err
	}
	if activity.Post.OwnerID != actor.OwnerID && activity.Post.AccountID != actor.ID {
		return false, ErrNotPostOwner
	}

	var liked models.ActivityFeedback
	err = db.Where("owner_id = ? AND account_id = ? AND post_activity_id = ? AND is_like = ?",
		actor.OwnerID, actor.ID, activity.ID, true).First(&liked).Error
	if err == nil {
		if err := db.Unscoped().Delete(&liked).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	isLike := true
	feedback := models.ActivityFeedback{
		OwnerID:        actor.OwnerID,
		AccountID:      actor.ID,
		PostActivityID: activity.ID,
		IsLike:         &isLike,
	}
	if err := db.Create(&feedback).Error; err != nil {
		return false, err
	}
	return true, nil
}

func findPost(db *gorm.DB, postID uint) (*models.Post, error) {
	var post models.Post
	if err := db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func findActivity(db *gorm.DB, activityID uint) (*models.PostActivity, error) {
	var activity models.PostActivity
	if err := db.Preload("Post").First(&activity, activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &activity, nil
}

func flag(row *models.PostActivity, reaction Reaction) bool {
	switch reaction {
	case ReactionRepost:
		return row.IsRepost
	case ReactionBookmark:
		return row.IsBookmark
	default:
		return row.IsLike
	}
}

func setFlag(row *models.PostActivity, reaction Reaction, value bool) {
	switch reaction {
	case ReactionRepost:
		row.IsRepost = value
	case ReactionBookmark:
		row.IsBookmark = value
	default:
		row.IsLike = value
	}
}

func flagColumn(reaction Reaction) string {
	switch reaction {
	case ReactionRepost:
		return "is_repost"
	case ReactionBookmark:
		return "is_bookmark"
	default:
		return "is_like"
	}
}
