package engagement

import (
	"fmt"

	"arguefc/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Counts holds the derived engagement aggregates for one post. They are
// computed from the live activity rows on every call.
type Counts struct {
	Likes     int64 `json:"likes_count"`
	Comments  int64 `json:"comments_count"`
	Reposts   int64 `json:"reposts_count"`
	Bookmarks int64 `json:"bookmarks_count"`
}

// CountsFor aggregates the activity rows of a post.
func CountsFor(db *gorm.DB, postID uint) (Counts, error) {
	var c Counts

	activity := func() *gorm.DB {
		return db.Model(&models.PostActivity{}).Where("post_id = ?", postID)
	}

	if err := activity().Where("is_like = ?", true).Count(&c.Likes).Error; err != nil {
		return c, err
	}
	if err := activity().Where("comment IS NOT NULL").Count(&c.Comments).Error; err != nil {
		return c, err
	}
	if err := activity().Where("is_repost = ?", true).Count(&c.Reposts).Error; err != nil {
		return c, err
	}
	if err := activity().Where("is_bookmark = ?", true).Count(&c.Bookmarks).Error; err != nil {
		return c, err
	}
	return c, nil
}

// NewPost creates a post for the actor, generating its unique shareable link.
func NewPost(db *gorm.DB, actor *models.Account, body string, thumbnail datatypes.JSONMap, baseURL string) (*models.Post, error) {
	post := models.Post{
		OwnerID:       actor.OwnerID,
		AccountID:     actor.ID,
		Body:          body,
		Thumbnail:     thumbnail,
		ShareableLink: generateShareableLink(baseURL),
	}
	if err := db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// generateShareableLink builds a unique public URL for a post.
func generateShareableLink(baseURL string) string {
	return fmt.Sprintf("%s/p/%s", baseURL, uuid.NewString()[:13])
}

// ReactionRowsQuery lists the actor's reaction rows carrying the given flag,
// newest first, with the post preloaded. Backs the reposts/bookmarks listings.
func ReactionRowsQuery(db *gorm.DB, actor *models.Account, reaction Reaction) *gorm.DB {
	return db.Model(&models.PostActivity{}).
		Preload("Post").
		Where("owner_id = ? AND account_id = ?", actor.OwnerID, actor.ID).
		Where(flagColumn(reaction)+" = ?", true).
		Order("created_at DESC")
}
