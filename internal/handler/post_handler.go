package handler

import (
	"fmt"
	"net/http"

	"arguefc/backend/internal/config"
	"arguefc/backend/internal/database"
	"arguefc/backend/internal/engagement"
	"arguefc/backend/internal/models"
	"arguefc/backend/internal/social"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// region --- DTOs ---

// PostInput defines the structure for creating a post.
type PostInput struct {
	Body      string                 `json:"body" binding:"required"`
	Thumbnail map[string]interface{} `json:"thumbnail"`
}

// CommentInput adds a comment to a post.
type CommentInput struct {
	PostID  uint   `json:"post_id" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// ReplyInput replies to a comment (post owner only).
type ReplyInput struct {
	PostActivityID uint   `json:"post_activity_id" binding:"required"`
	Response       string `json:"response" binding:"required"`
}

// CommentLikeInput toggles a like on a comment (post owner only).
type CommentLikeInput struct {
	PostActivityID uint `json:"post_activity_id" binding:"required"`
}

// PostResponse is a post with its derived engagement counts.
type PostResponse struct {
	ID            uint                   `json:"id"`
	AccountID     uint                   `json:"account_id"`
	Body          string                 `json:"body"`
	Thumbnail     map[string]interface{} `json:"thumbnail,omitempty"`
	ShareableLink string                 `json:"shareable_link"`
	CreatedAt     string                 `json:"created_at"`
	engagement.Counts
}

// ActivityResponse is one engagement row (comment, repost, bookmark...).
type ActivityResponse struct {
	ID         uint          `json:"id"`
	AccountID  uint          `json:"account_id"`
	PostID     uint          `json:"post_id"`
	Comment    *string       `json:"comment,omitempty"`
	IsLike     bool          `json:"is_like"`
	IsRepost   bool          `json:"is_repost"`
	IsBookmark bool          `json:"is_bookmark"`
	Post       *PostResponse `json:"post,omitempty"`
}

// endregion

func buildPostResponse(post models.Post) PostResponse {
	counts, _ := engagement.CountsFor(database.DB, post.ID)
	return PostResponse{
		ID:            post.ID,
		AccountID:     post.AccountID,
		Body:          post.Body,
		Thumbnail:     post.Thumbnail,
		ShareableLink: post.ShareableLink,
		CreatedAt:     post.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Counts:        counts,
	}
}

func buildActivityResponse(activity models.PostActivity, withPost bool) ActivityResponse {
	resp := ActivityResponse{
		ID:         activity.ID,
		AccountID:  activity.AccountID,
		PostID:     activity.PostID,
		Comment:    activity.Comment,
		IsLike:     activity.IsLike,
		IsRepost:   activity.IsRepost,
		IsBookmark: activity.IsBookmark,
	}
	if withPost && activity.Post.ID != 0 {
		post := buildPostResponse(activity.Post)
		resp.Post = &post
	}
	return resp
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post for the caller and generates its shareable link.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post body"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := engagement.NewPost(database.DB, account, input.Body,
		datatypes.JSONMap(input.Thumbnail), config.AppConfig.ShareBaseURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, buildPostResponse(*post))
}

// GetMyPosts godoc
// @Summary      List the caller's posts
// @Description  The caller's own posts with engagement counts, newest first.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /posts [get]
func GetMyPosts(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}

	page, limit := pageParams(c)
	query := database.DB.Model(&models.Post{}).
		Where("owner_id = ? AND account_id = ?", account.OwnerID, account.ID).
		Order("created_at DESC")

	result, err := Paginate[models.Post](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	posts := make([]PostResponse, 0, len(result.Data))
	for _, p := range result.Data {
		posts = append(posts, buildPostResponse(p))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(posts, result.Meta.TotalItems, page, limit))
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func GetPost(c *gin.Context) {
	if _, ok := verifiedAccount(c); !ok {
		return
	}
	postID, ok := idParam(c)
	if !ok {
		return
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, buildPostResponse(post))
}

// GetSharedPost godoc
// @Summary      Resolve a shareable link
// @Description  Public lookup of a post by its shareable-link slug. Posts from private accounts are only shown to the author and their followers.
// @Tags         posts
// @Produce      json
// @Param        slug path      string  true  "Shareable link slug"
// @Success      200  {object}  PostResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /p/{slug} [get]
func GetSharedPost(c *gin.Context) {
	link := fmt.Sprintf("%s/p/%s", config.AppConfig.ShareBaseURL, c.Param("slug"))

	var post models.Post
	if err := database.DB.Preload("Account").Where("shareable_link = ?", link).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// Do not reveal that a private post exists.
	if post.Account.IsPrivate() && !canViewPrivate(c, &post.Account) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, buildPostResponse(post))
}

// canViewPrivate reports whether the optionally authenticated caller is the
// author or one of the author's followers.
func canViewPrivate(c *gin.Context, author *models.Account) bool {
	userID, exists := c.Get("userID")
	if !exists {
		return false
	}

	var viewer models.Account
	if err := database.DB.Where("owner_id = ?", userID.(uint)).First(&viewer).Error; err != nil {
		return false
	}
	if viewer.ID == author.ID {
		return true
	}

	ledger, err := social.FindLedger(database.DB, author.OwnerID, author.ID)
	if err != nil {
		return false
	}
	follower, err := social.IsFollower(database.DB, ledger.ID, viewer.ID)
	return err == nil && follower
}

// MyFeeds godoc
// @Summary      Get the caller's feed
// @Description  Posts authored by the caller's followers and followed accounts, newest first.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "No followers or followings yet"
// @Router       /posts/my_feeds [get]
func MyFeeds(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}

	query, err := engagement.FeedQuery(database.DB, account)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	page, limit := pageParams(c)
	result, err := Paginate[models.Post](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	posts := make([]PostResponse, 0, len(result.Data))
	for _, p := range result.Data {
		posts = append(posts, buildPostResponse(p))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(posts, result.Meta.TotalItems, page, limit))
}

// serveReactionRows backs the reposts/bookmarks listings.
func serveReactionRows(c *gin.Context, reaction engagement.Reaction) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}

	page, limit := pageParams(c)
	query := engagement.ReactionRowsQuery(database.DB, account, reaction)

	result, err := Paginate[models.PostActivity](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	rows := make([]ActivityResponse, 0, len(result.Data))
	for _, a := range result.Data {
		rows = append(rows, buildActivityResponse(a, true))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(rows, result.Meta.TotalItems, page, limit))
}

// GetReposts godoc
// @Summary      List the caller's reposts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[ActivityResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /posts/get_reposts [get]
func GetReposts(c *gin.Context) {
	serveReactionRows(c, engagement.ReactionRepost)
}

// GetBookmarks godoc
// @Summary      List the caller's bookmarks
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[ActivityResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /posts/get_bookmarks [get]
func GetBookmarks(c *gin.Context) {
	serveReactionRows(c, engagement.ReactionBookmark)
}

// serveReactionToggle runs one reaction toggle and phrases the result.
func serveReactionToggle(c *gin.Context, reaction engagement.Reaction, onMsg, offMsg string) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}
	postID, ok := idParam(c)
	if !ok {
		return
	}

	active, err := engagement.ToggleReaction(database.DB, account, postID, reaction)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if active {
		c.JSON(http.StatusOK, gin.H{"message": onMsg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": offMsg})
}

// LikeUnlikePost godoc
// @Summary      Like or unlike a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Own post"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/like_unlike_post [post]
func LikeUnlikePost(c *gin.Context) {
	serveReactionToggle(c, engagement.ReactionLike, "You like this post", "You unlike this post")
}

// BookmarkUnbookmark godoc
// @Summary      Bookmark or unbookmark a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Own post"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/bookmark_unbookmark [post]
func BookmarkUnbookmark(c *gin.Context) {
	serveReactionToggle(c, engagement.ReactionBookmark, "Bookmark successful", "You unbookmark this post")
}

// RepostUnrepost godoc
// @Summary      Repost or unrepost a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Own post"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/repost_unrepost [post]
func RepostUnrepost(c *gin.Context) {
	serveReactionToggle(c, engagement.ReactionRepost, "Repost successful", "You unrepost this post")
}

// Comment godoc
// @Summary      Comment on a post
// @Description  Comments are additive: each one is its own activity row.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CommentInput true "Comment"
// @Success      201  {object}  ActivityResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Own post"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/comment [post]
func Comment(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := engagement.AddComment(database.DB, account, input.PostID, input.Comment)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, buildActivityResponse(*activity, false))
}

// ReplyComment godoc
// @Summary      Reply to a comment
// @Description  Only the owner of the commented post may reply.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ReplyInput true "Reply"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Caller does not own the post"
// @Failure      404  {object}  ErrorResponse "Comment not found"
// @Router       /posts/reply_comment [post]
func ReplyComment(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}

	var input ReplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := engagement.ReplyComment(database.DB, account, input.PostActivityID, input.Response)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":               feedback.ID,
		"post_activity_id": feedback.PostActivityID,
		"response":         feedback.Response,
	})
}

// LikeUnlikeComment godoc
// @Summary      Like or unlike a comment
// @Description  Only the owner of the commented post may like comments.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CommentLikeInput true "Comment reference"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Caller does not own the post"
// @Failure      404  {object}  ErrorResponse "Comment not found"
// @Router       /posts/like_unlike_comment [post]
func LikeUnlikeComment(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}

	var input CommentLikeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active, err := engagement.ToggleCommentLike(database.DB, account, input.PostActivityID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if active {
		c.JSON(http.StatusOK, gin.H{"message": "You like the comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "You unlike the comment"})
}
