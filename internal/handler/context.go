package handler

import (
	"errors"
	"net/http"
	"strconv"

	"arguefc/backend/internal/database"
	"arguefc/backend/internal/engagement"
	"arguefc/backend/internal/models"
	"arguefc/backend/internal/social"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// MessageResponse represents a generic message envelope.
type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

// currentAccount loads the authenticated caller's account. It writes the error
// response itself and reports false when the caller has no account.
func currentAccount(c *gin.Context) (*models.Account, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	var account models.Account
	if err := database.DB.Preload("Owner").Where("owner_id = ?", userID.(uint)).First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return nil, false
	}
	return &account, true
}

// verifiedAccount is currentAccount plus the verification gate every social
// endpoint requires.
func verifiedAccount(c *gin.Context) (*models.Account, bool) {
	account, ok := currentAccount(c)
	if !ok {
		return nil, false
	}
	if !account.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
		return nil, false
	}
	return account, true
}

// accountByParam resolves the :id path parameter to an account.
func accountByParam(c *gin.Context) (*models.Account, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return nil, false
	}

	var account models.Account
	if err := database.DB.Preload("Owner").First(&account, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return nil, false
	}
	return &account, true
}

// idParam parses the :id path parameter.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

// pageParams reads the page/limit query parameters with the usual bounds.
func pageParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}
	return page, limit
}

// writeDomainError maps core errors onto HTTP statuses.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, social.ErrForbidden),
		errors.Is(err, social.ErrAlreadyFollowing),
		errors.Is(err, social.ErrNotFollower),
		errors.Is(err, social.ErrNoLedger),
		errors.Is(err, engagement.ErrOwnPost),
		errors.Is(err, engagement.ErrNotPostOwner),
		errors.Is(err, engagement.ErrNoFeedSources):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, social.ErrNotFound), errors.Is(err, engagement.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
