package handler

import (
	"net/http"

	"arguefc/backend/internal/database"
	"arguefc/backend/internal/models"
	"arguefc/backend/internal/social"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// region --- DTOs ---

// PublicAccountResponse is the shape other users see.
type PublicAccountResponse struct {
	ID         uint                   `json:"id" example:"1"`
	FirstName  string                 `json:"first_name"`
	LastName   string                 `json:"last_name"`
	FullName   string                 `json:"full_name"`
	IsVerified bool                   `json:"is_verified"`
	ExtraData  map[string]interface{} `json:"extradata,omitempty"`
}

// PrivateAccountResponse is the caller's own profile, counts included.
type PrivateAccountResponse struct {
	ID                  uint                   `json:"id" example:"1"`
	Name                string                 `json:"name"`
	Email               string                 `json:"email"`
	FirstName           string                 `json:"first_name"`
	LastName            string                 `json:"last_name"`
	IsVerified          bool                   `json:"is_verified"`
	Settings            map[string]interface{} `json:"settings"`
	ExtraData           map[string]interface{} `json:"extradata"`
	Metadata            map[string]interface{} `json:"metadata"`
	FollowersCount      int64                  `json:"followers_count"`
	FollowingCount      int64                  `json:"following_count"`
	ArchivedCount       int64                  `json:"archived_count"`
	BlockedCount        int64                  `json:"blocked_count"`
	PendingRequestCount int64                  `json:"pending_request_count"`
}

// UpdateAccountInput carries profile and settings changes.
type UpdateAccountInput struct {
	FirstName *string                `json:"first_name"`
	LastName  *string                `json:"last_name"`
	Settings  map[string]interface{} `json:"settings"`
	ExtraData map[string]interface{} `json:"extradata"`
	Metadata  map[string]interface{} `json:"metadata"`
	ClubIDs   []uint                 `json:"club_ids"`
}

// endregion

func buildPublicAccountResponse(account models.Account) PublicAccountResponse {
	return PublicAccountResponse{
		ID:         account.ID,
		FirstName:  account.FirstName,
		LastName:   account.LastName,
		FullName:   account.FullName(),
		IsVerified: account.IsVerified,
		ExtraData:  account.ExtraData,
	}
}

func buildPrivateAccountResponse(account models.Account) PrivateAccountResponse {
	resp := PrivateAccountResponse{
		ID:         account.ID,
		Name:       account.Owner.Name,
		Email:      account.Owner.Email,
		FirstName:  account.FirstName,
		LastName:   account.LastName,
		IsVerified: account.IsVerified,
		Settings:   account.Settings,
		ExtraData:  account.ExtraData,
		Metadata:   account.Metadata,
	}

	// Counts are derived from the live sets; an account without a ledger
	// simply reports zeroes.
	if ledger, err := social.FindLedger(database.DB, account.OwnerID, account.ID); err == nil {
		resp.FollowersCount, _ = social.FollowersCount(database.DB, ledger.ID)
		resp.FollowingCount, _ = social.FollowingCount(database.DB, ledger.ID)
		resp.ArchivedCount, _ = social.ArchivedCount(database.DB, ledger.ID)
		resp.BlockedCount, _ = social.BlockedCount(database.DB, ledger.ID)
	}
	resp.PendingRequestCount, _ = social.PendingRequestCount(database.DB, account.ID)

	return resp
}

// GetMe godoc
// @Summary      Get current user's account
// @Description  Retrieves the private profile for the authenticated caller, including relationship counts.
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateAccountResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /accounts/me [get]
func GetMe(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, buildPrivateAccountResponse(*account))
}

// UpdateMe godoc
// @Summary      Update the caller's account
// @Description  Updates profile fields, settings documents and club interests.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateAccountInput true "Changes"
// @Success      200  {object}  PrivateAccountResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /accounts/me [put]
func UpdateMe(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	var input UpdateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.FirstName != nil {
		account.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		account.LastName = *input.LastName
	}
	if input.Settings != nil {
		account.Settings = datatypes.JSONMap(input.Settings)
	}
	if input.ExtraData != nil {
		account.ExtraData = datatypes.JSONMap(input.ExtraData)
	}
	if input.Metadata != nil {
		account.Metadata = datatypes.JSONMap(input.Metadata)
	}

	if err := database.DB.Save(account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		return
	}

	if input.ClubIDs != nil {
		var clubs []*models.ClubInterest
		if len(input.ClubIDs) > 0 {
			database.DB.Find(&clubs, input.ClubIDs)
		}
		if err := database.DB.Model(account).Association("ClubInterests").Replace(clubs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update club interests"})
			return
		}
	}

	c.JSON(http.StatusOK, buildPrivateAccountResponse(*account))
}
