package handler

import (
	"net/http"

	"arguefc/backend/internal/database"
	"arguefc/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// ClubInterestInput defines the structure for creating a club.
type ClubInterestInput struct {
	Name      string                 `json:"name" binding:"required"`
	League    string                 `json:"league"`
	Thumbnail map[string]interface{} `json:"thumbnail"`
}

// ClubInterestResponse is a club in list views.
type ClubInterestResponse struct {
	ID        uint                   `json:"id"`
	Name      string                 `json:"name"`
	League    string                 `json:"league"`
	Thumbnail map[string]interface{} `json:"thumbnail,omitempty"`
}

func newClubInterestResponse(club models.ClubInterest) ClubInterestResponse {
	return ClubInterestResponse{
		ID:        club.ID,
		Name:      club.Name,
		League:    club.League,
		Thumbnail: club.Thumbnail,
	}
}

// CreateClubInterest godoc
// @Summary      Create a club
// @Description  Admin-only: registers a club accounts can mark as an interest.
// @Tags         admin-clubs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ClubInterestInput true "Club Info"
// @Success      201  {object}  ClubInterestResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/clubs [post]
func CreateClubInterest(c *gin.Context) {
	var input ClubInterestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	club := models.ClubInterest{
		Name:      input.Name,
		League:    input.League,
		Thumbnail: datatypes.JSONMap(input.Thumbnail),
	}
	if err := database.DB.Create(&club).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create club"})
		return
	}

	c.JSON(http.StatusCreated, newClubInterestResponse(club))
}

// GetClubInterests godoc
// @Summary      List clubs
// @Tags         clubs
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[ClubInterestResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /clubs [get]
func GetClubInterests(c *gin.Context) {
	page, limit := pageParams(c)

	result, err := Paginate[models.ClubInterest](database.DB.Model(&models.ClubInterest{}), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clubs"})
		return
	}

	clubs := make([]ClubInterestResponse, 0, len(result.Data))
	for _, club := range result.Data {
		clubs = append(clubs, newClubInterestResponse(club))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(clubs, result.Meta.TotalItems, page, limit))
}
