package handler

import (
	"fmt"
	"net/http"

	"arguefc/backend/internal/database"
	"arguefc/backend/internal/models"
	"arguefc/backend/internal/social"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// FriendsDetailsResponse aggregates the caller's relationship ledger.
type FriendsDetailsResponse struct {
	FollowersCount      int64                   `json:"followers_count"`
	FollowingCount      int64                   `json:"following_count"`
	ArchivedCount       int64                   `json:"archived_count"`
	BlockedCount        int64                   `json:"blocked_count"`
	PendingRequestCount int64                   `json:"pending_request_count"`
	Followers           []PublicAccountResponse `json:"followers"`
	Following           []PublicAccountResponse `json:"following"`
	Archived            []PublicAccountResponse `json:"archived"`
	Blocked             []PublicAccountResponse `json:"blocked"`
}

// FriendRequestResponse is one pending request in the new_requests view.
type FriendRequestResponse struct {
	ID     uint                  `json:"id"`
	Sender PublicAccountResponse `json:"sender"`
	Status string                `json:"status"`
}

// endregion

func buildAccountResponses(accounts []models.Account) []PublicAccountResponse {
	responses := make([]PublicAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, buildPublicAccountResponse(a))
	}
	return responses
}

// serveLedgerSet is the shared implementation of the paginated set views.
// An account without a ledger yet simply gets an empty page.
func serveLedgerSet(c *gin.Context, queryFor func(db *gorm.DB, ledgerID uint) *gorm.DB) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}

	page, limit := pageParams(c)

	ledger, err := social.FindLedger(database.DB, account.OwnerID, account.ID)
	if err != nil {
		c.JSON(http.StatusOK, NewPaginatedResponse([]PublicAccountResponse{}, 0, page, limit))
		return
	}

	result, err := Paginate[models.Account](queryFor(database.DB, ledger.ID), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(
		buildAccountResponses(result.Data), result.Meta.TotalItems, page, limit))
}

// GetFriendsDetails godoc
// @Summary      Get the caller's relationship ledger
// @Description  Returns the live followers/following/archived/blocked sets with their counts and the pending request count.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  FriendsDetailsResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /friends/friends_details [get]
func GetFriendsDetails(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}

	resp := FriendsDetailsResponse{
		Followers: []PublicAccountResponse{},
		Following: []PublicAccountResponse{},
		Archived:  []PublicAccountResponse{},
		Blocked:   []PublicAccountResponse{},
	}
	resp.PendingRequestCount, _ = social.PendingRequestCount(database.DB, account.ID)

	ledger, err := social.FindLedger(database.DB, account.OwnerID, account.ID)
	if err != nil {
		// No ledger yet: every set is empty.
		c.JSON(http.StatusOK, resp)
		return
	}

	var full models.Friendship
	err = database.DB.
		Preload("Followers").Preload("Following").
		Preload("Archived").Preload("Blocked").
		First(&full, ledger.ID).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends details"})
		return
	}

	resp.FollowersCount = int64(len(full.Followers))
	resp.FollowingCount = int64(len(full.Following))
	resp.ArchivedCount = int64(len(full.Archived))
	resp.BlockedCount = int64(len(full.Blocked))
	for _, a := range full.Followers {
		resp.Followers = append(resp.Followers, buildPublicAccountResponse(*a))
	}
	for _, a := range full.Following {
		resp.Following = append(resp.Following, buildPublicAccountResponse(*a))
	}
	for _, a := range full.Archived {
		resp.Archived = append(resp.Archived, buildPublicAccountResponse(*a))
	}
	for _, a := range full.Blocked {
		resp.Blocked = append(resp.Blocked, buildPublicAccountResponse(*a))
	}

	c.JSON(http.StatusOK, resp)
}

// GetFollowers godoc
// @Summary      List followers
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PublicAccountResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /friends/followers [get]
func GetFollowers(c *gin.Context) {
	serveLedgerSet(c, social.FollowersQuery)
}

// GetFollowings godoc
// @Summary      List accounts the caller follows
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PublicAccountResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /friends/followings [get]
func GetFollowings(c *gin.Context) {
	serveLedgerSet(c, social.FollowingQuery)
}

// GetBlocked godoc
// @Summary      List blocked accounts
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PublicAccountResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /friends/blocked [get]
func GetBlocked(c *gin.Context) {
	serveLedgerSet(c, social.BlockedQuery)
}

// GetNewRequests godoc
// @Summary      List pending friend requests
// @Description  Requests addressed to the caller that are still PENDING, oldest first.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[FriendRequestResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /friends/new_requests [get]
func GetNewRequests(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}

	page, limit := pageParams(c)
	query := social.PendingRequestsQuery(database.DB, account.ID)

	result, err := Paginate[models.FriendRequest](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	requests := make([]FriendRequestResponse, 0, len(result.Data))
	for _, r := range result.Data {
		requests = append(requests, FriendRequestResponse{
			ID:     r.ID,
			Sender: buildPublicAccountResponse(r.Sender),
			Status: string(r.Status),
		})
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(requests, result.Meta.TotalItems, page, limit))
}

// SendRequest godoc
// @Summary      Follow an account or request to
// @Description  Follows a public account (mutating both ledgers atomically) or files a pending friend request for a private one.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target Account ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Unverified, self-target or already following"
// @Failure      404  {object}  ErrorResponse "Target account not found"
// @Router       /friends/{id}/send_request [post]
func SendRequest(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}
	target, ok := accountByParam(c)
	if !ok {
		return
	}

	outcome, err := social.Follow(database.DB, account, target)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	switch outcome {
	case social.OutcomeRequested:
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf(
			"Your friend request has been sent to %s. You will be added when this account accepts your invite.",
			target.Owner.Name)})
	default:
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("You are now following %s", target.Owner.Name)})
	}
}

// AcceptRequest godoc
// @Summary      Accept a friend request
// @Description  Marks the request accepted and establishes the mutual follow edge in one transaction.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friend Request ID"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Caller is not the addressed receiver"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Router       /friends/{id}/accept_request [post]
func AcceptRequest(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}
	requestID, ok := idParam(c)
	if !ok {
		return
	}

	sender, err := social.AcceptRequest(database.DB, account, requestID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf(
		"You accepted %s's request and they are now added to your followers.", sender.FullName())})
}

// DeclineRequest godoc
// @Summary      Decline a friend request
// @Description  Marks the request declined and deletes it; the sender may request again later.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friend Request ID"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Caller is not the addressed receiver"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Router       /friends/{id}/decline_request [delete]
func DeclineRequest(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}
	requestID, ok := idParam(c)
	if !ok {
		return
	}

	sender, err := social.DeclineRequest(database.DB, account, requestID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("You declined %s's request.", sender.FullName())})
}

// BlockUnblockToggle godoc
// @Summary      Block or unblock an account
// @Description  Blocking moves a follower to the blocked set; toggling again returns them to followers (never to following).
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target Account ID"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Target is not a follower"
// @Failure      404  {object}  ErrorResponse "Target account not found"
// @Router       /friends/{id}/block_unblock_toggle [put]
func BlockUnblockToggle(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}
	target, ok := accountByParam(c)
	if !ok {
		return
	}

	outcome, err := social.ToggleBlock(database.DB, account, target)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if outcome == social.OutcomeBlocked {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("You have blocked %s", target.FullName())})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("You have unblocked %s", target.FullName())})
}

// FollowUnfollowToggle godoc
// @Summary      Follow or unfollow an account
// @Description  Flips the target's membership in the caller's following set only; private targets are directed to the request flow.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target Account ID"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target account not found"
// @Router       /friends/{id}/follow_unfollow_toggle [put]
func FollowUnfollowToggle(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}
	target, ok := accountByParam(c)
	if !ok {
		return
	}

	outcome, err := social.ToggleFollow(database.DB, account, target)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	switch outcome {
	case social.OutcomePrivate:
		c.JSON(http.StatusOK, gin.H{"message": "This account is private, send a friend request"})
	case social.OutcomeFollowing:
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("You are now following %s", target.FullName())})
	default:
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("You unfollowed %s", target.FullName())})
	}
}

// ViewAccount godoc
// @Summary      View a related account
// @Description  Shows another account's public profile; only followers or followed accounts are visible.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Account ID"
// @Success      200  {object}  PublicAccountResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "No relationship with the target"
// @Failure      404  {object}  ErrorResponse "Account not found"
// @Router       /friends/{id}/view_account [get]
func ViewAccount(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}
	target, ok := accountByParam(c)
	if !ok {
		return
	}
	if !target.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
		return
	}

	ledger, err := social.FindLedger(database.DB, account.OwnerID, account.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	isFollower, err := social.IsFollower(database.DB, ledger.ID, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check relationship"})
		return
	}
	isFollowing, err := social.IsFollowing(database.DB, ledger.ID, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check relationship"})
		return
	}
	if !isFollower && !isFollowing {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
		return
	}

	c.JSON(http.StatusOK, buildPublicAccountResponse(*target))
}

// Suggest godoc
// @Summary      Suggest accounts to follow
// @Description  Two-hop expansion along the followers edge: followers of the caller's followers, minus the caller and existing followers.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PublicAccountResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "No relationship ledger yet"
// @Router       /friends/suggest [get]
func Suggest(c *gin.Context) {
	account, ok := verifiedAccount(c)
	if !ok {
		return
	}

	query, err := social.SuggestQuery(database.DB, account)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	page, limit := pageParams(c)
	result, err := Paginate[models.Account](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(
		buildAccountResponses(result.Data), result.Meta.TotalItems, page, limit))
}
