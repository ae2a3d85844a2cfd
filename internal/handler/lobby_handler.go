package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"uniarena/backend/internal/membership"
	"uniarena/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Membership is the lobby workflow service, wired in main.
var Membership *membership.Service

// region --- DTOs ---

type LobbyInput struct {
	GameID          uint   `json:"game_id" binding:"required"`
	TournamentID    *uint  `json:"tournament_id"`
	Name            string `json:"name"`
	MaxParticipants int    `json:"max_participants" binding:"required,min=2,max=10"`
}

type LobbyResponse struct {
	ID               uint                  `json:"id"`
	Name             string                `json:"name,omitempty"`
	MaxParticipants  int                   `json:"max_participants"`
	ParticipantCount int                   `json:"participant_count"`
	Status           string                `json:"status"`
	TournamentID     *uint                 `json:"tournament_id,omitempty"`
	Game             GameResponse          `json:"game"`
	Owner            PublicUserResponse    `json:"owner"`
	Participants     []PublicUserResponse  `json:"participants,omitempty"`
}

type JoinRequestResponse struct {
	ID          uint                `json:"id"`
	LobbyID     uint                `json:"lobby_id"`
	Status      string              `json:"status"`
	RequestedAt string              `json:"requested_at"`
	Requester   PublicUserResponse  `json:"requester"`
}

type RespondInput struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

func newLobbyResponse(lobby models.Lobby) LobbyResponse {
	participants := make([]PublicUserResponse, 0, len(lobby.Participants))
	for _, participant := range lobby.Participants {
		participants = append(participants, buildPublicUserResponse(participant.User))
	}

	return LobbyResponse{
		ID:               lobby.ID,
		Name:             lobby.Name,
		MaxParticipants:  lobby.MaxParticipants,
		ParticipantCount: len(lobby.Participants),
		Status:           string(lobby.Status),
		TournamentID:     lobby.TournamentID,
		Game:             newGameResponse(lobby.Game),
		Owner:            buildPublicUserResponse(lobby.Creator),
		Participants:     participants,
	}
}

// newLobbySummaryResponse projects a lobby for list views. List reads load
// participant rows only for the seat count, not the joined user info, so the
// summary ships participant_count and no identities.
func newLobbySummaryResponse(lobby models.Lobby) LobbyResponse {
	response := newLobbyResponse(lobby)
	response.Participants = nil
	return response
}

func newJoinRequestResponse(request models.JoinRequest) JoinRequestResponse {
	return JoinRequestResponse{
		ID:          request.ID,
		LobbyID:     request.LobbyID,
		Status:      string(request.Status),
		RequestedAt: request.RequestedAt.Format(time.RFC3339),
		Requester:   buildPublicUserResponse(request.Requester),
	}
}

// endregion

// membershipError translates workflow errors into HTTP responses. The
// underlying error is logged; clients get a short message and the right
// status code.
func membershipError(c *gin.Context, err error) {
	var partial *membership.PartialError

	switch {
	case errors.Is(err, membership.ErrInvalidCapacity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Max participants must be at least 2"})
	case errors.Is(err, membership.ErrAlreadyRequested):
		c.JSON(http.StatusConflict, gin.H{"error": "You already have a pending request for this lobby"})
	case errors.Is(err, membership.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the lobby owner can do this"})
	case errors.Is(err, membership.ErrLobbyFull):
		c.JSON(http.StatusConflict, gin.H{"error": "Lobby is full"})
	case errors.Is(err, membership.ErrProfileRequired):
		c.JSON(http.StatusConflict, gin.H{"error": "A game profile for this tournament's game is required"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.As(err, &partial):
		log.Printf("handler: partial failure: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation partially failed, please retry"})
	default:
		log.Printf("handler: lobby operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}

// CreateLobby godoc
// @Summary      Create a new lobby
// @Description  Creates an open lobby owned by the caller.
// @Tags         lobbies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body LobbyInput true "Lobby Info"
// @Success      201  {object}  LobbyResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /lobbies [post]
func CreateLobby(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input LobbyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lobby, err := Membership.CreateLobby(userID.(uint), input.GameID, input.MaxParticipants, membership.CreateLobbyOptions{
		Name:         input.Name,
		TournamentID: input.TournamentID,
	})
	if err != nil {
		membershipError(c, err)
		return
	}

	view, err := Membership.View(lobby.ID)
	if err != nil {
		membershipError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newLobbyResponse(view.Lobby))
}

// ListLobbies godoc
// @Summary      List open lobbies
// @Description  Gets open lobbies, newest first, optionally filtered by game.
// @Tags         lobbies
// @Produce      json
// @Security     BearerAuth
// @Param        game_id query int false "Filter by Game ID"
// @Success      200 {array} LobbyResponse
// @Router       /lobbies [get]
func ListLobbies(c *gin.Context) {
	var gameID *uint
	if raw := c.Query("game_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game_id"})
			return
		}
		id := uint(parsed)
		gameID = &id
	}

	lobbies, err := Membership.ListOpen(gameID)
	if err != nil {
		membershipError(c, err)
		return
	}

	response := make([]LobbyResponse, 0, len(lobbies))
	for _, lobby := range lobbies {
		response = append(response, newLobbySummaryResponse(lobby))
	}

	c.JSON(http.StatusOK, response)
}

// GetLobbyByID godoc
// @Summary      Get a lobby by ID
// @Description  Gets full details for a single lobby, including whether the caller may request to join.
// @Tags         lobbies
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Lobby ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse "Lobby not found"
// @Router       /lobbies/{id} [get]
func GetLobbyByID(c *gin.Context) {
	userID, _ := c.Get("userID")
	lobbyID, _ := strconv.Atoi(c.Param("id"))

	view, err := Membership.View(uint(lobbyID))
	if err != nil {
		membershipError(c, err)
		return
	}

	lobby := view.Lobby
	lobby.Participants = view.Participants

	c.JSON(http.StatusOK, gin.H{
		"lobby":               newLobbyResponse(lobby),
		"can_request_join":    membership.CanRequestJoin(view, userID.(uint)),
		"has_pending_request": membership.HasPendingRequest(view, userID.(uint)),
		"is_participant":      membership.IsParticipant(view, userID.(uint)),
	})
}

// DeleteLobby godoc
// @Summary      Delete a lobby (Owner only)
// @Description  Removes the lobby's participants and then the lobby itself.
// @Tags         lobbies
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Lobby ID"
// @Success      200 {object} map[string]string "{"message": "Lobby deleted"}"
// @Failure      403 {object} ErrorResponse "Only the owner can delete the lobby"
// @Router       /lobbies/{id} [delete]
func DeleteLobby(c *gin.Context) {
	userID, _ := c.Get("userID")
	lobbyID, _ := strconv.Atoi(c.Param("id"))

	if err := Membership.DeleteLobby(userID.(uint), uint(lobbyID)); err != nil {
		membershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lobby deleted"})
}

// SubmitJoinRequest godoc
// @Summary      Request to join a lobby
// @Description  Records a pending join request and notifies the lobby owner.
// @Tags         lobbies
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Lobby ID"
// @Success      201 {object} JoinRequestResponse
// @Failure      409 {object} ErrorResponse "Already requested or profile missing"
// @Router       /lobbies/{id}/requests [post]
func SubmitJoinRequest(c *gin.Context) {
	userID, _ := c.Get("userID")
	lobbyID, _ := strconv.Atoi(c.Param("id"))

	request, err := Membership.SubmitRequest(uint(lobbyID), userID.(uint))
	if err != nil {
		membershipError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newJoinRequestResponse(request))
}

// CancelJoinRequest godoc
// @Summary      Withdraw own join request
// @Description  Deletes the caller's join request for the lobby regardless of status.
// @Tags         lobbies
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Lobby ID"
// @Success      200 {object} map[string]string "{"message": "Request cancelled"}"
// @Router       /lobbies/{id}/requests [delete]
func CancelJoinRequest(c *gin.Context) {
	userID, _ := c.Get("userID")
	lobbyID, _ := strconv.Atoi(c.Param("id"))

	if err := Membership.CancelRequest(uint(lobbyID), userID.(uint)); err != nil {
		membershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request cancelled"})
}

// ListJoinRequests godoc
// @Summary      List a lobby's join requests (Owner only)
// @Description  Gets every join request for the lobby in request order.
// @Tags         lobbies
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Lobby ID"
// @Success      200 {array} JoinRequestResponse
// @Failure      403 {object} ErrorResponse "Only the owner can list requests"
// @Router       /lobbies/{id}/requests [get]
func ListJoinRequests(c *gin.Context) {
	userID, _ := c.Get("userID")
	lobbyID, _ := strconv.Atoi(c.Param("id"))

	view, err := Membership.View(uint(lobbyID))
	if err != nil {
		membershipError(c, err)
		return
	}
	if !membership.CanRespond(view, userID.(uint)) {
		membershipError(c, membership.ErrNotAuthorized)
		return
	}

	requests, err := Membership.ListRequests(uint(lobbyID))
	if err != nil {
		membershipError(c, err)
		return
	}

	response := make([]JoinRequestResponse, 0, len(requests))
	for _, request := range requests {
		response = append(response, newJoinRequestResponse(request))
	}

	c.JSON(http.StatusOK, response)
}

// RespondJoinRequest godoc
// @Summary      Approve or reject a join request (Owner only)
// @Description  Sets the request status; approval seats the requester.
// @Tags         lobbies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        requestID path int          true "Request ID"
// @Param        input     body RespondInput true "Response"
// @Success      200 {object} JoinRequestResponse
// @Failure      403 {object} ErrorResponse "Only the owner can respond"
// @Failure      409 {object} ErrorResponse "Lobby is full"
// @Router       /lobbies/requests/{requestID} [post]
func RespondJoinRequest(c *gin.Context) {
	userID, _ := c.Get("userID")
	requestID, _ := strconv.Atoi(c.Param("requestID"))

	var input RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := Membership.Respond(userID.(uint), uint(requestID), models.JoinRequestStatus(input.Status))
	if err != nil {
		membershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, newJoinRequestResponse(request))
}

// RemoveLobbyParticipant godoc
// @Summary      Remove a participant from a lobby
// @Description  The owner may remove anyone; a participant may remove themselves.
// @Tags         lobbies
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int true "Lobby ID"
// @Param        userID path int true "User ID"
// @Success      200 {object} map[string]string "{"message": "Participant removed"}"
// @Failure      403 {object} ErrorResponse
// @Router       /lobbies/{id}/participants/{userID} [delete]
func RemoveLobbyParticipant(c *gin.Context) {
	actorID, _ := c.Get("userID")
	lobbyID, _ := strconv.Atoi(c.Param("id"))
	targetID, _ := strconv.Atoi(c.Param("userID"))

	if err := Membership.RemoveParticipant(actorID.(uint), uint(lobbyID), uint(targetID)); err != nil {
		membershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participant removed"})
}
