package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"uniarena/backend/internal/database"
	"uniarena/backend/internal/hub"
	"uniarena/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type InvitationResponse struct {
	ID        uint               `json:"id"`
	LobbyID   uint               `json:"lobby_id"`
	LobbyName string             `json:"lobby_name,omitempty"`
	Status    string             `json:"status"`
	InvitedAt time.Time          `json:"invited_at"`
	Inviter   PublicUserResponse `json:"inviter"`
}

func newInvitationResponse(invitation models.LobbyInvitation) InvitationResponse {
	return InvitationResponse{
		ID:        invitation.ID,
		LobbyID:   invitation.LobbyID,
		LobbyName: invitation.Lobby.Name,
		Status:    string(invitation.Status),
		InvitedAt: invitation.InvitedAt,
		Inviter:   buildPublicUserResponse(invitation.Inviter),
	}
}

// endregion

// InviteToLobby godoc
// @Summary      Invite a user to a lobby
// @Description  Creates a pending invitation and notifies the invited user.
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int true "Lobby ID"
// @Param        userID path int true "User ID to invite"
// @Success      201 {object} InvitationResponse
// @Failure      404 {object} ErrorResponse "Lobby or user not found"
// @Failure      409 {object} ErrorResponse "Already invited"
// @Router       /lobbies/{id}/invitations/{userID} [post]
func InviteToLobby(c *gin.Context) {
	inviterID, _ := c.Get("userID")
	lobbyID, _ := strconv.Atoi(c.Param("id"))
	invitedID, _ := strconv.Atoi(c.Param("userID"))

	var lobby models.Lobby
	if err := database.DB.First(&lobby, lobbyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lobby not found"})
		return
	}

	var invited models.User
	if err := database.DB.First(&invited, invitedID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var existing models.LobbyInvitation
	if err := database.DB.Where("lobby_id = ? AND invited_user_id = ? AND status = ?",
		lobbyID, invitedID, models.InvitationPending).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User is already invited"})
		return
	}

	invitation := models.LobbyInvitation{
		LobbyID:       uint(lobbyID),
		InvitedUserID: uint(invitedID),
		InviterUserID: inviterID.(uint),
		Status:        models.InvitationPending,
		InvitedAt:     time.Now(),
	}
	if err := database.DB.Create(&invitation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}

	// Fire-and-forget notification, like the join-request path.
	link := fmt.Sprintf("lobby:%d", lobbyID)
	notification := models.Notification{
		UserID:  uint(invitedID),
		Content: "You have been invited to a lobby!",
		Link:    &link,
	}
	if err := database.DB.Create(&notification).Error; err == nil {
		hub.GlobalHub.Notify(uint(invitedID), hub.Event{Type: "notification", Payload: notification})
	}

	invitation.Lobby = lobby
	c.JSON(http.StatusCreated, newInvitationResponse(invitation))
}

// GetMyInvitations godoc
// @Summary      List own pending lobby invitations
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} InvitationResponse
// @Router       /users/me/invitations [get]
func GetMyInvitations(c *gin.Context) {
	userID, _ := c.Get("userID")

	var invitations []models.LobbyInvitation
	if err := database.DB.
		Preload("Lobby").
		Preload("Inviter").
		Where("invited_user_id = ? AND status = ?", userID, models.InvitationPending).
		Order("invited_at DESC").
		Find(&invitations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invitations"})
		return
	}

	response := make([]InvitationResponse, 0, len(invitations))
	for _, invitation := range invitations {
		response = append(response, newInvitationResponse(invitation))
	}

	c.JSON(http.StatusOK, response)
}

// AcceptInvitation godoc
// @Summary      Accept a lobby invitation
// @Description  Marks the invitation accepted and seats the user in the lobby.
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Invitation ID"
// @Success      200 {object} map[string]string "{"message": "Invitation accepted"}"
// @Failure      404 {object} ErrorResponse "Invitation not found"
// @Router       /invitations/{id}/accept [post]
func AcceptInvitation(c *gin.Context) {
	userID, _ := c.Get("userID")
	invitationID, _ := strconv.Atoi(c.Param("id"))

	var invitation models.LobbyInvitation
	if err := database.DB.Where("id = ? AND invited_user_id = ? AND status = ?",
		invitationID, userID, models.InvitationPending).First(&invitation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		return
	}

	now := time.Now()
	invitation.Status = models.InvitationAccepted
	invitation.RespondedAt = &now
	if err := database.DB.Save(&invitation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept invitation"})
		return
	}

	// Seating goes through the workflow service so the capacity and
	// idempotency rules match the approval path.
	if err := Membership.SeatInvited(invitation.LobbyID, userID.(uint)); err != nil {
		membershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation accepted"})
}

// DeclineInvitation godoc
// @Summary      Decline a lobby invitation
// @Tags         invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Invitation ID"
// @Success      200 {object} map[string]string "{"message": "Invitation declined"}"
// @Failure      404 {object} ErrorResponse "Invitation not found"
// @Router       /invitations/{id}/decline [post]
func DeclineInvitation(c *gin.Context) {
	userID, _ := c.Get("userID")
	invitationID, _ := strconv.Atoi(c.Param("id"))

	var invitation models.LobbyInvitation
	if err := database.DB.Where("id = ? AND invited_user_id = ? AND status = ?",
		invitationID, userID, models.InvitationPending).First(&invitation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		return
	}

	now := time.Now()
	invitation.Status = models.InvitationDeclined
	invitation.RespondedAt = &now
	if err := database.DB.Save(&invitation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decline invitation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation declined"})
}
