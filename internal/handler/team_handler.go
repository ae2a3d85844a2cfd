package handler

import (
	"net/http"
	"strconv"
	"time"

	"uniarena/backend/internal/database"
	"uniarena/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type TeamMemberResponse struct {
	User     PublicUserResponse `json:"user"`
	Role     string             `json:"role"`
	JoinedAt time.Time          `json:"joined_at"`
}

type TeamResponse struct {
	ID      uint                 `json:"id"`
	Name    string               `json:"name"`
	Tag     string               `json:"tag,omitempty"`
	LogoURL string               `json:"logo_url,omitempty"`
	Members []TeamMemberResponse `json:"members"`
}

func newTeamResponse(team models.Team) TeamResponse {
	members := make([]TeamMemberResponse, 0, len(team.Members))
	for _, member := range team.Members {
		members = append(members, TeamMemberResponse{
			User:     buildPublicUserResponse(member.User),
			Role:     member.Role,
			JoinedAt: member.JoinedAt,
		})
	}
	return TeamResponse{
		ID:      team.ID,
		Name:    team.Name,
		Tag:     team.Tag,
		LogoURL: team.LogoURL,
		Members: members,
	}
}

// endregion

func userTeam(c *gin.Context, userID uint) {
	var member models.TeamMember
	if err := database.DB.Where("user_id = ?", userID).First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User is not in a team"})
		return
	}

	var team models.Team
	if err := database.DB.Preload("Members.User").First(&team, member.TeamID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		return
	}

	c.JSON(http.StatusOK, newTeamResponse(team))
}

// GetMyTeam godoc
// @Summary      Get own team
// @Description  Gets the caller's team with all members.
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} TeamResponse
// @Failure      404 {object} ErrorResponse "User is not in a team"
// @Router       /users/me/team [get]
func GetMyTeam(c *gin.Context) {
	userID, _ := c.Get("userID")
	userTeam(c, userID.(uint))
}

// GetUserTeam godoc
// @Summary      Get a user's team
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} TeamResponse
// @Failure      404 {object} ErrorResponse "User is not in a team"
// @Router       /users/{id}/team [get]
func GetUserTeam(c *gin.Context) {
	userID, _ := strconv.Atoi(c.Param("id"))
	userTeam(c, uint(userID))
}
