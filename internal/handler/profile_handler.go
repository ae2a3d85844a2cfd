package handler

import (
	"net/http"
	"strconv"

	"uniarena/backend/internal/database"
	"uniarena/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type GameProfileInput struct {
	GameID   uint   `json:"game_id" binding:"required"`
	Nickname string `json:"nickname" binding:"required"`
	Rank     string `json:"rank"`
}

type GameProfileResponse struct {
	ID       uint   `json:"id"`
	GameID   uint   `json:"game_id"`
	GameName string `json:"game_name,omitempty"`
	Nickname string `json:"nickname"`
	Rank     string `json:"rank,omitempty"`
}

func newGameProfileResponse(profile models.GameProfile) GameProfileResponse {
	return GameProfileResponse{
		ID:       profile.ID,
		GameID:   profile.GameID,
		GameName: profile.Game.Name,
		Nickname: profile.Nickname,
		Rank:     profile.Rank,
	}
}

// endregion

// GetMyGameProfiles godoc
// @Summary      List own game profiles
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} GameProfileResponse
// @Router       /users/me/game-profiles [get]
func GetMyGameProfiles(c *gin.Context) {
	userID, _ := c.Get("userID")

	var profiles []models.GameProfile
	if err := database.DB.Preload("Game").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game profiles"})
		return
	}

	response := make([]GameProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		response = append(response, newGameProfileResponse(profile))
	}

	c.JSON(http.StatusOK, response)
}

// UpsertGameProfile godoc
// @Summary      Create or update a game profile
// @Description  Creates the profile for (user, game), or updates nickname and rank if it exists.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameProfileInput true "Profile Info"
// @Success      200 {object} GameProfileResponse
// @Failure      400 {object} ErrorResponse
// @Router       /users/me/game-profiles [put]
func UpsertGameProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input GameProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var game models.Game
	if err := database.DB.First(&game, input.GameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var profile models.GameProfile
	err := database.DB.Where("user_id = ? AND game_id = ?", userID, input.GameID).First(&profile).Error
	if err == nil {
		profile.Nickname = input.Nickname
		profile.Rank = input.Rank
		if err := database.DB.Save(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game profile"})
			return
		}
	} else {
		profile = models.GameProfile{
			UserID:   userID.(uint),
			GameID:   input.GameID,
			Nickname: input.Nickname,
			Rank:     input.Rank,
		}
		if err := database.DB.Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game profile"})
			return
		}
	}

	profile.Game = game
	c.JSON(http.StatusOK, newGameProfileResponse(profile))
}

// DeleteGameProfile godoc
// @Summary      Delete a game profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        gameID path int true "Game ID"
// @Success      200 {object} map[string]string "{"message": "Game profile deleted"}"
// @Failure      404 {object} ErrorResponse "Game profile not found"
// @Router       /users/me/game-profiles/{gameID} [delete]
func DeleteGameProfile(c *gin.Context) {
	userID, _ := c.Get("userID")
	gameID, _ := strconv.Atoi(c.Param("gameID"))

	result := database.DB.Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&models.GameProfile{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete game profile"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game profile deleted"})
}
