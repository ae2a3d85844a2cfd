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

type AnnouncementInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type AnnouncementResponse struct {
	ID        uint               `json:"id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
	Author    PublicUserResponse `json:"author"`
}

func newAnnouncementResponse(announcement models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        announcement.ID,
		Title:     announcement.Title,
		Content:   announcement.Content,
		CreatedAt: announcement.CreatedAt,
		Author:    buildPublicUserResponse(announcement.Author),
	}
}

// endregion

// GetAnnouncements godoc
// @Summary      List announcements
// @Description  Gets the latest announcements with author info.
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max items" default(20)
// @Success      200 {array} AnnouncementResponse
// @Router       /announcements [get]
func GetAnnouncements(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var announcements []models.Announcement
	if err := database.DB.Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}

	response := make([]AnnouncementResponse, 0, len(announcements))
	for _, announcement := range announcements {
		response = append(response, newAnnouncementResponse(announcement))
	}

	c.JSON(http.StatusOK, response)
}

// CreateAnnouncement godoc
// @Summary      Create an announcement (Admin only)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AnnouncementInput true "Announcement"
// @Success      201 {object} AnnouncementResponse
// @Failure      400 {object} ErrorResponse
// @Router       /admin/announcements [post]
func CreateAnnouncement(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	announcement := models.Announcement{
		UserID:  userID.(uint),
		Title:   input.Title,
		Content: input.Content,
	}
	if err := database.DB.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}

	database.DB.Preload("Author").First(&announcement, announcement.ID)
	c.JSON(http.StatusCreated, newAnnouncementResponse(announcement))
}

// UpdateAnnouncement godoc
// @Summary      Update an announcement (Admin only)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int               true "Announcement ID"
// @Param        input body AnnouncementInput true "New content"
// @Success      200 {object} AnnouncementResponse
// @Failure      404 {object} ErrorResponse "Announcement not found"
// @Router       /admin/announcements/{id} [put]
func UpdateAnnouncement(c *gin.Context) {
	announcementID, _ := strconv.Atoi(c.Param("id"))

	var announcement models.Announcement
	if err := database.DB.Preload("Author").First(&announcement, announcementID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	var input AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	announcement.Title = input.Title
	announcement.Content = input.Content
	if err := database.DB.Save(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update announcement"})
		return
	}

	c.JSON(http.StatusOK, newAnnouncementResponse(announcement))
}

// DeleteAnnouncement godoc
// @Summary      Delete an announcement (Admin only)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Announcement ID"
// @Success      200 {object} map[string]string "{"message": "Announcement deleted"}"
// @Failure      404 {object} ErrorResponse "Announcement not found"
// @Router       /admin/announcements/{id} [delete]
func DeleteAnnouncement(c *gin.Context) {
	announcementID, _ := strconv.Atoi(c.Param("id"))

	var announcement models.Announcement
	if err := database.DB.First(&announcement, announcementID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	if err := database.DB.Delete(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete announcement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}
