package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"uniarena/backend/internal/database"
	"uniarena/backend/internal/hub"
	"uniarena/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type NotificationResponse struct {
	ID        uint    `json:"id"`
	Content   string  `json:"content"`
	Link      *string `json:"link,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// endregion

// GetNotifications godoc
// @Summary      List own unread notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max items" default(20)
// @Success      200 {array} NotificationResponse
// @Router       /notifications [get]
func GetNotifications(c *gin.Context) {
	userID, _ := c.Get("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var notifications []models.Notification
	if err := database.DB.
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	response := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		response = append(response, NotificationResponse{
			ID:        notification.ID,
			Content:   notification.Content,
			Link:      notification.Link,
			CreatedAt: notification.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, response)
}

// MarkNotificationRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Notification ID"
// @Success      200 {object} map[string]string "{"message": "Notification marked as read"}"
// @Failure      404 {object} ErrorResponse "Notification not found"
// @Router       /notifications/{id}/read [post]
func MarkNotificationRead(c *gin.Context) {
	userID, _ := c.Get("userID")
	notificationID, _ := strconv.Atoi(c.Param("id"))

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// StreamNotifications godoc
// @Summary      Stream notifications over SSE
// @Description  Keeps the connection open and pushes new notifications as server-sent events.
// @Tags         notifications
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Router       /notifications/stream [get]
func StreamNotifications(c *gin.Context) {
	userID, _ := c.Get("userID")

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(userID.(uint), client)
	defer hub.GlobalHub.Unsubscribe(userID.(uint), client)

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(message))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
