package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realahmed45/future-bali-frontend/internal/notify"
)

// HandleListNotifications handles GET /notifications
func HandleListNotifications(center *notify.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"notifications": center.Active()})
	}
}

// HandleDismissNotification handles DELETE /notifications/:id
func HandleDismissNotification(center *notify.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !center.Dismiss(c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
