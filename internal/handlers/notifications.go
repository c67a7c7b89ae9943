package handlers

import (
	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetNotifications lists the current user's notifications, newest
// first, along with the unread count.
func GetNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var notifications []models.Notification
		if err := db.
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(50).
			Find(&notifications).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch notifications"})
			return
		}

		var unreadCount int64
		if err := db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Count(&unreadCount).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch notifications"})
			return
		}

		c.JSON(200, gin.H{
			"notifications": notifications,
			"unreadCount":   unreadCount,
		})
	}
}

// MarkNotificationRead marks one of the user's own notifications read.
func MarkNotificationRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var notification models.Notification
		if err := db.
			Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&notification).Error; err != nil {
			c.JSON(404, gin.H{"error": "Notification not found"})
			return
		}

		if err := db.Model(&notification).Update("is_read", true).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to mark notification as read"})
			return
		}

		c.JSON(200, gin.H{"notification": notification})
	}
}
