package handlers

import (
	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateSettingRequest struct {
	Key         string `json:"key" binding:"required"`
	Value       string `json:"value" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// GetSettings returns all settings, optionally filtered by category,
// both as a key/value map and as raw rows.
func GetSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("key ASC")
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}

		var settings []models.Setting
		if err := query.Find(&settings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch settings"})
			return
		}

		settingsMap := make(map[string]string, len(settings))
		for _, setting := range settings {
			settingsMap[setting.Key] = setting.Value
		}

		c.JSON(200, gin.H{"settings": settingsMap, "raw": settings})
	}
}

// UpdateSetting upserts one setting by key. Admin only.
func UpdateSetting(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateSettingRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var setting models.Setting
		err := db.Where("key = ?", input.Key).First(&setting).Error
		if err != nil {
			setting = models.Setting{
				Key:         input.Key,
				Value:       input.Value,
				Category:    input.Category,
				Description: input.Description,
			}
			if err := db.Create(&setting).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to update settings"})
				return
			}
		} else {
			setting.Value = input.Value
			setting.Category = input.Category
			setting.Description = input.Description
			if err := db.Save(&setting).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to update settings"})
				return
			}
		}

		c.JSON(200, gin.H{"setting": setting})
	}
}
