package handlers

import (
	"encoding/json"

	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/D-Oracle1/Consignment/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TrackShipment is the public tracking lookup. No authentication: the
// tracking number itself is the capability. Responses are cached in
// Redis and invalidated on every status transition.
func TrackShipment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		trackingNumber := c.Param("trackingNumber")

		if cached, ok := services.GetCachedTracking(c.Request.Context(), trackingNumber); ok {
			c.Data(200, "application/json", cached)
			return
		}

		var shipment models.Shipment
		if err := db.
			Preload("Sender").
			Preload("Events", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at DESC")
			}).
			Where("tracking_number = ?", trackingNumber).
			First(&shipment).Error; err != nil {
			c.JSON(404, gin.H{"error": "Shipment not found"})
			return
		}

		response := gin.H{
			"shipment": gin.H{
				"trackingNumber":    shipment.TrackingNumber,
				"status":            shipment.Status,
				"senderName":        shipment.Sender.FullName(),
				"receiverName":      shipment.ReceiverName,
				"receiverCity":      shipment.ReceiverCity,
				"receiverState":     shipment.ReceiverState,
				"estimatedDelivery": shipment.EstimatedDelivery,
				"actualDelivery":    shipment.ActualDelivery,
				"events":            shipment.Events,
			},
		}

		if data, err := json.Marshal(response); err == nil {
			services.CacheTracking(c.Request.Context(), trackingNumber, json.RawMessage(data))
		}

		c.JSON(200, response)
	}
}
