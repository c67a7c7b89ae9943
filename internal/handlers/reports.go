package handlers

import (
	"time"

	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetShipmentsReport produces the shipments report over an optional
// date range: rows, per-status counts and revenue over paid shipments.
// ADMIN and WAREHOUSE only.
func GetShipmentsReport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Shipment{})

		startDate := c.Query("startDate")
		endDate := c.Query("endDate")
		if startDate != "" && endDate != "" {
			start, err1 := time.Parse("2006-01-02", startDate)
			end, err2 := time.Parse("2006-01-02", endDate)
			if err1 != nil || err2 != nil {
				c.JSON(400, gin.H{"error": "Invalid date range, expected YYYY-MM-DD"})
				return
			}
			// Inclusive end date
			end = end.AddDate(0, 0, 1)
			query = query.Where("created_at >= ? AND created_at < ?", start, end)
		}

		var shipments []models.Shipment
		if err := query.Session(&gorm.Session{}).
			Preload("Sender").
			Order("created_at DESC").
			Find(&shipments).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate report"})
			return
		}

		var statusCounts []statusCount
		query.Session(&gorm.Session{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&statusCounts)

		var totalRevenue float64
		query.Session(&gorm.Session{}).
			Where("is_paid = ?", true).
			Select("COALESCE(SUM(actual_cost), 0)").
			Scan(&totalRevenue)

		c.JSON(200, gin.H{
			"shipments": shipments,
			"statistics": gin.H{
				"statusCounts":   statusCounts,
				"totalRevenue":   totalRevenue,
				"totalShipments": len(shipments),
			},
		})
	}
}
