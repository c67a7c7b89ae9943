package handlers

import (
	"time"

	"github.com/D-Oracle1/Consignment/internal/middleware"
	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type statusCount struct {
	Status models.ShipmentStatus `json:"status"`
	Count  int64                 `json:"count"`
}

// GetDashboardStats serves the dashboard counters. Customers get their
// own shipment counts; staff get today/month volumes, revenue over paid
// shipments and a status breakdown.
func GetDashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := middleware.CurrentRole(c)

		if role == models.RoleCustomer {
			mine := db.Model(&models.Shipment{}).Where("sender_id = ? OR receiver_id = ?", userID, userID)

			var total, inTransit, delivered int64
			if err := mine.Session(&gorm.Session{}).Count(&total).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch stats"})
				return
			}
			mine.Session(&gorm.Session{}).
				Where("status IN ?", []models.ShipmentStatus{models.StatusInTransit, models.StatusOutForDelivery}).
				Count(&inTransit)
			mine.Session(&gorm.Session{}).
				Where("status = ?", models.StatusDelivered).
				Count(&delivered)

			c.JSON(200, gin.H{
				"totalShipments": total,
				"inTransit":      inTransit,
				"delivered":      delivered,
			})
			return
		}

		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

		var shipmentsToday, shipmentsMonth, pending, inTransit, deliveredToday, deliveredMonth int64
		db.Model(&models.Shipment{}).Where("created_at >= ?", today).Count(&shipmentsToday)
		db.Model(&models.Shipment{}).Where("created_at >= ?", thisMonth).Count(&shipmentsMonth)
		db.Model(&models.Shipment{}).Where("status = ?", models.StatusPending).Count(&pending)
		db.Model(&models.Shipment{}).
			Where("status IN ?", []models.ShipmentStatus{models.StatusInTransit, models.StatusOutForDelivery}).
			Count(&inTransit)
		db.Model(&models.Shipment{}).
			Where("status = ? AND actual_delivery >= ?", models.StatusDelivered, today).
			Count(&deliveredToday)
		db.Model(&models.Shipment{}).
			Where("status = ? AND actual_delivery >= ?", models.StatusDelivered, thisMonth).
			Count(&deliveredMonth)

		var revenueToday, revenueMonth float64
		db.Model(&models.Shipment{}).
			Where("is_paid = ? AND created_at >= ?", true, today).
			Select("COALESCE(SUM(actual_cost), 0)").
			Scan(&revenueToday)
		db.Model(&models.Shipment{}).
			Where("is_paid = ? AND created_at >= ?", true, thisMonth).
			Select("COALESCE(SUM(actual_cost), 0)").
			Scan(&revenueMonth)

		var breakdown []statusCount
		db.Model(&models.Shipment{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&breakdown)

		c.JSON(200, gin.H{
			"today": gin.H{
				"shipments": shipmentsToday,
				"delivered": deliveredToday,
				"revenue":   revenueToday,
			},
			"month": gin.H{
				"shipments": shipmentsMonth,
				"delivered": deliveredMonth,
				"revenue":   revenueMonth,
			},
			"pending":         pending,
			"inTransit":       inTransit,
			"statusBreakdown": breakdown,
		})
	}
}
