package handlers

import (
	"log"
	"time"

	"github.com/D-Oracle1/Consignment/internal/middleware"
	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/D-Oracle1/Consignment/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreatePickupRequest struct {
	PickupAddress string `json:"pickupAddress" binding:"required,min=5"`
	PickupCity    string `json:"pickupCity" binding:"required,min=2"`
	PickupState   string `json:"pickupState" binding:"required,min=2"`
	PickupZip     string `json:"pickupZip" binding:"required,min=5"`
	PickupCountry string `json:"pickupCountry"`
	PreferredDate string `json:"preferredDate" binding:"required"`
	PreferredTime string `json:"preferredTime" binding:"required"`
	PackageCount  int    `json:"packageCount" binding:"omitempty,gt=0"`
	Notes         string `json:"notes"`
}

type UpdatePickupRequest struct {
	Status     string `json:"status" binding:"omitempty,oneof=PENDING SCHEDULED COMPLETED CANCELLED"`
	ShipmentID *uint  `json:"shipmentId"`
	Notes      string `json:"notes"`
}

// GetPickups lists pickup requests: customers their own, staff all.
func GetPickups(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := middleware.CurrentRole(c)

		query := db.Preload("Customer").Preload("Shipment").Order("created_at DESC")
		if role == models.RoleCustomer {
			query = query.Where("customer_id = ?", userID)
		}

		var pickups []models.PickupRequest
		if err := query.Find(&pickups).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch pickup requests"})
			return
		}

		c.JSON(200, gin.H{"pickups": pickups})
	}
}

// CreatePickup registers a customer pickup request.
func CreatePickup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input CreatePickupRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		preferredDate, err := time.Parse("2006-01-02", input.PreferredDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid preferred date, expected YYYY-MM-DD"})
			return
		}

		packageCount := input.PackageCount
		if packageCount == 0 {
			packageCount = 1
		}
		country := input.PickupCountry
		if country == "" {
			country = "USA"
		}

		pickup := models.PickupRequest{
			CustomerID:    userID,
			PickupAddress: input.PickupAddress,
			PickupCity:    input.PickupCity,
			PickupState:   input.PickupState,
			PickupZip:     input.PickupZip,
			PickupCountry: country,
			PreferredDate: preferredDate,
			PreferredTime: input.PreferredTime,
			PackageCount:  packageCount,
			Notes:         input.Notes,
			Status:        models.PickupPending,
		}

		if err := db.Create(&pickup).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create pickup request"})
			return
		}

		c.JSON(201, gin.H{"pickup": pickup})
	}
}

// UpdatePickup lets staff schedule, complete or cancel a pickup.
// Completing stamps CompletedDate; scheduling notifies the customer.
func UpdatePickup(db *gorm.DB, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID := c.GetUint("userId")

		var pickup models.PickupRequest
		if err := db.First(&pickup, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Pickup request not found"})
			return
		}

		var input UpdatePickupRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		oldStatus := pickup.Status
		updates := map[string]interface{}{}
		if input.Status != "" {
			updates["status"] = input.Status
			if models.PickupStatus(input.Status) == models.PickupCompleted {
				now := time.Now()
				updates["completed_date"] = now
			}
		}
		if input.ShipmentID != nil {
			updates["shipment_id"] = *input.ShipmentID
		}
		if input.Notes != "" {
			updates["notes"] = input.Notes
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&pickup).Updates(updates).Error; err != nil {
				return err
			}
			return services.LogStaffActivity(tx, staffID, "updated_pickup_request", "pickup", pickup.ID,
				"Updated pickup request",
				datatypes.JSONMap{
					"oldStatus": string(oldStatus),
					"newStatus": input.Status,
				})
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to update pickup request"})
			return
		}

		if notifier != nil && models.PickupStatus(input.Status) == models.PickupScheduled {
			if err := notifier.Send(pickup.CustomerID, models.EventPickupScheduled, models.NotificationBoth, map[string]string{
				"preferredDate": pickup.PreferredDate.Format("January 2, 2006"),
				"preferredTime": pickup.PreferredTime,
				"pickupAddress": pickup.PickupAddress,
			}); err != nil {
				log.Printf("Pickup notification to customer %d failed: %v", pickup.CustomerID, err)
			}
		}

		if err := db.First(&pickup, pickup.ID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update pickup request"})
			return
		}

		c.JSON(200, gin.H{"pickup": pickup})
	}
}
