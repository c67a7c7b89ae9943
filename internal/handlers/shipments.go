package handlers

import (
	"errors"
	"math"
	"strconv"

	"github.com/D-Oracle1/Consignment/internal/middleware"
	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/D-Oracle1/Consignment/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateShipmentRequest struct {
	SenderAddress string `json:"senderAddress" binding:"required,min=5"`
	SenderCity    string `json:"senderCity" binding:"required,min=2"`
	SenderState   string `json:"senderState" binding:"required,min=2"`
	SenderZip     string `json:"senderZip" binding:"required,min=5"`
	SenderCountry string `json:"senderCountry"`

	ReceiverName    string `json:"receiverName" binding:"required,min=2"`
	ReceiverEmail   string `json:"receiverEmail" binding:"omitempty,email"`
	ReceiverPhone   string `json:"receiverPhone" binding:"required,min=10"`
	ReceiverAddress string `json:"receiverAddress" binding:"required,min=5"`
	ReceiverCity    string `json:"receiverCity" binding:"required,min=2"`
	ReceiverState   string `json:"receiverState" binding:"required,min=2"`
	ReceiverZip     string `json:"receiverZip" binding:"required,min=5"`
	ReceiverCountry string `json:"receiverCountry"`

	Weight      float64  `json:"weight" binding:"required,gt=0"`
	Length      *float64 `json:"length" binding:"omitempty,gt=0"`
	Width       *float64 `json:"width" binding:"omitempty,gt=0"`
	Height      *float64 `json:"height" binding:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	Description string   `json:"description"`
}

type UpdateStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// GetShipments lists shipments, newest first. Customers only see those
// they sent or receive; staff see everything.
func GetShipments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := middleware.CurrentRole(c)

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if limit < 1 || limit > 100 {
			limit = 10
		}

		query := db.Model(&models.Shipment{})
		if role == models.RoleCustomer {
			query = query.Where("sender_id = ? OR receiver_id = ?", userID, userID)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch shipments"})
			return
		}

		var shipments []models.Shipment
		if err := query.
			Preload("Sender").
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&shipments).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch shipments"})
			return
		}

		c.JSON(200, gin.H{
			"shipments": shipments,
			"pagination": gin.H{
				"total": total,
				"page":  page,
				"limit": limit,
				"pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		})
	}
}

// CreateShipment prices and registers a new shipment for the sender.
func CreateShipment(svc *services.ShipmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input CreateShipmentRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		shipment, err := svc.Create(userID, services.CreateShipmentInput{
			SenderAddress: input.SenderAddress,
			SenderCity:    input.SenderCity,
			SenderState:   input.SenderState,
			SenderZip:     input.SenderZip,
			SenderCountry: input.SenderCountry,

			ReceiverName:    input.ReceiverName,
			ReceiverEmail:   input.ReceiverEmail,
			ReceiverPhone:   input.ReceiverPhone,
			ReceiverAddress: input.ReceiverAddress,
			ReceiverCity:    input.ReceiverCity,
			ReceiverState:   input.ReceiverState,
			ReceiverZip:     input.ReceiverZip,
			ReceiverCountry: input.ReceiverCountry,

			Weight:      input.Weight,
			Length:      input.Length,
			Width:       input.Width,
			Height:      input.Height,
			Category:    input.Category,
			Description: input.Description,
		})
		if err != nil {
			if errors.Is(err, services.ErrInvalidWeight) {
				c.JSON(400, gin.H{"error": "Weight must be positive"})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to create shipment"})
			return
		}

		c.JSON(201, gin.H{"shipment": shipment})
	}
}

// GetShipment fetches one shipment with its full event history.
// Customers may only see shipments they are party to.
func GetShipment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := middleware.CurrentRole(c)

		var shipment models.Shipment
		if err := db.
			Preload("Sender").
			Preload("Receiver").
			Preload("Events", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at DESC")
			}).
			First(&shipment, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Shipment not found"})
			return
		}

		if role == models.RoleCustomer &&
			shipment.SenderID != userID &&
			(shipment.ReceiverID == nil || *shipment.ReceiverID != userID) {
			c.JSON(403, gin.H{"error": "Access denied"})
			return
		}

		c.JSON(200, gin.H{"shipment": shipment})
	}
}

// DeleteShipment removes a shipment and its events. Admin only.
func DeleteShipment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipment models.Shipment
		if err := db.First(&shipment, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Shipment not found"})
			return
		}

		if err := db.Select("Events").Delete(&shipment).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete shipment"})
			return
		}

		c.JSON(200, gin.H{"message": "Shipment deleted successfully"})
	}
}

// UpdateShipmentStatus applies a status transition. Reachable only
// through the staff role gate; the service handles everything else.
func UpdateShipmentStatus(svc *services.ShipmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID := c.GetUint("userId")

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(404, gin.H{"error": "Shipment not found"})
			return
		}

		var input UpdateStatusRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		shipment, err := svc.UpdateStatus(uint(id), staffID, services.StatusUpdateInput{
			Status:   models.ShipmentStatus(input.Status),
			Location: input.Location,
			Notes:    input.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrShipmentNotFound):
				c.JSON(404, gin.H{"error": "Shipment not found"})
			case errors.Is(err, services.ErrInvalidStatus):
				c.JSON(400, gin.H{"error": "Invalid status value"})
			default:
				c.JSON(500, gin.H{"error": "Failed to update status"})
			}
			return
		}

		c.JSON(200, gin.H{"shipment": shipment})
	}
}
