package handlers

import (
	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/D-Oracle1/Consignment/internal/pricing"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PricingCalculatorRequest struct {
	Weight         float64  `json:"weight" binding:"required,gt=0"`
	Length         *float64 `json:"length" binding:"omitempty,gt=0"`
	Width          *float64 `json:"width" binding:"omitempty,gt=0"`
	Height         *float64 `json:"height" binding:"omitempty,gt=0"`
	OriginZip      string   `json:"originZip" binding:"required,min=5"`
	DestinationZip string   `json:"destinationZip" binding:"required,min=5"`
	IsExpress      bool     `json:"isExpress"`
	Category       string   `json:"category"`
}

// CalculateShipping is the pricing preview: rule selection, cost and
// delivery estimate composed, with no persistence side effect.
func CalculateShipping(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PricingCalculatorRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		in := pricing.CostInput{
			Weight:         input.Weight,
			OriginZip:      input.OriginZip,
			DestinationZip: input.DestinationZip,
			IsExpress:      input.IsExpress,
			Category:       input.Category,
		}
		if input.Length != nil {
			in.Length = *input.Length
		}
		if input.Width != nil {
			in.Width = *input.Width
		}
		if input.Height != nil {
			in.Height = *input.Height
		}

		cost := pricing.CalculateCost(db, in)
		estimatedDelivery := pricing.EstimatedDelivery(input.OriginZip, input.DestinationZip, input.IsExpress)

		c.JSON(200, gin.H{
			"cost":              cost,
			"estimatedDelivery": estimatedDelivery,
		})
	}
}

// GetPricingRules lists all pricing rules for staff review.
func GetPricingRules(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rules []models.PricingRule
		if err := db.Order("priority DESC, created_at DESC").Find(&rules).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch pricing rules"})
			return
		}

		c.JSON(200, gin.H{"rules": rules})
	}
}

type CreatePricingRuleRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	BaseRate         float64  `json:"baseRate" binding:"required,gte=0"`
	WeightMultiplier float64  `json:"weightMultiplier" binding:"gte=0"`
	VolumeMultiplier float64  `json:"volumeMultiplier" binding:"gte=0"`
	ZoneMultiplier   float64  `json:"zoneMultiplier" binding:"required,gt=0"`
	IsExpress        bool     `json:"isExpress"`
	ExpressRate      *float64 `json:"expressRate" binding:"omitempty,gte=0"`
	Category         *string  `json:"category"`
	CategoryRate     *float64 `json:"categoryRate" binding:"omitempty,gte=0"`
	Priority         int      `json:"priority"`
}

// CreatePricingRule adds a pricing rule. Admin only.
func CreatePricingRule(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreatePricingRuleRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		rule := models.PricingRule{
			Name:             input.Name,
			Description:      input.Description,
			BaseRate:         input.BaseRate,
			WeightMultiplier: input.WeightMultiplier,
			VolumeMultiplier: input.VolumeMultiplier,
			ZoneMultiplier:   input.ZoneMultiplier,
			IsExpress:        input.IsExpress,
			ExpressRate:      input.ExpressRate,
			Category:         input.Category,
			CategoryRate:     input.CategoryRate,
			IsActive:         true,
			Priority:         input.Priority,
		}

		if err := db.Create(&rule).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create pricing rule"})
			return
		}

		c.JSON(201, gin.H{"rule": rule})
	}
}
