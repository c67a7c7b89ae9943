package database

import (
	"github.com/D-Oracle1/Consignment/internal/models"
	"gorm.io/gorm"
)

// SeedDefaults installs the default pricing rules and notification
// templates on first boot. Existing rows are left alone.
func SeedDefaults(db *gorm.DB) error {
	if err := seedPricingRules(db); err != nil {
		return err
	}
	return seedNotificationTemplates(db)
}

func seedPricingRules(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PricingRule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	expressRate := 15.0
	rules := []models.PricingRule{
		{
			Name:             "Standard Shipping",
			Description:      "Standard shipping rates based on weight and volume",
			BaseRate:         5.0,
			WeightMultiplier: 2.0,
			VolumeMultiplier: 0.5,
			ZoneMultiplier:   1.0,
			IsActive:         true,
			Priority:         1,
		},
		{
			Name:             "Express Shipping",
			Description:      "Express/priority shipping with faster delivery",
			BaseRate:         10.0,
			WeightMultiplier: 3.0,
			VolumeMultiplier: 0.8,
			ZoneMultiplier:   1.5,
			IsExpress:        true,
			ExpressRate:      &expressRate,
			IsActive:         true,
			Priority:         2,
		},
	}
	return db.Create(&rules).Error
}

func seedNotificationTemplates(db *gorm.DB) error {
	templates := []models.NotificationTemplate{
		{
			Event:        models.EventPackageReceived,
			EmailSubject: "Package Received - {{trackingNumber}}",
			EmailBody:    "Dear {{customerName}},\n\nYour package with tracking number {{trackingNumber}} has been received at our facility.\n\nThank you for choosing ConsignPro!",
			SMSBody:      "Your package {{trackingNumber}} has been received. Track it at {{trackingUrl}}",
			IsActive:     true,
		},
		{
			Event:        models.EventInTransit,
			EmailSubject: "Package In Transit - {{trackingNumber}}",
			EmailBody:    "Dear {{customerName}},\n\nYour package {{trackingNumber}} is now in transit to {{destination}}.\n\nEstimated delivery: {{estimatedDelivery}}",
			SMSBody:      "Your package {{trackingNumber}} is in transit. Expected delivery: {{estimatedDelivery}}",
			IsActive:     true,
		},
		{
			Event:        models.EventOutForDelivery,
			EmailSubject: "Out for Delivery - {{trackingNumber}}",
			EmailBody:    "Dear {{customerName}},\n\nYour package {{trackingNumber}} is out for delivery today!\n\nPlease ensure someone is available to receive it.",
			SMSBody:      "Your package {{trackingNumber}} is out for delivery today!",
			IsActive:     true,
		},
		{
			Event:        models.EventDelivered,
			EmailSubject: "Package Delivered - {{trackingNumber}}",
			EmailBody:    "Dear {{customerName}},\n\nYour package {{trackingNumber}} has been successfully delivered.\n\nThank you for using ConsignPro!",
			SMSBody:      "Your package {{trackingNumber}} has been delivered. Thank you!",
			IsActive:     true,
		},
	}

	for _, template := range templates {
		var existing models.NotificationTemplate
		err := db.Where("event = ?", template.Event).First(&existing).Error
		if err == nil {
			continue
		}
		if err := db.Create(&template).Error; err != nil {
			return err
		}
	}
	return nil
}
