package database

import (
	"github.com/D-Oracle1/Consignment/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Shipment{},
		&models.ShipmentEvent{},
		&models.PricingRule{},
		&models.NotificationTemplate{},
		&models.Notification{},
		&models.StaffActivity{},
		&models.PickupRequest{},
		&models.Setting{},
	)
	if err != nil {
		return err
	}

	// Constrain role to the known set
	if db.Migrator().HasTable(&models.User{}) {
		db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`)
		db.Exec(`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('CUSTOMER', 'ADMIN', 'WAREHOUSE', 'DRIVER'))`)
	}

	return nil
}
