package models

import (
	"time"

	"gorm.io/gorm"
)

type PickupStatus string

const (
	PickupPending   PickupStatus = "PENDING"
	PickupScheduled PickupStatus = "SCHEDULED"
	PickupCompleted PickupStatus = "COMPLETED"
	PickupCancelled PickupStatus = "CANCELLED"
)

// PickupRequest is a customer request to have packages collected from
// an address. Staff schedule and complete it; completing stamps
// CompletedDate.
type PickupRequest struct {
	gorm.Model
	CustomerID uint      `json:"customerId" gorm:"column:customer_id;not null;index"`
	Customer   User      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ShipmentID *uint     `json:"shipmentId,omitempty" gorm:"column:shipment_id"`
	Shipment   *Shipment `json:"shipment,omitempty" gorm:"foreignKey:ShipmentID"`

	PickupAddress string `json:"pickupAddress" gorm:"column:pickup_address;not null"`
	PickupCity    string `json:"pickupCity" gorm:"column:pickup_city;not null"`
	PickupState   string `json:"pickupState" gorm:"column:pickup_state;not null"`
	PickupZip     string `json:"pickupZip" gorm:"column:pickup_zip;not null"`
	PickupCountry string `json:"pickupCountry" gorm:"column:pickup_country;not null;default:'USA'"`

	PreferredDate time.Time    `json:"preferredDate" gorm:"column:preferred_date;not null"`
	PreferredTime string       `json:"preferredTime" gorm:"column:preferred_time;not null"`
	PackageCount  int          `json:"packageCount" gorm:"column:package_count;not null;default:1"`
	Notes         string       `json:"notes" gorm:"column:notes"`
	Status        PickupStatus `json:"status" gorm:"column:status;not null;default:'PENDING'"`
	CompletedDate *time.Time   `json:"completedDate,omitempty" gorm:"column:completed_date"`
}

// TableName specifies the table name
func (PickupRequest) TableName() string {
	return "pickup_requests"
}
