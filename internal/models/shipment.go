package models

import (
	"time"

	"gorm.io/gorm"
)

type ShipmentStatus string

const (
	StatusPending         ShipmentStatus = "PENDING"
	StatusReceived        ShipmentStatus = "RECEIVED"
	StatusInTransit       ShipmentStatus = "IN_TRANSIT"
	StatusSortingFacility ShipmentStatus = "SORTING_FACILITY"
	StatusOutForDelivery  ShipmentStatus = "OUT_FOR_DELIVERY"
	StatusDelivered       ShipmentStatus = "DELIVERED"
	StatusReturned        ShipmentStatus = "RETURNED"
	StatusFailed          ShipmentStatus = "FAILED"
	StatusCancelled       ShipmentStatus = "CANCELLED"
)

var shipmentStatuses = map[ShipmentStatus]bool{
	StatusPending:         true,
	StatusReceived:        true,
	StatusInTransit:       true,
	StatusSortingFacility: true,
	StatusOutForDelivery:  true,
	StatusDelivered:       true,
	StatusReturned:        true,
	StatusFailed:          true,
	StatusCancelled:       true,
}

func (s ShipmentStatus) Valid() bool {
	return shipmentStatuses[s]
}

// IsTerminal reports whether no further carrier handling is expected.
func (s ShipmentStatus) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusReturned, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

type Shipment struct {
	gorm.Model
	TrackingNumber string `json:"trackingNumber" gorm:"column:tracking_number;uniqueIndex;not null"`

	SenderID   uint  `json:"senderId" gorm:"column:sender_id;not null;index"`
	Sender     User  `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	ReceiverID *uint `json:"receiverId,omitempty" gorm:"column:receiver_id;index"`
	Receiver   *User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`

	SenderAddress string `json:"senderAddress" gorm:"column:sender_address;not null"`
	SenderCity    string `json:"senderCity" gorm:"column:sender_city;not null"`
	SenderState   string `json:"senderState" gorm:"column:sender_state;not null"`
	SenderZip     string `json:"senderZip" gorm:"column:sender_zip;not null"`
	SenderCountry string `json:"senderCountry" gorm:"column:sender_country;not null;default:'USA'"`

	ReceiverName    string `json:"receiverName" gorm:"column:receiver_name;not null"`
	ReceiverEmail   string `json:"receiverEmail" gorm:"column:receiver_email"`
	ReceiverPhone   string `json:"receiverPhone" gorm:"column:receiver_phone;not null"`
	ReceiverAddress string `json:"receiverAddress" gorm:"column:receiver_address;not null"`
	ReceiverCity    string `json:"receiverCity" gorm:"column:receiver_city;not null"`
	ReceiverState   string `json:"receiverState" gorm:"column:receiver_state;not null"`
	ReceiverZip     string `json:"receiverZip" gorm:"column:receiver_zip;not null"`
	ReceiverCountry string `json:"receiverCountry" gorm:"column:receiver_country;not null;default:'USA'"`

	Weight      float64  `json:"weight" gorm:"column:weight;not null"`
	Length      *float64 `json:"length,omitempty" gorm:"column:length"`
	Width       *float64 `json:"width,omitempty" gorm:"column:width"`
	Height      *float64 `json:"height,omitempty" gorm:"column:height"`
	Category    *string  `json:"category,omitempty" gorm:"column:category"`
	Description string   `json:"description" gorm:"column:description"`

	EstimatedCost float64  `json:"estimatedCost" gorm:"column:estimated_cost;not null"`
	ActualCost    *float64 `json:"actualCost,omitempty" gorm:"column:actual_cost"`
	IsPaid        bool     `json:"isPaid" gorm:"column:is_paid;not null;default:false"`

	Status            ShipmentStatus `json:"status" gorm:"column:status;not null;default:'PENDING';index"`
	EstimatedDelivery *time.Time     `json:"estimatedDelivery,omitempty" gorm:"column:estimated_delivery"`
	ActualDelivery    *time.Time     `json:"actualDelivery,omitempty" gorm:"column:actual_delivery"`
	DeliveryProofURL  string         `json:"deliveryProofUrl,omitempty" gorm:"column:delivery_proof_url"`

	Events []ShipmentEvent `json:"events,omitempty" gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (Shipment) TableName() string {
	return "shipments"
}

// ShipmentEvent is one append-only history entry for a shipment. Events
// are never updated or deleted; together they form the audit trail.
type ShipmentEvent struct {
	gorm.Model
	ShipmentID uint           `json:"shipmentId" gorm:"column:shipment_id;not null;index"`
	Status     ShipmentStatus `json:"status" gorm:"column:status;not null"`
	Location   string         `json:"location" gorm:"column:location"`
	Notes      string         `json:"notes" gorm:"column:notes"`
	StaffID    *uint          `json:"staffId,omitempty" gorm:"column:staff_id"`
}

// TableName specifies the table name
func (ShipmentEvent) TableName() string {
	return "shipment_events"
}
