package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/D-Oracle1/Consignment/internal/pricing"
	"github.com/D-Oracle1/Consignment/pkg/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrShipmentNotFound = errors.New("shipment not found")
	ErrInvalidStatus    = errors.New("invalid shipment status")
	ErrInvalidWeight    = errors.New("weight must be positive")
)

// statusEvents maps shipment statuses to notification events. PENDING,
// SORTING_FACILITY, RETURNED and CANCELLED intentionally have no entry
// and trigger no notification.
var statusEvents = map[models.ShipmentStatus]models.NotificationEvent{
	models.StatusReceived:       models.EventPackageReceived,
	models.StatusInTransit:      models.EventInTransit,
	models.StatusOutForDelivery: models.EventOutForDelivery,
	models.StatusDelivered:      models.EventDelivered,
	models.StatusFailed:         models.EventFailedDelivery,
}

// notifyReceiverStatuses are the transitions where the registered
// receiver is told as well as the sender.
func notifyReceiver(status models.ShipmentStatus) bool {
	return status == models.StatusOutForDelivery || status == models.StatusDelivered
}

// ShipmentService owns the shipment lifecycle: creation with pricing,
// and the status transition pipeline with its audit trail and derived
// notifications.
type ShipmentService struct {
	DB       *gorm.DB
	Notifier *Notifier
}

func NewShipmentService(db *gorm.DB, notifier *Notifier) *ShipmentService {
	return &ShipmentService{DB: db, Notifier: notifier}
}

type CreateShipmentInput struct {
	SenderAddress string
	SenderCity    string
	SenderState   string
	SenderZip     string
	SenderCountry string

	ReceiverName    string
	ReceiverEmail   string
	ReceiverPhone   string
	ReceiverAddress string
	ReceiverCity    string
	ReceiverState   string
	ReceiverZip     string
	ReceiverCountry string

	Weight      float64
	Length      *float64
	Width       *float64
	Height      *float64
	Category    *string
	Description string
}

type StatusUpdateInput struct {
	Status   models.ShipmentStatus
	Location string
	Notes    string
}

// Create prices the package, generates a tracking number, resolves the
// receiver to a registered account by email, and persists the shipment
// with its first PENDING event. A PACKAGE_RECEIVED notification goes
// out afterwards, best-effort.
func (s *ShipmentService) Create(senderID uint, in CreateShipmentInput) (*models.Shipment, error) {
	if in.Weight <= 0 {
		return nil, ErrInvalidWeight
	}

	cost := pricing.CalculateCost(s.DB, pricing.CostInput{
		Weight:         in.Weight,
		Length:         derefFloat(in.Length),
		Width:          derefFloat(in.Width),
		Height:         derefFloat(in.Height),
		OriginZip:      in.SenderZip,
		DestinationZip: in.ReceiverZip,
		Category:       derefString(in.Category),
	})
	estimatedDelivery := pricing.EstimatedDelivery(in.SenderZip, in.ReceiverZip, false)

	var receiverID *uint
	if in.ReceiverEmail != "" {
		var receiver models.User
		if err := s.DB.Where("email = ?", in.ReceiverEmail).First(&receiver).Error; err == nil {
			receiverID = &receiver.ID
		}
	}

	shipment := models.Shipment{
		TrackingNumber: utils.GenerateTrackingNumber(),
		SenderID:       senderID,
		ReceiverID:     receiverID,

		SenderAddress: in.SenderAddress,
		SenderCity:    in.SenderCity,
		SenderState:   in.SenderState,
		SenderZip:     in.SenderZip,
		SenderCountry: defaultCountry(in.SenderCountry),

		ReceiverName:    in.ReceiverName,
		ReceiverEmail:   in.ReceiverEmail,
		ReceiverPhone:   in.ReceiverPhone,
		ReceiverAddress: in.ReceiverAddress,
		ReceiverCity:    in.ReceiverCity,
		ReceiverState:   in.ReceiverState,
		ReceiverZip:     in.ReceiverZip,
		ReceiverCountry: defaultCountry(in.ReceiverCountry),

		Weight:      in.Weight,
		Length:      in.Length,
		Width:       in.Width,
		Height:      in.Height,
		Category:    in.Category,
		Description: in.Description,

		EstimatedCost:     cost,
		EstimatedDelivery: &estimatedDelivery,
		Status:            models.StatusPending,

		Events: []models.ShipmentEvent{{
			Status:   models.StatusPending,
			Location: in.SenderCity + ", " + in.SenderState,
			Notes:    "Shipment created",
		}},
	}

	if err := s.DB.Create(&shipment).Error; err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.DispatchShipment(shipment.ID, models.EventPackageReceived, false)
	}

	return &shipment, nil
}

// UpdateStatus applies a status transition on behalf of a staff actor.
// The status write, event append and activity record commit as one
// transaction; the notification and cache side effects run after the
// commit and may fail without affecting it.
//
// Repeated DELIVERED updates re-stamp ActualDelivery with a fresh time;
// that mirrors current product behavior and is left as-is.
func (s *ShipmentService) UpdateStatus(shipmentID, staffID uint, in StatusUpdateInput) (*models.Shipment, error) {
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	var shipment models.Shipment
	if err := s.DB.First(&shipment, shipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShipmentNotFound
		}
		return nil, err
	}
	oldStatus := shipment.Status

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": in.Status}
		if in.Status == models.StatusDelivered {
			now := time.Now()
			updates["actual_delivery"] = now
		}
		if err := tx.Model(&models.Shipment{}).Where("id = ?", shipment.ID).Updates(updates).Error; err != nil {
			return err
		}

		event := models.ShipmentEvent{
			ShipmentID: shipment.ID,
			Status:     in.Status,
			Location:   in.Location,
			Notes:      in.Notes,
			StaffID:    &staffID,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		return LogStaffActivity(tx, staffID, "updated_shipment_status", "shipment", shipment.ID,
			fmt.Sprintf("Updated shipment %s to %s", shipment.TrackingNumber, in.Status),
			datatypes.JSONMap{
				"trackingNumber": shipment.TrackingNumber,
				"oldStatus":      string(oldStatus),
				"newStatus":      string(in.Status),
			})
	})
	if err != nil {
		return nil, err
	}

	if event, ok := statusEvents[in.Status]; ok && s.Notifier != nil {
		s.Notifier.DispatchShipment(shipment.ID, event, notifyReceiver(in.Status))
	}

	ctx := context.Background()
	InvalidateTracking(ctx, shipment.TrackingNumber)
	PublishShipmentUpdate(ctx, shipment.ID, shipment.TrackingNumber, in.Status)

	if err := s.DB.First(&shipment, shipment.ID).Error; err != nil {
		return nil, err
	}
	return &shipment, nil
}

func derefFloat(p *float64) float64 {
	if p != nil {
		return *p
	}
	return 0
}

func derefString(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

func defaultCountry(c string) string {
	if c == "" {
		return "USA"
	}
	return c
}
