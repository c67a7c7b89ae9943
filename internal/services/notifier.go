package services

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/D-Oracle1/Consignment/pkg/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Mailer delivers one email. Transport success is all the core sees.
type Mailer interface {
	Send(to, subject, body string) error
}

// Texter delivers one SMS.
type Texter interface {
	Send(to, message string) error
}

type smtpMailer struct{}

func (smtpMailer) Send(to, subject, body string) error {
	return utils.SendEmail([]string{to}, subject, body)
}

type atTexter struct{}

func (atTexter) Send(to, message string) error {
	return utils.SendSMS(message, []string{to})
}

// Notifier renders templates and fans notifications out to users.
// Dispatch is best-effort throughout: a missing template is a no-op and
// channel failures are logged and swallowed, so the triggering
// operation (shipment creation, status update) always succeeds.
type Notifier struct {
	DB      *gorm.DB
	Mailer  Mailer
	Texter  Texter
	BaseURL string
}

func NewNotifier(db *gorm.DB) *Notifier {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Notifier{
		DB:      db,
		Mailer:  smtpMailer{},
		Texter:  atTexter{},
		BaseURL: baseURL,
	}
}

// RenderTemplate substitutes {{key}} tokens from vars. Tokens without a
// matching variable are left verbatim.
func RenderTemplate(text string, vars map[string]string) string {
	for key, value := range vars {
		text = strings.ReplaceAll(text, "{{"+key+"}}", value)
	}
	return text
}

// Send renders the active template for the event and attempts delivery
// to one user over the requested channels, then records exactly one
// Notification row with the per-channel outcomes.
func (n *Notifier) Send(userID uint, event models.NotificationEvent, notifType models.NotificationType, vars map[string]string) error {
	var template models.NotificationTemplate
	if err := n.DB.Where("event = ?", event).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("No notification template for event %s, skipping", event)
			return nil
		}
		return err
	}
	if !template.IsActive {
		return nil
	}

	var user models.User
	if err := n.DB.First(&user, userID).Error; err != nil {
		return err
	}

	rendered := make(map[string]string, len(vars)+1)
	for k, v := range vars {
		rendered[k] = v
	}
	rendered["customerName"] = user.FullName()

	emailSent := false
	smsSent := false

	if (notifType == models.NotificationEmail || notifType == models.NotificationBoth) && template.EmailBody != "" && n.Mailer != nil {
		subject := RenderTemplate(template.EmailSubject, rendered)
		body := RenderTemplate(template.EmailBody, rendered)
		if err := n.Mailer.Send(user.Email, subject, body); err != nil {
			log.Printf("Email to %s failed: %v", user.Email, err)
		} else {
			emailSent = true
		}
	}

	if (notifType == models.NotificationSMS || notifType == models.NotificationBoth) && template.SMSBody != "" && user.Phone != "" && n.Texter != nil {
		if err := n.Texter.Send(user.Phone, RenderTemplate(template.SMSBody, rendered)); err != nil {
			log.Printf("SMS to %s failed: %v", user.Phone, err)
		} else {
			smsSent = true
		}
	}

	title := RenderTemplate(template.EmailSubject, rendered)
	if title == "" {
		title = string(event)
	}
	message := template.EmailBody
	if message == "" {
		message = template.SMSBody
	}

	metadata := datatypes.JSONMap{}
	for k, v := range vars {
		metadata[k] = v
	}

	notification := models.Notification{
		UserID:    userID,
		Event:     event,
		Type:      notifType,
		Title:     title,
		Message:   RenderTemplate(message, rendered),
		EmailSent: emailSent,
		SMSSent:   smsSent,
		Metadata:  metadata,
	}
	return n.DB.Create(&notification).Error
}

// DispatchShipment notifies the shipment's sender about an event, and
// the receiver too when notifyReceiver is set. The receiver is only
// ever contacted through a registered account, never by raw email.
func (n *Notifier) DispatchShipment(shipmentID uint, event models.NotificationEvent, notifyReceiver bool) {
	var shipment models.Shipment
	if err := n.DB.First(&shipment, shipmentID).Error; err != nil {
		log.Printf("Shipment %d not found for notification: %v", shipmentID, err)
		return
	}

	estimatedDelivery := "TBD"
	if shipment.EstimatedDelivery != nil {
		estimatedDelivery = shipment.EstimatedDelivery.Format("January 2, 2006")
	}

	vars := map[string]string{
		"trackingNumber":    shipment.TrackingNumber,
		"trackingUrl":       n.BaseURL + "/track/" + shipment.TrackingNumber,
		"destination":       shipment.ReceiverCity + ", " + shipment.ReceiverState,
		"estimatedDelivery": estimatedDelivery,
	}

	if err := n.Send(shipment.SenderID, event, models.NotificationBoth, vars); err != nil {
		log.Printf("Notification to sender %d failed: %v", shipment.SenderID, err)
	}

	if notifyReceiver && shipment.ReceiverID != nil {
		if err := n.Send(*shipment.ReceiverID, event, models.NotificationBoth, vars); err != nil {
			log.Printf("Notification to receiver %d failed: %v", *shipment.ReceiverID, err)
		}
	}
}
