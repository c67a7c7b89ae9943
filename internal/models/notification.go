package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationEvent is the coarse status-change category used to pick a
// message template. It is deliberately narrower than ShipmentStatus:
// PENDING, SORTING_FACILITY, RETURNED and CANCELLED have no event.
type NotificationEvent string

const (
	EventPackageReceived NotificationEvent = "PACKAGE_RECEIVED"
	EventInTransit       NotificationEvent = "IN_TRANSIT"
	EventOutForDelivery  NotificationEvent = "OUT_FOR_DELIVERY"
	EventDelivered       NotificationEvent = "DELIVERED"
	EventFailedDelivery  NotificationEvent = "FAILED_DELIVERY"
	EventPickupScheduled NotificationEvent = "PICKUP_SCHEDULED"
)

type NotificationType string

const (
	NotificationEmail NotificationType = "EMAIL"
	NotificationSMS   NotificationType = "SMS"
	NotificationBoth  NotificationType = "BOTH"
)

// NotificationTemplate holds the message bodies for one event. Bodies
// may contain {{variable}} placeholders filled in at dispatch time.
type NotificationTemplate struct {
	gorm.Model
	Event        NotificationEvent `json:"event" gorm:"column:event;uniqueIndex;not null"`
	EmailSubject string            `json:"emailSubject" gorm:"column:email_subject"`
	EmailBody    string            `json:"emailBody" gorm:"column:email_body"`
	SMSBody      string            `json:"smsBody" gorm:"column:sms_body"`
	IsActive     bool              `json:"isActive" gorm:"column:is_active;not null;default:true"`
}

// TableName specifies the table name
func (NotificationTemplate) TableName() string {
	return "notification_templates"
}

// Notification records one dispatch attempt to one recipient, including
// whether each channel actually went out.
type Notification struct {
	gorm.Model
	UserID    uint              `json:"userId" gorm:"column:user_id;not null;index"`
	User      User              `json:"-" gorm:"foreignKey:UserID"`
	Event     NotificationEvent `json:"event" gorm:"column:event;not null"`
	Type      NotificationType  `json:"type" gorm:"column:type;not null"`
	Title     string            `json:"title" gorm:"column:title"`
	Message   string            `json:"message" gorm:"column:message"`
	EmailSent bool              `json:"emailSent" gorm:"column:email_sent;not null;default:false"`
	SMSSent   bool              `json:"smsSent" gorm:"column:sms_sent;not null;default:false"`
	Metadata  datatypes.JSONMap `json:"metadata" gorm:"column:metadata"`
	IsRead    bool              `json:"isRead" gorm:"column:is_read;not null;default:false"`
}

// TableName specifies the table name
func (Notification) TableName() string {
	return "notifications"
}
