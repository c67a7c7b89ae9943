package services

import (
	"errors"
	"testing"

	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Shipment{},
		&models.ShipmentEvent{},
		&models.PricingRule{},
		&models.NotificationTemplate{},
		&models.Notification{},
		&models.StaffActivity{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user := models.User{
		Email:     email,
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
		Phone:     "+15550001234",
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, user.HashPassword())
	require.NoError(t, db.Create(&user).Error)
	return &user
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

type fakeTexter struct {
	sent []string
	err  error
}

func (x *fakeTexter) Send(to, message string) error {
	if x.err != nil {
		return x.err
	}
	x.sent = append(x.sent, to)
	return nil
}

func newTestNotifier(db *gorm.DB) (*Notifier, *fakeMailer, *fakeTexter) {
	mailer := &fakeMailer{}
	texter := &fakeTexter{}
	return &Notifier{
		DB:      db,
		Mailer:  mailer,
		Texter:  texter,
		BaseURL: "http://localhost:8080",
	}, mailer, texter
}

func TestRenderTemplate(t *testing.T) {
	out := RenderTemplate("Hi {{customerName}}, track {{trackingNumber}}", map[string]string{
		"customerName":   "Jane Doe",
		"trackingNumber": "CP1234",
	})
	assert.Equal(t, "Hi Jane Doe, track CP1234", out)
}

func TestRenderTemplateUnknownTokenLeftVerbatim(t *testing.T) {
	out := RenderTemplate("Hello {{customerName}}, see {{mystery}}", map[string]string{
		"customerName": "Jane",
	})
	assert.Equal(t, "Hello Jane, see {{mystery}}", out)
}

func TestNotifierSend(t *testing.T) {
	db := setupTestDB(t)
	notifier, mailer, texter := newTestNotifier(db)
	user := createTestUser(t, db, "jane@example.com", models.RoleCustomer)

	require.NoError(t, db.Create(&models.NotificationTemplate{
		Event:        models.EventInTransit,
		EmailSubject: "Shipment {{trackingNumber}} in transit",
		EmailBody:    "Hi {{customerName}}, your shipment is moving.",
		SMSBody:      "{{trackingNumber}} is in transit",
		IsActive:     true,
	}).Error)

	err := notifier.Send(user.ID, models.EventInTransit, models.NotificationBoth, map[string]string{
		"trackingNumber": "CP9999",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"jane@example.com"}, mailer.sent)
	assert.Equal(t, []string{"+15550001234"}, texter.sent)

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, user.ID, notifications[0].UserID)
	assert.Equal(t, models.EventInTransit, notifications[0].Event)
	assert.Equal(t, "Shipment CP9999 in transit", notifications[0].Title)
	assert.True(t, notifications[0].EmailSent)
	assert.True(t, notifications[0].SMSSent)
}

func TestNotifierSendMissingTemplateIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	notifier, mailer, texter := newTestNotifier(db)
	user := createTestUser(t, db, "jane@example.com", models.RoleCustomer)

	err := notifier.Send(user.ID, models.EventFailedDelivery, models.NotificationBoth, nil)
	require.NoError(t, err)

	assert.Empty(t, mailer.sent)
	assert.Empty(t, texter.sent)

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Zero(t, count)
}

func TestNotifierSendInactiveTemplateIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	notifier, mailer, _ := newTestNotifier(db)
	user := createTestUser(t, db, "jane@example.com", models.RoleCustomer)

	require.NoError(t, db.Create(&models.NotificationTemplate{
		Event:        models.EventDelivered,
		EmailSubject: "Delivered",
		EmailBody:    "Done",
		IsActive:     false,
	}).Error)

	require.NoError(t, notifier.Send(user.ID, models.EventDelivered, models.NotificationBoth, nil))

	assert.Empty(t, mailer.sent)

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Zero(t, count)
}

func TestNotifierSendChannelFailureStillRecordsRow(t *testing.T) {
	db := setupTestDB(t)
	notifier, mailer, texter := newTestNotifier(db)
	mailer.err = errors.New("smtp down")
	user := createTestUser(t, db, "jane@example.com", models.RoleCustomer)

	require.NoError(t, db.Create(&models.NotificationTemplate{
		Event:        models.EventDelivered,
		EmailSubject: "Delivered",
		EmailBody:    "Your shipment arrived.",
		SMSBody:      "Delivered",
		IsActive:     true,
	}).Error)

	require.NoError(t, notifier.Send(user.ID, models.EventDelivered, models.NotificationBoth, nil))

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].EmailSent)
	assert.True(t, notifications[0].SMSSent)
	assert.Equal(t, []string{"+15550001234"}, texter.sent)
}

func TestDispatchShipmentReceiverRules(t *testing.T) {
	db := setupTestDB(t)
	notifier, mailer, _ := newTestNotifier(db)
	sender := createTestUser(t, db, "sender@example.com", models.RoleCustomer)
	receiver := createTestUser(t, db, "receiver@example.com", models.RoleCustomer)

	require.NoError(t, db.Create(&models.NotificationTemplate{
		Event:        models.EventDelivered,
		EmailSubject: "Delivered to {{destination}}",
		EmailBody:    "Shipment {{trackingNumber}} delivered.",
		IsActive:     true,
	}).Error)

	shipment := models.Shipment{
		TrackingNumber: "CPTEST01",
		SenderID:       sender.ID,
		ReceiverID:     &receiver.ID,
		ReceiverName:   "Receiver User",
		ReceiverEmail:  receiver.Email,
		ReceiverCity:   "Austin",
		ReceiverState:  "TX",
		Weight:         1,
		Status:         models.StatusOutForDelivery,
	}
	require.NoError(t, db.Create(&shipment).Error)

	notifier.DispatchShipment(shipment.ID, models.EventDelivered, true)
	assert.ElementsMatch(t, []string{"sender@example.com", "receiver@example.com"}, mailer.sent)

	mailer.sent = nil
	notifier.DispatchShipment(shipment.ID, models.EventDelivered, false)
	assert.Equal(t, []string{"sender@example.com"}, mailer.sent)
}

func TestDispatchShipmentUnregisteredReceiverSkipped(t *testing.T) {
	db := setupTestDB(t)
	notifier, mailer, _ := newTestNotifier(db)
	sender := createTestUser(t, db, "sender@example.com", models.RoleCustomer)

	require.NoError(t, db.Create(&models.NotificationTemplate{
		Event:        models.EventOutForDelivery,
		EmailSubject: "Out for delivery",
		EmailBody:    "Shipment {{trackingNumber}} is out for delivery.",
		IsActive:     true,
	}).Error)

	shipment := models.Shipment{
		TrackingNumber: "CPTEST02",
		SenderID:       sender.ID,
		ReceiverName:   "Walk In",
		ReceiverEmail:  "nobody@example.com",
		Weight:         1,
		Status:         models.StatusOutForDelivery,
	}
	require.NoError(t, db.Create(&shipment).Error)

	notifier.DispatchShipment(shipment.ID, models.EventOutForDelivery, true)

	assert.Equal(t, []string{"sender@example.com"}, mailer.sent)
}
