package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/D-Oracle1/Consignment/internal/middleware"
	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/D-Oracle1/Consignment/internal/services"
	"github.com/D-Oracle1/Consignment/pkg/utils"
	"github.com/gin-gonic/gin"
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
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, user.HashPassword())
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func newStatusRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewShipmentService(db, nil)
	r := gin.New()
	r.POST("/api/shipments/:id/status",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(models.StaffRoles...),
		UpdateShipmentStatus(svc))
	return r
}

func createPendingShipment(t *testing.T, db *gorm.DB, senderID uint) *models.Shipment {
	t.Helper()
	shipment := models.Shipment{
		TrackingNumber: utils.GenerateTrackingNumber(),
		SenderID:       senderID,
		ReceiverName:   "Jane Doe",
		Weight:         2,
		Status:         models.StatusPending,
		Events: []models.ShipmentEvent{{
			Status: models.StatusPending,
			Notes:  "Shipment created",
		}},
	}
	require.NoError(t, db.Create(&shipment).Error)
	return &shipment
}

func postStatus(r *gin.Engine, token string, shipmentID uint, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/shipments/%d/status", shipmentID),
		strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateShipmentStatusAsStaff(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := newStatusRouter(db)

	sender := createTestUser(t, db, "sender@example.com", models.RoleCustomer)
	staff := createTestUser(t, db, "staff@example.com", models.RoleWarehouse)
	shipment := createPendingShipment(t, db, sender.ID)

	token, err := utils.GenerateToken(staff)
	require.NoError(t, err)

	w := postStatus(r, token, shipment.ID, `{"status":"IN_TRANSIT","location":"Dallas Hub"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Shipment
	require.NoError(t, db.First(&updated, shipment.ID).Error)
	assert.Equal(t, models.StatusInTransit, updated.Status)
}

func TestUpdateShipmentStatusCustomerRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := newStatusRouter(db)

	customer := createTestUser(t, db, "customer@example.com", models.RoleCustomer)
	shipment := createPendingShipment(t, db, customer.ID)

	token, err := utils.GenerateToken(customer)
	require.NoError(t, err)

	w := postStatus(r, token, shipment.ID, `{"status":"DELIVERED"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Nothing about the shipment changed
	var unchanged models.Shipment
	require.NoError(t, db.First(&unchanged, shipment.ID).Error)
	assert.Equal(t, models.StatusPending, unchanged.Status)
	assert.Nil(t, unchanged.ActualDelivery)

	var eventCount, activityCount int64
	db.Model(&models.ShipmentEvent{}).Where("shipment_id = ?", shipment.ID).Count(&eventCount)
	db.Model(&models.StaffActivity{}).Count(&activityCount)
	assert.EqualValues(t, 1, eventCount)
	assert.Zero(t, activityCount)
}

func TestUpdateShipmentStatusUnknownShipment(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := newStatusRouter(db)

	staff := createTestUser(t, db, "staff@example.com", models.RoleAdmin)
	token, err := utils.GenerateToken(staff)
	require.NoError(t, err)

	w := postStatus(r, token, 9999, `{"status":"IN_TRANSIT"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateShipmentStatusInvalidValue(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := newStatusRouter(db)

	sender := createTestUser(t, db, "sender@example.com", models.RoleCustomer)
	staff := createTestUser(t, db, "staff@example.com", models.RoleDriver)
	shipment := createPendingShipment(t, db, sender.ID)

	token, err := utils.GenerateToken(staff)
	require.NoError(t, err)

	w := postStatus(r, token, shipment.ID, `{"status":"TELEPORTED"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
