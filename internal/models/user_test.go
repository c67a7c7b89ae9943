package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	user := User{Email: "jane@example.com", Password: "secret123"}
	require.NoError(t, user.HashPassword())

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	assert.NoError(t, user.CheckPassword("secret123"))
	assert.Error(t, user.CheckPassword("wrong"))
}

func TestHashPasswordEmptyIsNoOp(t *testing.T) {
	user := User{Email: "jane@example.com"}
	require.NoError(t, user.HashPassword())
	assert.Empty(t, user.PasswordHash)
}

func TestIsStaff(t *testing.T) {
	assert.False(t, RoleCustomer.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleWarehouse.IsStaff())
	assert.True(t, RoleDriver.IsStaff())
}

func TestShipmentStatusValid(t *testing.T) {
	for _, status := range []ShipmentStatus{
		StatusPending, StatusReceived, StatusInTransit, StatusSortingFacility,
		StatusOutForDelivery, StatusDelivered, StatusReturned, StatusFailed,
		StatusCancelled,
	} {
		assert.True(t, status.Valid(), string(status))
	}
	assert.False(t, ShipmentStatus("TELEPORTED").Valid())
	assert.False(t, ShipmentStatus("").Valid())
}

func TestShipmentStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusInTransit.IsTerminal())
}
