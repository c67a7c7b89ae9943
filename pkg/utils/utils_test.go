package utils

import (
	"testing"

	"github.com/D-Oracle1/Consignment/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrackingNumber(t *testing.T) {
	for i := 0; i < 10; i++ {
		tn := GenerateTrackingNumber()
		assert.Regexp(t, `^CP\d{17,}$`, tn)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{
		Email: "jane@example.com",
		Role:  models.RoleAdmin,
	}
	user.ID = 42

	tokenString, err := GenerateToken(user)
	require.NoError(t, err)

	token, err := ValidateToken(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["id"])
	assert.Equal(t, "jane@example.com", claims["email"])
	assert.Equal(t, "ADMIN", claims["role"])
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	tokenString, err := GenerateToken(&models.User{Email: "x@example.com", Role: models.RoleCustomer})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ValidateToken(tokenString)
	assert.Error(t, err)
}
