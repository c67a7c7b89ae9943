package pricing

import (
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&models.PricingRule{}))
	return db
}

func seedStandardRule(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.PricingRule{
		Name:             "Standard Shipping",
		BaseRate:         5,
		WeightMultiplier: 2,
		VolumeMultiplier: 0.5,
		ZoneMultiplier:   1,
		IsActive:         true,
		Priority:         1,
	}).Error)
}

func seedExpressRule(t *testing.T, db *gorm.DB) {
	t.Helper()
	expressRate := 15.0
	require.NoError(t, db.Create(&models.PricingRule{
		Name:             "Express Shipping",
		BaseRate:         10,
		WeightMultiplier: 3,
		VolumeMultiplier: 0.8,
		ZoneMultiplier:   1.5,
		IsExpress:        true,
		ExpressRate:      &expressRate,
		IsActive:         true,
		Priority:         2,
	}).Error)
}

func TestCalculateCostStandard(t *testing.T) {
	db := setupTestDB(t)
	seedStandardRule(t, db)

	cost := CalculateCost(db, CostInput{
		Weight:   2.5,
		Length:   30,
		Width:    20,
		Height:   15,
		Category: "Electronics",
	})

	// 5 + 2.5*2 + 0.009*0.5 = 10.0045, rounded to cents
	assert.Equal(t, 10.00, cost)
}

func TestCalculateCostExpress(t *testing.T) {
	db := setupTestDB(t)
	seedStandardRule(t, db)
	seedExpressRule(t, db)

	cost := CalculateCost(db, CostInput{
		Weight:    2.5,
		Length:    30,
		Width:     20,
		Height:    15,
		Category:  "Electronics",
		IsExpress: true,
	})

	// (10 + 7.5 + 0.0072 + 15) * 1.5 = 48.7608
	assert.Equal(t, 48.76, cost)
}

func TestCalculateCostFallback(t *testing.T) {
	db := setupTestDB(t)

	cost := CalculateCost(db, CostInput{Weight: 3})

	assert.Equal(t, 15.00, cost)
}

func TestCalculateCostInactiveRuleIgnored(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.PricingRule{
		Name:             "Retired",
		BaseRate:         100,
		WeightMultiplier: 100,
		VolumeMultiplier: 1,
		ZoneMultiplier:   1,
		IsActive:         false,
		Priority:         99,
	}).Error)

	cost := CalculateCost(db, CostInput{Weight: 2})

	assert.Equal(t, 10.00, cost)
}

func TestCalculateCostDistanceAdjustment(t *testing.T) {
	db := setupTestDB(t)
	seedStandardRule(t, db)

	near := CalculateCost(db, CostInput{
		Weight:         2,
		OriginZip:      "10001",
		DestinationZip: "10001",
	})
	far := CalculateCost(db, CostInput{
		Weight:         2,
		OriginZip:      "10001",
		DestinationZip: "90001",
	})

	assert.Greater(t, far, near)

	// Base 5 + 2*2 = 9, distance 40000 miles, 9 * (1 + 40*0.1) = 45
	assert.Equal(t, 45.00, far)
}

func TestCalculateCostUnparseableZipsSkipAdjustment(t *testing.T) {
	db := setupTestDB(t)
	seedStandardRule(t, db)

	plain := CalculateCost(db, CostInput{Weight: 2})
	garbled := CalculateCost(db, CostInput{
		Weight:         2,
		OriginZip:      "ABCDE",
		DestinationZip: "10001",
	})

	assert.Equal(t, plain, garbled)
}

func TestCalculateCostMonotonicInWeight(t *testing.T) {
	db := setupTestDB(t)
	seedStandardRule(t, db)

	light := CalculateCost(db, CostInput{Weight: 1})
	heavy := CalculateCost(db, CostInput{Weight: 10})

	assert.Greater(t, heavy, light)
}

func TestSelectRulePriority(t *testing.T) {
	db := setupTestDB(t)
	seedStandardRule(t, db)
	require.NoError(t, db.Create(&models.PricingRule{
		Name:             "Promo",
		BaseRate:         1,
		WeightMultiplier: 1,
		VolumeMultiplier: 0.1,
		ZoneMultiplier:   1,
		IsActive:         true,
		Priority:         10,
	}).Error)

	rule, ok := SelectRule(db, false, "")
	require.True(t, ok)
	assert.Equal(t, "Promo", rule.Name)
}

func TestVolume(t *testing.T) {
	assert.InDelta(t, 0.009, Volume(30, 20, 15), 1e-9)
	assert.Equal(t, 0.0, Volume(0, 20, 15))
}

func TestDistance(t *testing.T) {
	d, ok := Distance("10001", "90001")
	require.True(t, ok)
	assert.Equal(t, 40000.0, d)

	d, ok = Distance("90001", "10001")
	require.True(t, ok)
	assert.Equal(t, 40000.0, d)

	_, ok = Distance("ABCDE", "10001")
	assert.False(t, ok)

	_, ok = Distance("", "10001")
	assert.False(t, ok)
}

func TestEstimatedDeliveryFrom(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		origin    string
		dest      string
		isExpress bool
		wantDays  int
	}{
		{"short haul", "10001", "10100", false, 3},
		{"over 500 miles", "10001", "12000", false, 5},
		{"over 1000 miles", "10001", "14000", false, 7},
		{"over 2000 miles", "10001", "20001", false, 10},
		{"express short haul", "10001", "10100", true, 1},
		{"express long haul", "10001", "20001", true, 5},
		{"missing zips", "", "", false, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EstimatedDeliveryFrom(now, tc.origin, tc.dest, tc.isExpress)
			assert.Equal(t, now.AddDate(0, 0, tc.wantDays), got)
		})
	}
}
