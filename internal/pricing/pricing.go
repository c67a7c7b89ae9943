package pricing

import (
	"math"
	"strings"
	"time"

	"github.com/D-Oracle1/Consignment/internal/models"
	"gorm.io/gorm"
)

// DefaultRatePerKg prices a shipment when no active rule matches.
const DefaultRatePerKg = 5.0

// CostInput carries the package attributes a quote is computed from.
// Zero dimensions mean "not provided"; empty zips skip the distance
// adjustment. Weight must be positive, enforced by caller validation.
type CostInput struct {
	Weight         float64
	Length         float64
	Width          float64
	Height         float64
	OriginZip      string
	DestinationZip string
	IsExpress      bool
	Category       string
}

// SelectRule picks the active pricing rule applicable to the given
// express flag and category. Among applicable rules the highest
// priority wins; ties go to the most recently created rule.
func SelectRule(db *gorm.DB, isExpress bool, category string) (*models.PricingRule, bool) {
	query := db.Where("is_active = ?", true)
	if isExpress {
		query = query.Where("is_express = ?", true)
	}
	if category != "" {
		query = query.Where("(category IS NULL OR category = ?)", category)
	}

	var rule models.PricingRule
	err := query.Order("priority DESC, created_at DESC").First(&rule).Error
	if err != nil {
		return nil, false
	}
	return &rule, true
}

// CalculateCost prices a shipment against the selected rule. With no
// matching rule it falls back to weight * DefaultRatePerKg; that is the
// normal quote for an unconfigured system, not an error.
func CalculateCost(db *gorm.DB, in CostInput) float64 {
	rule, ok := SelectRule(db, in.IsExpress, in.Category)
	if !ok {
		return round2(in.Weight * DefaultRatePerKg)
	}

	cost := rule.BaseRate

	// Weight-based pricing
	cost += in.Weight * rule.WeightMultiplier

	// Volume-based pricing, only when all three dimensions are known
	if in.Length > 0 && in.Width > 0 && in.Height > 0 {
		volume := Volume(in.Length, in.Width, in.Height)
		cost += volume * rule.VolumeMultiplier
	}

	// Distance adjustment: +10% per 1000 miles
	if in.OriginZip != "" && in.DestinationZip != "" {
		if distance, ok := Distance(in.OriginZip, in.DestinationZip); ok {
			cost *= 1 + (distance/1000)*0.1
		}
	}

	// Express surcharge
	if in.IsExpress && rule.ExpressRate != nil {
		cost += *rule.ExpressRate
	}

	// Category surcharge
	if in.Category != "" && rule.Category != nil && *rule.Category == in.Category && rule.CategoryRate != nil {
		cost += *rule.CategoryRate
	}

	cost *= rule.ZoneMultiplier

	return round2(cost)
}

// Volume converts length/width/height in cm to cubic meters.
func Volume(length, width, height float64) float64 {
	return (length * width * height) / 1000000
}

// Distance is a deliberately rough stand-in for geographic distance in
// miles, derived from the numeric gap between the two zip codes. A real
// geocoding service can replace this without changing callers. The
// second return is false when either zip carries no digits.
func Distance(zip1, zip2 string) (float64, bool) {
	num1, ok1 := zipNumber(zip1)
	num2, ok2 := zipNumber(zip2)
	if !ok1 || !ok2 {
		return 0, false
	}
	diff := num1 - num2
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) * 0.5, true
}

func zipNumber(zip string) (int64, bool) {
	var digits strings.Builder
	for _, r := range zip {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	var n int64
	for _, r := range digits.String() {
		n = n*10 + int64(r-'0')
	}
	return n, true
}

// EstimatedDeliveryFrom derives the expected delivery date from the
// distance proxy and the express flag, counted from the given moment.
// Pure and deterministic: same zips and start date, same answer.
func EstimatedDeliveryFrom(now time.Time, originZip, destinationZip string, isExpress bool) time.Time {
	distance, _ := Distance(originZip, destinationZip)

	days := 3
	if distance > 500 {
		days += 2
	}
	if distance > 1000 {
		days += 2
	}
	if distance > 2000 {
		days += 3
	}

	// Express halves the estimate, floored, never under one day
	if isExpress {
		days = days / 2
		if days < 1 {
			days = 1
		}
	}

	return now.AddDate(0, 0, days)
}

// EstimatedDelivery is EstimatedDeliveryFrom counted from today.
func EstimatedDelivery(originZip, destinationZip string, isExpress bool) time.Time {
	return EstimatedDeliveryFrom(time.Now(), originZip, destinationZip, isExpress)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
