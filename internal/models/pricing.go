package models

import (
	"gorm.io/gorm"
)

// PricingRule is a priced shipping policy. Several rules may be active
// at once; the selector picks the highest priority applicable one.
type PricingRule struct {
	gorm.Model
	Name             string   `json:"name" gorm:"column:name;not null"`
	Description      string   `json:"description" gorm:"column:description"`
	BaseRate         float64  `json:"baseRate" gorm:"column:base_rate;not null"`
	WeightMultiplier float64  `json:"weightMultiplier" gorm:"column:weight_multiplier;not null"`
	VolumeMultiplier float64  `json:"volumeMultiplier" gorm:"column:volume_multiplier;not null"`
	ZoneMultiplier   float64  `json:"zoneMultiplier" gorm:"column:zone_multiplier;not null;default:1"`
	IsExpress        bool     `json:"isExpress" gorm:"column:is_express;not null;default:false"`
	ExpressRate      *float64 `json:"expressRate,omitempty" gorm:"column:express_rate"`
	Category         *string  `json:"category,omitempty" gorm:"column:category"`
	CategoryRate     *float64 `json:"categoryRate,omitempty" gorm:"column:category_rate"`
	IsActive         bool     `json:"isActive" gorm:"column:is_active;not null;default:true"`
	Priority         int      `json:"priority" gorm:"column:priority;not null;default:0"`
}

// TableName specifies the table name
func (PricingRule) TableName() string {
	return "pricing_rules"
}
