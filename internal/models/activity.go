package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StaffActivity is a write-once audit record of a staff-initiated
// mutation. There is no update or delete path for these rows.
type StaffActivity struct {
	gorm.Model
	StaffID     uint              `json:"staffId" gorm:"column:staff_id;not null;index"`
	Staff       User              `json:"-" gorm:"foreignKey:StaffID"`
	Action      string            `json:"action" gorm:"column:action;not null"`
	EntityType  string            `json:"entityType" gorm:"column:entity_type;not null"`
	EntityID    uint              `json:"entityId" gorm:"column:entity_id;not null"`
	Description string            `json:"description" gorm:"column:description"`
	Metadata    datatypes.JSONMap `json:"metadata" gorm:"column:metadata"`
}

// TableName specifies the table name
func (StaffActivity) TableName() string {
	return "staff_activities"
}
