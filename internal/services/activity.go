package services

import (
	"github.com/D-Oracle1/Consignment/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LogStaffActivity appends one immutable audit record for a
// staff-initiated mutation. Customer self-service actions are never
// logged here.
func LogStaffActivity(db *gorm.DB, staffID uint, action, entityType string, entityID uint, description string, metadata datatypes.JSONMap) error {
	activity := models.StaffActivity{
		StaffID:     staffID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		Metadata:    metadata,
	}
	return db.Create(&activity).Error
}
