package models

import (
	"gorm.io/gorm"
)

// Setting is a key/value configuration entry editable by admins.
type Setting struct {
	gorm.Model
	Key         string `json:"key" gorm:"column:key;uniqueIndex;not null"`
	Value       string `json:"value" gorm:"column:value;not null"`
	Category    string `json:"category" gorm:"column:category"`
	Description string `json:"description" gorm:"column:description"`
}

// TableName specifies the table name
func (Setting) TableName() string {
	return "settings"
}
