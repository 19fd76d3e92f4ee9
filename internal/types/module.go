package types

import (
	"time"

	"github.com/google/uuid"
)

// Module is one accreditation framework (a council standard family). Its
// templates, sections and items hang off it and are removed with it.
type Module struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string             `gorm:"column:code;not null;uniqueIndex" json:"code"`
	DisplayName string             `gorm:"column:display_name;not null" json:"display_name"`
	Description string             `gorm:"column:description" json:"description"`
	Templates   []ProformaTemplate `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"templates,omitempty"`
	CreatedAt   time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"not null" json:"updated_at"`
}

func (Module) TableName() string { return "module" }
