package types

import (
	"time"

	"github.com/google/uuid"
)

type ProformaTemplate struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"module_id"`
	Module        *Module           `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	Code          string            `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Title         string            `gorm:"column:title;not null" json:"title"`
	AuthorityName string            `gorm:"column:authority_name" json:"authority_name"`
	Version       string            `gorm:"column:version;not null;default:'1.0'" json:"version"`
	Description   string            `gorm:"column:description" json:"description"`
	IsActive      bool              `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Sections      []ProformaSection `gorm:"constraint:OnDelete:CASCADE;foreignKey:TemplateID;references:ID" json:"sections,omitempty"`
	CreatedAt     time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null" json:"updated_at"`
}

func (ProformaTemplate) TableName() string { return "proforma_template" }
