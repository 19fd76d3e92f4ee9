package types

import (
	"time"

	"github.com/google/uuid"
)

// ProformaSection groups items inside a template. Order is advisory display
// sequence: not unique, ties fall back to creation order.
type ProformaSection struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	TemplateID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"template_id"`
	Template    *ProformaTemplate `gorm:"constraint:OnDelete:CASCADE;foreignKey:TemplateID;references:ID" json:"template,omitempty"`
	Code        string            `gorm:"column:code" json:"code"`
	Title       string            `gorm:"column:title;not null" json:"title"`
	Description string            `gorm:"column:description" json:"description"`
	Order       int               `gorm:"column:sort_order;not null;default:1" json:"order"`
	Weight      int               `gorm:"column:weight;not null;default:1" json:"weight"`
	Items       []ProformaItem    `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"items,omitempty"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}

func (ProformaSection) TableName() string { return "proforma_section" }
