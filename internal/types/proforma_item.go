package types

import (
	"time"

	"github.com/google/uuid"
)

// ProformaItem is the leaf compliance unit. Reseeding a template deletes and
// recreates every item under it, so nothing may assume item IDs are stable
// across imports.
type ProformaItem struct {
	ID                     uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID              uuid.UUID        `gorm:"type:uuid;not null;index" json:"section_id"`
	Section                *ProformaSection `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"section,omitempty"`
	Code                   string           `gorm:"column:code" json:"code"`
	RequirementText        string           `gorm:"column:requirement_text;not null" json:"requirement_text"`
	RequiredEvidenceType   string           `gorm:"column:required_evidence_type" json:"required_evidence_type"`
	ImportanceLevel        *int             `gorm:"column:importance_level" json:"importance_level,omitempty"`
	ImplementationCriteria string           `gorm:"column:implementation_criteria" json:"implementation_criteria"`
	Order                  int              `gorm:"column:sort_order;not null;default:1" json:"order"`
	Weight                 int              `gorm:"column:weight;not null;default:1" json:"weight"`
	MaxScore               int              `gorm:"column:max_score;not null;default:10" json:"max_score"`
	WeightagePercent       int              `gorm:"column:weightage_percent;not null;default:100" json:"weightage_percent"`
	IsLicensingCritical    bool             `gorm:"column:is_licensing_critical;not null;default:false" json:"is_licensing_critical"`
	CreatedAt              time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time        `gorm:"not null" json:"updated_at"`
}

func (ProformaItem) TableName() string { return "proforma_item" }
