package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	PGComplianceYes     = "YES"
	PGComplianceNo      = "NO"
	PGCompliancePartial = "PARTIAL"
	PGComplianceNA      = "NA"
)

var pgComplianceStatuses = map[string]struct{}{
	PGComplianceYes:     {},
	PGComplianceNo:      {},
	PGCompliancePartial: {},
	PGComplianceNA:      {},
}

func ValidPGComplianceStatus(s string) bool {
	_, ok := pgComplianceStatuses[s]
	return ok
}

// PGItemCompliance is the institution-scoped compliance judgment for one
// item, independent of any assignment. At most one record may exist per
// (institution, item) pair. UpdatedBy is stamped server-side from the
// authenticated caller and survives user deletion as null.
type PGItemCompliance struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	InstitutionID *uuid.UUID    `gorm:"type:uuid;index:idx_institution_item,unique" json:"institution_id,omitempty"`
	Institution   *Institution  `gorm:"constraint:OnDelete:CASCADE;foreignKey:InstitutionID;references:ID" json:"institution,omitempty"`
	ItemID        uuid.UUID     `gorm:"type:uuid;not null;index:idx_institution_item,unique" json:"item_id"`
	Item          *ProformaItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:ItemID;references:ID" json:"item,omitempty"`
	Status        string        `gorm:"column:status;not null;default:'NO'" json:"status"`
	Comment       string        `gorm:"column:comment" json:"comment"`
	EvidenceURL   string        `gorm:"column:evidence_url" json:"evidence_url"`
	UpdatedByID   *uuid.UUID    `gorm:"type:uuid" json:"updated_by,omitempty"`
	UpdatedBy     *User         `gorm:"constraint:OnDelete:SET NULL;foreignKey:UpdatedByID;references:ID" json:"-"`
	CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}

func (PGItemCompliance) TableName() string { return "pg_item_compliance" }
