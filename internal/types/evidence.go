package types

import (
	"time"

	"github.com/google/uuid"
)

// Evidence is an uploaded artifact attached to an assignment, optionally
// pinned to one item status. Deleting the item status keeps the evidence row
// and nulls the link.
type Evidence struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentID uuid.UUID   `gorm:"type:uuid;not null;index" json:"assignment_id"`
	Assignment   *Assignment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssignmentID;references:ID" json:"assignment,omitempty"`
	ItemStatusID *uuid.UUID  `gorm:"type:uuid;index" json:"item_status_id,omitempty"`
	ItemStatus   *ItemStatus `gorm:"constraint:OnDelete:SET NULL;foreignKey:ItemStatusID;references:ID" json:"item_status,omitempty"`
	FileKey      string      `gorm:"column:file_key;not null" json:"file_key"`
	FileURL      string      `gorm:"column:file_url" json:"file_url"`
	Description  string      `gorm:"column:description" json:"description"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (Evidence) TableName() string { return "evidence" }
