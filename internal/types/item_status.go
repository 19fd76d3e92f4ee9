package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	ItemStatusPending      = "pending"
	ItemStatusCompliant    = "compliant"
	ItemStatusNoncompliant = "noncompliant"
	ItemStatusPartial      = "partial"
)

var itemStatuses = map[string]struct{}{
	ItemStatusPending:      {},
	ItemStatusCompliant:    {},
	ItemStatusNoncompliant: {},
	ItemStatusPartial:      {},
}

func ValidItemStatus(s string) bool {
	_, ok := itemStatuses[s]
	return ok
}

// ItemStatus is the assignment-scoped compliance judgment for one item.
// Score is advisory and not clamped to the item's max_score.
type ItemStatus struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentID uuid.UUID     `gorm:"type:uuid;not null;index" json:"assignment_id"`
	Assignment   *Assignment   `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssignmentID;references:ID" json:"assignment,omitempty"`
	ItemID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"item_id"`
	Item         *ProformaItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:ItemID;references:ID" json:"item,omitempty"`
	Status       string        `gorm:"column:status;not null;default:'pending'" json:"status"`
	Comment      string        `gorm:"column:comment" json:"comment"`
	Score        *int          `gorm:"column:score" json:"score,omitempty"`
	CreatedAt    time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null" json:"updated_at"`
}

func (ItemStatus) TableName() string { return "item_status" }
