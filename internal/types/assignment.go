package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	AssignmentStatusDraft      = "draft"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusSubmitted  = "submitted"
	AssignmentStatusReviewed   = "reviewed"
)

var assignmentStatuses = map[string]struct{}{
	AssignmentStatusDraft:      {},
	AssignmentStatusInProgress: {},
	AssignmentStatusSubmitted:  {},
	AssignmentStatusReviewed:   {},
}

// ValidAssignmentStatus reports whether s is in the assignment vocabulary.
// Transitions between states are intentionally unguarded.
func ValidAssignmentStatus(s string) bool {
	_, ok := assignmentStatuses[s]
	return ok
}

// Assignment is one evaluation of a Program against a ProformaTemplate. Item
// statuses are created lazily, one per template item; there is no constraint
// making them unique per (assignment, item).
type Assignment struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	TemplateID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"template_id"`
	Template     *ProformaTemplate `gorm:"constraint:OnDelete:CASCADE;foreignKey:TemplateID;references:ID" json:"template,omitempty"`
	ProgramID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"program_id"`
	Program      *Program          `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProgramID;references:ID" json:"program,omitempty"`
	Title        string            `gorm:"column:title;not null" json:"title"`
	Status       string            `gorm:"column:status;not null;default:'draft'" json:"status"`
	ItemStatuses []ItemStatus      `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssignmentID;references:ID" json:"item_statuses,omitempty"`
	CreatedAt    time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updated_at"`
}

func (Assignment) TableName() string { return "assignment" }
