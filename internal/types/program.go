package types

import (
	"time"

	"github.com/google/uuid"
)

type Program struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	InstitutionID uuid.UUID    `gorm:"type:uuid;not null;index" json:"institution_id"`
	Institution   *Institution `gorm:"constraint:OnDelete:CASCADE;foreignKey:InstitutionID;references:ID" json:"institution,omitempty"`
	Name          string       `gorm:"column:name;not null" json:"name"`
	Level         string       `gorm:"column:level;not null" json:"level"`
	Discipline    string       `gorm:"column:discipline;not null" json:"discipline"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}

func (Program) TableName() string { return "program" }
