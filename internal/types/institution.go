package types

import (
	"time"

	"github.com/google/uuid"
)

type Institution struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	City      string    `gorm:"column:city" json:"city"`
	Type      string    `gorm:"column:type" json:"type"`
	Programs  []Program `gorm:"constraint:OnDelete:CASCADE;foreignKey:InstitutionID;references:ID" json:"programs,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Institution) TableName() string { return "institution" }
