package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProviderAbsence blocks every slot and booking overlapping
// [StartDate, EndDate). It may cover part of a day or span several.
type ProviderAbsence struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID string `gorm:"type:uuid;index;not null" json:"provider_id"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	Reason string `gorm:"size:255" json:"reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *ProviderAbsence) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
