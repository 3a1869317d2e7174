package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProviderProfile struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	BusinessName string `gorm:"size:100;not null" json:"business_name"`
	Description  string `gorm:"size:500" json:"description"`
	Address      string `gorm:"size:255;not null" json:"address"`
	City         string `gorm:"size:100;not null" json:"city"`
	PostalCode   string `gorm:"size:20;not null" json:"postal_code"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Tags []string `gorm:"serializer:json" json:"tags,omitempty"`

	Services     []Service        `gorm:"foreignKey:ProviderID" json:"services,omitempty"`
	WorkingHours []WorkingHours   `gorm:"foreignKey:ProviderID" json:"working_hours,omitempty"`
	Absences     []ProviderAbsence `gorm:"foreignKey:ProviderID" json:"absences,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *ProviderProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
