package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment holds a half-open [StartTime, EndTime) reservation of one
// provider for one client. EndTime is always StartTime plus the service
// duration. No two non-CANCELLED appointments of the same provider may
// overlap; the booking transaction enforces this.
type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID string `gorm:"type:uuid;index;not null" json:"client_id"`
	Client   *User  `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	ProviderID string           `gorm:"type:uuid;index;not null" json:"provider_id"`
	Provider   *ProviderProfile `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`

	ServiceID string   `gorm:"type:uuid;not null" json:"service_id"`
	Service   *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	PetID *string `gorm:"type:uuid" json:"pet_id,omitempty"`
	Pet   *Pet    `gorm:"foreignKey:PetID" json:"pet,omitempty"`

	StartTime time.Time `gorm:"index;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`
	Notes  string `gorm:"size:500" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
