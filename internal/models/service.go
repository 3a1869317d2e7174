package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnimalType string

const (
	AnimalDog     AnimalType = "DOG"
	AnimalCat     AnimalType = "CAT"
	AnimalBird    AnimalType = "BIRD"
	AnimalRodent  AnimalType = "RODENT"
	AnimalReptile AnimalType = "REPTILE"
	AnimalOther   AnimalType = "OTHER"
)

// Service is a bookable offering of one provider. Duration is in minutes
// and drives the end time of every appointment referencing it.
type Service struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID string `gorm:"type:uuid;index;not null" json:"provider_id"`

	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"size:500" json:"description"`
	Duration    int        `gorm:"not null" json:"duration"`
	Price       float64    `gorm:"not null" json:"price"`
	AnimalType  AnimalType `gorm:"size:20" json:"animal_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
