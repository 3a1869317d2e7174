package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PetSize string

const (
	PetSmall  PetSize = "SMALL"
	PetMedium PetSize = "MEDIUM"
	PetLarge  PetSize = "LARGE"
)

type PetCharacter string

const (
	PetCalm       PetCharacter = "CALM"
	PetShy        PetCharacter = "SHY"
	PetEnergetic  PetCharacter = "ENERGETIC"
	PetAggressive PetCharacter = "AGGRESSIVE"
)

type Pet struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID string `gorm:"type:uuid;index;not null" json:"owner_id"`

	Name      string       `gorm:"size:100;not null" json:"name"`
	Type      AnimalType   `gorm:"size:20;not null" json:"type"`
	Breed     string       `gorm:"size:100" json:"breed"`
	Size      PetSize      `gorm:"size:20" json:"size"`
	Character PetCharacter `gorm:"size:20" json:"character"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Pet) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProviderPetNote is a private note a provider keeps about a pet, one per
// (pet, provider) pair.
type ProviderPetNote struct {
	PetID      string `gorm:"type:uuid;primaryKey" json:"pet_id"`
	ProviderID string `gorm:"type:uuid;primaryKey" json:"provider_id"`

	Note string `gorm:"size:2000" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
