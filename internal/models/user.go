package models

import "time"

type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

// User mirrors an account at the identity provider. The ID is the IdP
// subject and is never generated locally.
type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Email       string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name        string `gorm:"size:100" json:"name"`
	PhoneNumber string `gorm:"size:30" json:"phone_number"`
	Role        Role   `gorm:"size:20;default:'CLIENT'" json:"role"`

	ProviderProfile *ProviderProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"provider_profile,omitempty"`

	FavoriteProviders []ProviderProfile `gorm:"many2many:user_favorite_providers;" json:"favorite_providers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
