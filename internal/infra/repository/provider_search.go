package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Nevenjbx/kompagni-api/internal/models"
)

// ProviderFilter is a structured search predicate: each non-zero field adds
// one clause, and all clauses are ANDed.
type ProviderFilter struct {
	Query      string
	AnimalType models.AnimalType
	City       string
}

func (f ProviderFilter) IsZero() bool {
	return f.Query == "" && f.AnimalType == "" && f.City == ""
}

// Apply builds the WHERE conjunction onto db.
func (f ProviderFilter) Apply(db *gorm.DB) *gorm.DB {
	if f.Query != "" {
		like := "%" + f.Query + "%"
		db = db.Where(
			`(business_name ILIKE ? OR description ILIKE ? OR city ILIKE ? OR postal_code LIKE ?
			 OR EXISTS (SELECT 1 FROM services s WHERE s.provider_id = provider_profiles.id AND s.name ILIKE ?))`,
			like, like, like, f.Query+"%", like,
		)
	}

	if f.AnimalType != "" {
		db = db.Where(
			"EXISTS (SELECT 1 FROM services s WHERE s.provider_id = provider_profiles.id AND s.animal_type = ?)",
			f.AnimalType,
		)
	}

	if f.City != "" {
		db = db.Where("city ILIKE ?", f.City)
	}

	return db
}

// SearchProviders runs the filter over provider profiles with their
// services preloaded.
func SearchProviders(
	ctx context.Context,
	db *gorm.DB,
	f ProviderFilter,
) ([]models.ProviderProfile, error) {

	var providers []models.ProviderProfile
	if err := f.Apply(db.WithContext(ctx).Model(&models.ProviderProfile{})).
		Preload("Services").
		Order("business_name ASC").
		Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}
