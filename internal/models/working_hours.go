package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkingHours is one weekday's schedule for a provider. Clock times are
// "HH:mm" strings; break fields are either both set or both empty. At most
// one row exists per (provider, day-of-week).
type WorkingHours struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID string `gorm:"type:uuid;not null;uniqueIndex:idx_provider_day" json:"provider_id"`

	DayOfWeek int `gorm:"not null;uniqueIndex:idx_provider_day" json:"day_of_week"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	BreakStartTime string `gorm:"size:5" json:"break_start_time,omitempty"`
	BreakEndTime   string `gorm:"size:5" json:"break_end_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *WorkingHours) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
