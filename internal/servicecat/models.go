package servicecat

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceOffering is a bookable/billable entry in the service catalog
// (tinting, wraps, audio installs and so on).
type ServiceOffering struct {
	ID              uuid.UUID `gorm:"primaryKey"     json:"id"`
	Name            string    `gorm:"not null"       json:"name"`
	Description     string    `json:"description"`
	Category        string    `gorm:"index"          json:"category"`
	Price           float64   `gorm:"not null"       json:"price"`
	DurationMinutes int       `gorm:"not null;default:60" json:"duration_minutes"`
	ImageURL        string    `json:"image_url"`
	CreatedAt       int64     `gorm:"autoCreateTime" json:"created_at"`
}

func (s *ServiceOffering) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
