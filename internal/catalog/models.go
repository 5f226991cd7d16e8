package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID `gorm:"primaryKey"           json:"id"`
	Name        string    `gorm:"not null"             json:"name"`
	Description string    `json:"description"`
	SKU         string    `gorm:"uniqueIndex;not null" json:"sku"`
	Category    string    `gorm:"index"                json:"category"`
	Brand       string    `json:"brand"`
	Price       float64   `gorm:"not null"             json:"price"`
	Stock       int       `gorm:"not null;default:0"   json:"stock"`
	ImageURL    string    `json:"image_url"`
	RatingRate  float64   `gorm:"default:0"            json:"rating_rate"`
	RatingCount int       `gorm:"default:0"            json:"rating_count"`
	CreatedAt   int64     `gorm:"autoCreateTime"       json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
