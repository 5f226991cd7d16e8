package tutorials

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tutorial struct {
	ID          uuid.UUID `gorm:"primaryKey"        json:"id"`
	Title       string    `gorm:"not null"          json:"title"`
	Body        string    `json:"body"`
	VideoURL    string    `json:"video_url"`
	AuthorID    uuid.UUID `gorm:"index;not null"    json:"author_id"`
	Category    string    `gorm:"index"             json:"category"`
	RatingRate  float64   `gorm:"default:0"         json:"rating_rate"`
	RatingCount int64     `gorm:"default:0"         json:"rating_count"`
	CreatedAt   int64     `gorm:"autoCreateTime"    json:"created_at"`
}

func (t *Tutorial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Review struct {
	ID         uuid.UUID `gorm:"primaryKey"     json:"id"`
	TutorialID uuid.UUID `gorm:"index;not null" json:"tutorial_id"`
	AuthorID   uuid.UUID `gorm:"index;not null" json:"author_id"`
	Rating     int       `gorm:"not null"       json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  int64     `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
