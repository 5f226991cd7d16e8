package forum

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Thread struct {
	ID        uuid.UUID `gorm:"primaryKey"        json:"id"`
	Title     string    `gorm:"not null"          json:"title"`
	Body      string    `json:"body"`
	AuthorID  uuid.UUID `gorm:"index;not null"    json:"author_id"`
	PostCount int64     `gorm:"not null;default:0" json:"post_count"`
	CreatedAt int64     `gorm:"autoCreateTime"    json:"created_at"`
}

func (t *Thread) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Post struct {
	ID        uuid.UUID `gorm:"primaryKey"     json:"id"`
	ThreadID  uuid.UUID `gorm:"index;not null" json:"thread_id"`
	AuthorID  uuid.UUID `gorm:"index;not null" json:"author_id"`
	Body      string    `gorm:"not null"       json:"body"`
	CreatedAt int64     `gorm:"autoCreateTime" json:"created_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AfterCreate keeps the thread's denormalized post_count in step. The
// update is a single atomic expression; lost updates under a concurrent
// delete of the same post are a known accepted gap.
func (p *Post) AfterCreate(tx *gorm.DB) error {
	return tx.Model(&Thread{}).
		Where("id = ?", p.ThreadID).
		UpdateColumn("post_count", gorm.Expr("post_count + 1")).Error
}

func (p *Post) AfterDelete(tx *gorm.DB) error {
	return tx.Model(&Thread{}).
		Where("id = ? AND post_count > 0", p.ThreadID).
		UpdateColumn("post_count", gorm.Expr("post_count - 1")).Error
}

type Comment struct {
	ID        uuid.UUID `gorm:"primaryKey"     json:"id"`
	PostID    uuid.UUID `gorm:"index;not null" json:"post_id"`
	AuthorID  uuid.UUID `gorm:"index;not null" json:"author_id"`
	Body      string    `gorm:"not null"       json:"body"`
	CreatedAt int64     `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
