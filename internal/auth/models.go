package auth

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"       json:"id"`
	Name         string    `gorm:"not null"         json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"         json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    int64     `gorm:"autoCreateTime"   json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
