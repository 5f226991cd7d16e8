package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserAlreadyExists = errors.New("user already exists")

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) CreateUser(ctx context.Context, u *User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserAlreadyExists
	}
	return nil
}

func (r *GormRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) ListUsers(ctx context.Context, offset, limit int) (int64, []User, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&User{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var users []User
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return 0, nil, err
	}
	return total, users, nil
}

func (r *GormRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*User, error) {
	var user User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	user.Role = role
	if err := r.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
