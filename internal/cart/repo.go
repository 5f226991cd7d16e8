package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) ([]CartItem, error) {
	var items []CartItem
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error
	return items, err
}

// AddItem merges into an existing line for the same product instead of
// duplicating it.
func (r *GormRepo) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*CartItem, error) {
	var item CartItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	switch {
	case err == nil:
		item.Quantity += qty
		if err := r.DB.WithContext(ctx).Save(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = CartItem{UserID: userID, ProductID: productID, Quantity: qty}
		if err := r.DB.WithContext(ctx).Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	default:
		return nil, err
	}
}

// SetQuantity updates a line; qty <= 0 removes it. The bool reports whether
// the line still exists.
func (r *GormRepo) SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (bool, *CartItem, error) {
	var item CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return false, nil, err
	}

	if qty <= 0 {
		if err := r.DB.WithContext(ctx).Delete(&item).Error; err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	item.Quantity = qty
	if err := r.DB.WithContext(ctx).Save(&item).Error; err != nil {
		return false, nil, err
	}
	return true, &item, nil
}

func (r *GormRepo) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&CartItem{}).Error
}

// ToggleFavorite flips membership and reports the new state.
func (r *GormRepo) ToggleFavorite(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var fav Favorite
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&fav).Error
	switch {
	case err == nil:
		if err := r.DB.WithContext(ctx).Delete(&fav).Error; err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		fav = Favorite{UserID: userID, ProductID: productID}
		if err := r.DB.WithContext(ctx).Create(&fav).Error; err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

func (r *GormRepo) ListFavorites(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	var favs []Favorite
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&favs).Error
	return favs, err
}
