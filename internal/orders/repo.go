package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	if err := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders scopes to one user unless userID is uuid.Nil (admin listing).
func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []Order, error) {
	q := r.DB.WithContext(ctx).Model(&Order{})
	if userID != uuid.Nil {
		q = q.Where("user_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []Order
	if err := q.Preload("Items").Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) SaveOrder(ctx context.Context, order *Order) error {
	return r.DB.WithContext(ctx).Save(order).Error
}

func (r *GormRepo) CreatePayment(ctx context.Context, p *Payment) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	var payment Payment
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormRepo) SavePayment(ctx context.Context, p *Payment) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) ListPayments(ctx context.Context, orderID uuid.UUID) ([]Payment, error) {
	var payments []Payment
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC").Find(&payments).Error
	return payments, err
}
