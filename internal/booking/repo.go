package booking

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) ListByDate(ctx context.Context, date string) ([]Appointment, error) {
	var appts []Appointment
	err := r.DB.WithContext(ctx).Where("date = ?", date).Order("slot ASC").Find(&appts).Error
	return appts, err
}

func (r *GormRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []Appointment, error) {
	q := r.DB.WithContext(ctx).Model(&Appointment{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var appts []Appointment
	if err := q.Order("date DESC, slot ASC").Offset(offset).Limit(limit).Find(&appts).Error; err != nil {
		return 0, nil, err
	}
	return total, appts, nil
}

func (r *GormRepo) Create(ctx context.Context, a *Appointment) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	var appt Appointment
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *GormRepo) Save(ctx context.Context, a *Appointment) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *GormRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&Appointment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
