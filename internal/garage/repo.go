package garage

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) CreateVehicle(ctx context.Context, v *Vehicle) error {
	return r.DB.WithContext(ctx).Create(v).Error
}

func (r *GormRepo) GetVehicle(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	var v Vehicle
	if err := r.DB.WithContext(ctx).Preload("Ownerships").Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVehicles scopes to vehicles the user appears on unless userID is
// uuid.Nil.
func (r *GormRepo) ListVehicles(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []Vehicle, error) {
	q := r.DB.WithContext(ctx).Model(&Vehicle{})
	if userID != uuid.Nil {
		q = q.Where("id IN (?)",
			r.DB.Model(&VehicleOwnership{}).Select("vehicle_id").Where("user_id = ?", userID))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var vehicles []Vehicle
	if err := q.Preload("Ownerships").Order("created_at DESC").Offset(offset).Limit(limit).Find(&vehicles).Error; err != nil {
		return 0, nil, err
	}
	return total, vehicles, nil
}

func (r *GormRepo) SaveVehicle(ctx context.Context, v *Vehicle) error {
	return r.DB.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(v).Error
}

func (r *GormRepo) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&Vehicle{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CreateRecord(ctx context.Context, rec *ServiceRecord) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

func (r *GormRepo) ListRecords(ctx context.Context, vehicleID uuid.UUID, offset, limit int) (int64, []ServiceRecord, error) {
	q := r.DB.WithContext(ctx).Model(&ServiceRecord{}).Where("vehicle_id = ?", vehicleID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var records []ServiceRecord
	if err := q.Preload("ProductsUsed").Order("performed_at DESC").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return 0, nil, err
	}
	return total, records, nil
}
