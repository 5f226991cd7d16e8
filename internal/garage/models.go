package garage

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleOwner  = "owner"
	RoleDriver = "driver"
)

var ErrMultipleOwners = errors.New("a vehicle can have at most one owner")

type Vehicle struct {
	ID         uuid.UUID          `gorm:"primaryKey"           json:"id"`
	Make       string             `gorm:"not null"             json:"make"`
	Model      string             `gorm:"not null"             json:"model"`
	Year       int                `json:"year"`
	Color      string             `json:"color"`
	VIN        string             `gorm:"uniqueIndex;not null" json:"vin"`
	Plate      string             `gorm:"uniqueIndex;not null" json:"plate"`
	Ownerships []VehicleOwnership `gorm:"constraint:OnDelete:CASCADE" json:"ownerships"`
	CreatedAt  int64              `gorm:"autoCreateTime"       json:"created_at"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// BeforeSave rejects a second owner no matter which write path produced it.
func (v *Vehicle) BeforeSave(tx *gorm.DB) error {
	return validateOwnerships(v.Ownerships)
}

func validateOwnerships(list []VehicleOwnership) error {
	owners := 0
	for _, o := range list {
		if o.Role == RoleOwner {
			owners++
		}
	}
	if owners > 1 {
		return ErrMultipleOwners
	}
	return nil
}

type VehicleOwnership struct {
	ID        uuid.UUID `gorm:"primaryKey"     json:"id"`
	VehicleID uuid.UUID `gorm:"index;not null" json:"vehicle_id"`
	UserID    uuid.UUID `gorm:"index;not null" json:"user_id"`
	Role      string    `gorm:"not null"       json:"role"`
}

func (o *VehicleOwnership) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type ServiceRecord struct {
	ID           uuid.UUID           `gorm:"primaryKey"     json:"id"`
	VehicleID    uuid.UUID           `gorm:"index;not null" json:"vehicle_id"`
	ServiceID    uuid.UUID           `gorm:"not null"       json:"service_id"`
	Cost         float64             `gorm:"not null"       json:"cost"`
	Technician   string              `json:"technician"`
	Status       string              `gorm:"not null;default:completed" json:"status"`
	PerformedAt  int64               `json:"performed_at"`
	Notes        string              `json:"notes"`
	ProductsUsed []ServiceRecordItem `gorm:"constraint:OnDelete:CASCADE" json:"products_used"`
	CreatedAt    int64               `gorm:"autoCreateTime" json:"created_at"`
}

func (r *ServiceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type ServiceRecordItem struct {
	ID              uuid.UUID `gorm:"primaryKey"     json:"id"`
	ServiceRecordID uuid.UUID `gorm:"index;not null" json:"service_record_id"`
	ProductID       uuid.UUID `gorm:"not null"       json:"product_id"`
	Quantity        int       `gorm:"not null;default:1" json:"quantity"`
}

func (i *ServiceRecordItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
