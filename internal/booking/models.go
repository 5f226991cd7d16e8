package booking

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment rows keep their (date, slot) claim for their whole life,
// including after cancellation; freeing a slot is an explicit delete. The
// composite unique index is what prevents double booking under concurrent
// submissions.
type Appointment struct {
	ID          uuid.UUID `gorm:"primaryKey"                               json:"id"`
	UserID      uuid.UUID `gorm:"index"                                    json:"user_id"`
	ServiceID   uuid.UUID `gorm:"not null"                                 json:"service_id"`
	Date        string    `gorm:"uniqueIndex:idx_appt_date_slot;not null"  json:"date"`
	Slot        string    `gorm:"uniqueIndex:idx_appt_date_slot;not null"  json:"slot"`
	Status      string    `gorm:"not null;default:pending"                 json:"status"`
	CustomerName  string  `gorm:"not null" json:"customer_name"`
	CustomerPhone string  `gorm:"not null" json:"customer_phone"`
	CustomerEmail string  `json:"customer_email"`
	VehicleInfo   string  `json:"vehicle_info"`
	Notes         string  `json:"notes"`
	CreatedAt     int64   `gorm:"autoCreateTime" json:"created_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
