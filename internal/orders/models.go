package orders

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

type Order struct {
	ID         uuid.UUID   `gorm:"primaryKey"             json:"id"`
	UserID     uuid.UUID   `gorm:"index;not null"         json:"user_id"`
	Status     string      `gorm:"not null;default:pending" json:"status"`
	TotalPrice float64     `gorm:"not null"               json:"total_price"`
	Items      []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  int64       `gorm:"autoCreateTime"         json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"primaryKey"     json:"id"`
	OrderID   uuid.UUID `gorm:"index;not null" json:"order_id"`
	ProductID uuid.UUID `gorm:"not null"       json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity>0" json:"quantity"`
	UnitPrice float64   `gorm:"not null"       json:"unit_price"`
	LineTotal float64   `gorm:"not null"       json:"line_total"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Payment struct {
	ID            uuid.UUID `gorm:"primaryKey"             json:"id"`
	OrderID       uuid.UUID `gorm:"index;not null"         json:"order_id"`
	Amount        float64   `gorm:"not null"               json:"amount"`
	Status        string    `gorm:"not null;default:pending" json:"status"`
	TransactionID string    `gorm:"uniqueIndex;not null"   json:"transaction_id"`
	CreatedAt     int64     `gorm:"autoCreateTime"         json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
