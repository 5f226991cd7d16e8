package orders

import "github.com/google/uuid"

type CreateOrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type CreateOrderRequest struct {
	// FromCart builds the order from the caller's current cart lines and
	// clears the cart on success; Items is ignored when set.
	FromCart bool              `json:"from_cart"`
	Items    []CreateOrderItem `json:"items"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreatePaymentRequest struct {
	OrderID       uuid.UUID `json:"order_id"`
	Amount        float64   `json:"amount"`
	TransactionID string    `json:"transaction_id"`
}

type UpdatePaymentRequest struct {
	Status string `json:"status"`
}
