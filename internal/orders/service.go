package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/cart"
	"github.com/keymaxprot/backend/internal/catalog"
	"github.com/keymaxprot/backend/internal/events"
	"github.com/keymaxprot/backend/internal/httpx"
	"github.com/keymaxprot/backend/internal/logging"
)

type Service struct {
	Repo    *GormRepo
	Catalog *catalog.GormRepo
	Cart    *cart.GormRepo
	Events  *events.Producer
}

// CreateOrder prices every line from the catalog; client-supplied totals are
// never trusted. Total is the sum of line totals by construction.
func (s *Service) CreateOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*Order, error) {
	l := logging.FromContext(ctx).With("svc", "orders.create")

	lines := req.Items
	if req.FromCart {
		cartItems, err := s.Cart.GetCart(ctx, userID)
		if err != nil {
			return nil, err
		}
		lines = make([]CreateOrderItem, 0, len(cartItems))
		for _, it := range cartItems {
			lines = append(lines, CreateOrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: items required", httpx.ErrValidation)
	}

	var total float64
	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, fmt.Errorf("%w: product_id required", httpx.ErrValidation)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", httpx.ErrValidation)
		}

		prod, err := s.Catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product %s", httpx.ErrNotFound, line.ProductID)
			}
			return nil, err
		}
		if prod.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for %s", httpx.ErrConflict, prod.Name)
		}

		lineTotal := prod.Price * float64(line.Quantity)
		items = append(items, OrderItem{
			ProductID: prod.ID,
			Quantity:  line.Quantity,
			UnitPrice: prod.Price,
			LineTotal: lineTotal,
		})
		total += lineTotal
	}

	order := &Order{
		UserID:     userID,
		Status:     OrderStatusPending,
		TotalPrice: total,
		Items:      items,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if req.FromCart {
		if err := s.Cart.Clear(ctx, userID); err != nil {
			l.Error("cart clear after order failed", "order_id", order.ID, "error", err)
		}
	}

	if err := s.Events.Publish(ctx, events.TopicOrders, order.ID.String(), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"userID":  userID,
		"total":   order.TotalPrice,
	}); err != nil {
		l.Error("event publish failed", "error", err)
	}

	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) (*Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", httpx.ErrNotFound)
		}
		return nil, err
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, fmt.Errorf("%w: not your order", httpx.ErrForbidden)
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, requesterID uuid.UUID, isAdmin bool, offset, limit int) (int64, []Order, error) {
	scope := requesterID
	if isAdmin {
		scope = uuid.Nil
	}
	return s.Repo.ListOrders(ctx, scope, offset, limit)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	if status != OrderStatusCompleted && status != OrderStatusCancelled {
		return nil, fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, status)
	}

	var order *Order
	err := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.transitionOrder(ctx, tx, id, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// transitionOrder moves a pending order to its terminal status inside the
// caller's transaction; completing takes the stock, and any decrement failure
// rolls back the whole transition.
func (s *Service) transitionOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) (*Order, error) {
	repo := &GormRepo{DB: tx}

	order, err := repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", httpx.ErrNotFound)
		}
		return nil, err
	}
	if order.Status != OrderStatusPending {
		return nil, fmt.Errorf("%w: order is already %s", httpx.ErrConflict, order.Status)
	}

	if status == OrderStatusCompleted {
		cat := &catalog.GormRepo{DB: tx}
		for _, it := range order.Items {
			if err := cat.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
				return nil, fmt.Errorf("%w: %v", httpx.ErrConflict, err)
			}
		}
	}

	order.Status = status
	if err := repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CreatePayment rejects amounts that disagree with the order total, keeping
// Payment.Amount and Order.TotalPrice reconciled. Only the order's owner or
// an admin may attach a payment.
func (s *Service) CreatePayment(ctx context.Context, requesterID uuid.UUID, isAdmin bool, req CreatePaymentRequest) (*Payment, error) {
	if req.TransactionID == "" {
		return nil, fmt.Errorf("%w: transaction_id required", httpx.ErrValidation)
	}

	order, err := s.GetOrder(ctx, req.OrderID, requesterID, isAdmin)
	if err != nil {
		return nil, err
	}
	if req.Amount != order.TotalPrice {
		return nil, fmt.Errorf("%w: amount %.2f does not match order total %.2f",
			httpx.ErrValidation, req.Amount, order.TotalPrice)
	}

	payment := &Payment{
		OrderID:       order.ID,
		Amount:        req.Amount,
		Status:        PaymentStatusPending,
		TransactionID: req.TransactionID,
	}
	if err := s.Repo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// UpdatePaymentStatus moves a pending payment to completed/failed; completing
// the payment completes the order and takes the stock.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (*Payment, error) {
	if status != PaymentStatusCompleted && status != PaymentStatusFailed {
		return nil, fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, status)
	}

	payment, err := s.Repo.GetPayment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment", httpx.ErrNotFound)
		}
		return nil, err
	}
	if payment.Status != PaymentStatusPending {
		return nil, fmt.Errorf("%w: payment is already %s", httpx.ErrConflict, payment.Status)
	}

	payment.Status = status

	// Completing is all-or-nothing: the order transition, the stock take and
	// the payment save commit together or not at all.
	if status == PaymentStatusCompleted {
		err := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if _, err := s.transitionOrder(ctx, tx, payment.OrderID, OrderStatusCompleted); err != nil {
				return err
			}
			return tx.Save(payment).Error
		})
		if err != nil {
			return nil, err
		}
		return payment, nil
	}

	if err := s.Repo.SavePayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListPayments is scoped the same way GetOrder is: the order's owner or an
// admin, nobody else.
func (s *Service) ListPayments(ctx context.Context, orderID, requesterID uuid.UUID, isAdmin bool) ([]Payment, error) {
	if _, err := s.GetOrder(ctx, orderID, requesterID, isAdmin); err != nil {
		return nil, err
	}
	return s.Repo.ListPayments(ctx, orderID)
}
