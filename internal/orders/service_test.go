package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/cart"
	"github.com/keymaxprot/backend/internal/catalog"
	"github.com/keymaxprot/backend/internal/httpx"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Product{}, &cart.CartItem{}, &cart.Favorite{},
		&Order{}, &OrderItem{}, &Payment{},
	))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := initTestDB(t)
	return &Service{
		Repo:    &GormRepo{DB: db},
		Catalog: &catalog.GormRepo{DB: db},
		Cart:    &cart.GormRepo{DB: db},
	}, db
}

func seedProduct(t *testing.T, db *gorm.DB, sku string, price float64, stock int) *catalog.Product {
	t.Helper()

	p := catalog.Product{Name: "Part " + sku, SKU: sku, Price: price, Stock: stock}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func TestCreateOrderTotalsFromCatalog(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	p1 := seedProduct(t, db, "A-1", 100, 10)
	p2 := seedProduct(t, db, "A-2", 35.5, 10)

	order, err := svc.CreateOrder(ctx, uuid.New(), CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 1},
	}})
	require.NoError(t, err)
	require.Equal(t, OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	require.Equal(t, 235.5, order.TotalPrice)

	var sum float64
	for _, it := range order.Items {
		sum += it.LineTotal
	}
	require.Equal(t, order.TotalPrice, sum)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	svc, db := newTestService(t)

	p := seedProduct(t, db, "A-1", 100, 1)

	_, err := svc.CreateOrder(context.Background(), uuid.New(), CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: p.ID, Quantity: 2},
	}})
	require.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestCreateOrderFromCartClearsCart(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	p := seedProduct(t, db, "A-1", 50, 10)
	_, err := svc.Cart.AddItem(ctx, userID, p.ID, 3)
	require.NoError(t, err)

	order, err := svc.CreateOrder(ctx, userID, CreateOrderRequest{FromCart: true})
	require.NoError(t, err)
	require.Equal(t, 150.0, order.TotalPrice)

	left, err := svc.Cart.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, left)
}

func TestGetOrderOwnership(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	p := seedProduct(t, db, "A-1", 10, 5)
	order, err := svc.CreateOrder(ctx, owner, CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: p.ID, Quantity: 1},
	}})
	require.NoError(t, err)

	_, err = svc.GetOrder(ctx, order.ID, uuid.New(), false)
	require.True(t, errors.Is(err, httpx.ErrForbidden))

	got, err := svc.GetOrder(ctx, order.ID, uuid.New(), true)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)
}

func TestCompleteOrderDecrementsStock(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	p := seedProduct(t, db, "A-1", 10, 5)
	order, err := svc.CreateOrder(ctx, uuid.New(), CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: p.ID, Quantity: 3},
	}})
	require.NoError(t, err)

	completed, err := svc.UpdateStatus(ctx, order.ID, OrderStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, OrderStatusCompleted, completed.Status)

	fresh, err := svc.Catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 2, fresh.Stock)

	// Status changes only apply to pending orders.
	_, err = svc.UpdateStatus(ctx, order.ID, OrderStatusCancelled)
	require.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestCreatePaymentAmountMustMatch(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	p := seedProduct(t, db, "A-1", 100, 5)
	order, err := svc.CreateOrder(ctx, owner, CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: p.ID, Quantity: 2},
	}})
	require.NoError(t, err)

	_, err = svc.CreatePayment(ctx, owner, false, CreatePaymentRequest{
		OrderID:       order.ID,
		Amount:        150,
		TransactionID: "tx-1",
	})
	require.True(t, errors.Is(err, httpx.ErrValidation))

	payment, err := svc.CreatePayment(ctx, owner, false, CreatePaymentRequest{
		OrderID:       order.ID,
		Amount:        200,
		TransactionID: "tx-1",
	})
	require.NoError(t, err)
	require.Equal(t, PaymentStatusPending, payment.Status)
}

func TestPaymentsScopedToOrderOwner(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	p := seedProduct(t, db, "A-1", 100, 5)
	order, err := svc.CreateOrder(ctx, owner, CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: p.ID, Quantity: 1},
	}})
	require.NoError(t, err)

	// A stranger can neither attach a payment to the order nor read its
	// payment history.
	_, err = svc.CreatePayment(ctx, uuid.New(), false, CreatePaymentRequest{
		OrderID:       order.ID,
		Amount:        100,
		TransactionID: "tx-1",
	})
	require.True(t, errors.Is(err, httpx.ErrForbidden))

	_, err = svc.CreatePayment(ctx, owner, false, CreatePaymentRequest{
		OrderID:       order.ID,
		Amount:        100,
		TransactionID: "tx-1",
	})
	require.NoError(t, err)

	_, err = svc.ListPayments(ctx, order.ID, uuid.New(), false)
	require.True(t, errors.Is(err, httpx.ErrForbidden))

	mine, err := svc.ListPayments(ctx, order.ID, owner, false)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, err := svc.ListPayments(ctx, order.ID, uuid.New(), true)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestCompletedPaymentCompletesOrder(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	p := seedProduct(t, db, "A-1", 100, 5)
	order, err := svc.CreateOrder(ctx, owner, CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: p.ID, Quantity: 1},
	}})
	require.NoError(t, err)

	payment, err := svc.CreatePayment(ctx, owner, false, CreatePaymentRequest{
		OrderID:       order.ID,
		Amount:        100,
		TransactionID: "tx-1",
	})
	require.NoError(t, err)

	payment, err = svc.UpdatePaymentStatus(ctx, payment.ID, PaymentStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, PaymentStatusCompleted, payment.Status)

	fresh, err := svc.Repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, OrderStatusCompleted, fresh.Status)

	// Transaction ids are unique across payments.
	other := uuid.New()
	otherOrder, err := svc.CreateOrder(ctx, other, CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: p.ID, Quantity: 1},
	}})
	require.NoError(t, err)
	_, err = svc.CreatePayment(ctx, other, false, CreatePaymentRequest{
		OrderID:       otherOrder.ID,
		Amount:        100,
		TransactionID: "tx-1",
	})
	require.Error(t, err)
}

func TestFailedPaymentCompletionRollsBack(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	p1 := seedProduct(t, db, "A-1", 50, 5)
	p2 := seedProduct(t, db, "A-2", 25, 1)
	order, err := svc.CreateOrder(ctx, owner, CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 1},
	}})
	require.NoError(t, err)

	payment, err := svc.CreatePayment(ctx, owner, false, CreatePaymentRequest{
		OrderID:       order.ID,
		Amount:        125,
		TransactionID: "tx-1",
	})
	require.NoError(t, err)

	// Stock for one line is gone by the time the payment completes.
	require.NoError(t, db.Model(&catalog.Product{}).Where("id = ?", p2.ID).Update("stock", 0).Error)

	_, err = svc.UpdatePaymentStatus(ctx, payment.ID, PaymentStatusCompleted)
	require.True(t, errors.Is(err, httpx.ErrConflict))

	// Nothing moved: the payment is retryable, the order is still pending and
	// no stock was taken for the line that could have been decremented.
	freshPayment, err := svc.Repo.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	require.Equal(t, PaymentStatusPending, freshPayment.Status)

	freshOrder, err := svc.Repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, OrderStatusPending, freshOrder.Status)

	freshP1, err := svc.Catalog.GetProduct(ctx, p1.ID)
	require.NoError(t, err)
	require.Equal(t, 5, freshP1.Stock)
}
