package stats

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/auth"
	"github.com/keymaxprot/backend/internal/catalog"
	"github.com/keymaxprot/backend/internal/orders"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&auth.User{}, &catalog.Product{}, &orders.Order{}, &orders.OrderItem{}))
	return &Service{DB: db}
}

func seedOrder(t *testing.T, db *gorm.DB, status string, total float64, when time.Time) {
	t.Helper()

	o := orders.Order{UserID: uuid.New(), Status: status, TotalPrice: total}
	require.NoError(t, db.Create(&o).Error)
	require.NoError(t, db.Model(&orders.Order{}).Where("id = ?", o.ID).
		Update("created_at", when.Unix()).Error)
}

func TestSalesOverTimeBucketsByMonth(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	jan := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC)

	seedOrder(t, svc.DB, orders.OrderStatusCompleted, 100, jan)
	seedOrder(t, svc.DB, orders.OrderStatusCompleted, 50, jan)
	seedOrder(t, svc.DB, orders.OrderStatusCompleted, 75, feb)
	// Pending and cancelled orders never count as sales.
	seedOrder(t, svc.DB, orders.OrderStatusPending, 999, jan)
	seedOrder(t, svc.DB, orders.OrderStatusCancelled, 999, feb)

	buckets, err := svc.SalesOverTime(ctx)
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	require.Equal(t, "2026-01", buckets[0].ID)
	require.EqualValues(t, 2, buckets[0].Count)
	require.Equal(t, 150.0, buckets[0].TotalSales)

	require.Equal(t, "2026-02", buckets[1].ID)
	require.EqualValues(t, 1, buckets[1].Count)
	require.Equal(t, 75.0, buckets[1].TotalSales)
}

func TestCategoryDistribution(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i, cat := range []string{"lighting", "lighting", "exhaust"} {
		p := catalog.Product{Name: "P", SKU: uuid.NewString()[:8], Category: cat, Price: 1, Stock: i}
		require.NoError(t, svc.DB.Create(&p).Error)
	}

	buckets, err := svc.CategoryDistribution(ctx)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	require.Equal(t, "exhaust", buckets[0].ID)
	require.EqualValues(t, 1, buckets[0].Count)
	require.Equal(t, "lighting", buckets[1].ID)
	require.EqualValues(t, 2, buckets[1].Count)
}

func TestUserRoleCounts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, role := range []string{auth.RoleUser, auth.RoleUser, auth.RoleAdmin} {
		u := auth.User{Name: "U", Email: uuid.NewString() + "@example.com", PasswordHash: "x", Role: role}
		require.NoError(t, svc.DB.Create(&u).Error)
	}

	buckets, err := svc.UserRoleCounts(ctx)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	require.Equal(t, auth.RoleAdmin, buckets[0].ID)
	require.EqualValues(t, 1, buckets[0].Count)
	require.Equal(t, auth.RoleUser, buckets[1].ID)
	require.EqualValues(t, 2, buckets[1].Count)
}
