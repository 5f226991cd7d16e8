package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/catalog"
	"github.com/keymaxprot/backend/internal/httpx"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &CartItem{}, &Favorite{}))
	return db
}

func newTestService(t *testing.T) (*Service, *catalog.Product) {
	t.Helper()

	db := initTestDB(t)
	product := catalog.Product{
		Name:     "LED headlight kit",
		SKU:      "LED-001",
		Category: "lighting",
		Price:    120,
		Stock:    10,
	}
	require.NoError(t, db.Create(&product).Error)

	svc := &Service{
		Repo:    &GormRepo{DB: db},
		Catalog: &catalog.GormRepo{DB: db},
	}
	return svc, &product
}

func TestAddToCartMergesQuantity(t *testing.T) {
	svc, product := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	view, err := svc.AddToCart(ctx, userID, product.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 1, view.TotalItems)

	view, err = svc.AddToCart(ctx, userID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, 3, view.TotalItems)
	require.Equal(t, 360.0, view.TotalPrice)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddToCart(context.Background(), uuid.New(), uuid.New(), 1)
	require.True(t, errors.Is(err, httpx.ErrNotFound))
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	svc, product := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddToCart(ctx, userID, product.ID, 2)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(ctx, userID, product.ID, 0)
	require.NoError(t, err)
	require.Empty(t, view.Items)
	require.Equal(t, 0, view.TotalItems)
	require.Equal(t, 0.0, view.TotalPrice)
}

func TestCartsAreScopedPerUser(t *testing.T) {
	svc, product := newTestService(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	_, err := svc.AddToCart(ctx, alice, product.ID, 5)
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, bob)
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestClearCart(t *testing.T) {
	svc, product := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddToCart(ctx, userID, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, userID))

	view, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestToggleFavorite(t *testing.T) {
	svc, product := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	added, err := svc.ToggleFavorite(ctx, userID, product.ID)
	require.NoError(t, err)
	require.True(t, added)

	favs, err := svc.ListFavorites(ctx, userID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.Equal(t, product.ID, favs[0].ID)

	added, err = svc.ToggleFavorite(ctx, userID, product.ID)
	require.NoError(t, err)
	require.False(t, added)

	favs, err = svc.ListFavorites(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, favs)
}
