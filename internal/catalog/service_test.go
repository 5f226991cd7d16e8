package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/httpx"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Product{}))
	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{Repo: &GormRepo{DB: initTestDB(t)}}
}

func productRequest(sku string) CreateProductRequest {
	return CreateProductRequest{
		Name:     "Cold air intake",
		SKU:      sku,
		Category: "performance",
		Brand:    "K&N",
		Price:    299.99,
		Stock:    4,
	}
}

func TestCreateProduct(t *testing.T) {
	svc := newTestService(t)

	prod, err := svc.CreateProduct(context.Background(), productRequest("CAI-01"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, prod.ID)
	require.Equal(t, "CAI-01", prod.SKU)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, productRequest("CAI-01"))
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, productRequest("CAI-01"))
	require.Error(t, err)
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := productRequest("CAI-01")
	req.Name = ""
	_, err := svc.CreateProduct(ctx, req)
	require.True(t, errors.Is(err, httpx.ErrValidation))

	req = productRequest("CAI-01")
	req.Price = -1
	_, err = svc.CreateProduct(ctx, req)
	require.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestPatchProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	prod, err := svc.CreateProduct(ctx, productRequest("CAI-01"))
	require.NoError(t, err)

	newPrice := 249.99
	patched, err := svc.PatchProduct(ctx, prod.ID, PatchProductRequest{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, 249.99, patched.Price)
	// Untouched fields survive the patch.
	require.Equal(t, prod.Name, patched.Name)
	require.Equal(t, prod.Stock, patched.Stock)

	_, err = svc.PatchProduct(ctx, uuid.New(), PatchProductRequest{Price: &newPrice})
	require.True(t, errors.Is(err, httpx.ErrNotFound))
}

func TestListProductsByCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, productRequest("CAI-01"))
	require.NoError(t, err)

	other := productRequest("EXH-01")
	other.Category = "exhaust"
	_, err = svc.CreateProduct(ctx, other)
	require.NoError(t, err)

	total, items, err := svc.ListProducts(ctx, "exhaust", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, "EXH-01", items[0].SKU)

	total, _, err = svc.ListProducts(ctx, "", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
}

func TestDecrementStockGuard(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	prod, err := svc.CreateProduct(ctx, productRequest("CAI-01"))
	require.NoError(t, err)

	require.NoError(t, svc.Repo.DecrementStock(ctx, prod.ID, 3))

	fresh, err := svc.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	require.Equal(t, 1, fresh.Stock)

	// Never below zero.
	require.Error(t, svc.Repo.DecrementStock(ctx, prod.ID, 2))

	fresh, err = svc.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	require.Equal(t, 1, fresh.Stock)
}

func TestDeleteProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	prod, err := svc.CreateProduct(ctx, productRequest("CAI-01"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, prod.ID))

	_, err = svc.GetProduct(ctx, prod.ID)
	require.True(t, errors.Is(err, httpx.ErrNotFound))

	require.True(t, errors.Is(svc.DeleteProduct(ctx, prod.ID), httpx.ErrNotFound))
}
