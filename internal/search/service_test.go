package search

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/catalog"
	"github.com/keymaxprot/backend/internal/forum"
	"github.com/keymaxprot/backend/internal/tutorials"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &tutorials.Tutorial{}, &forum.Thread{}))
	return &Service{DB: db}
}

func TestQueryDatabaseFallback(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.DB.Create(&catalog.Product{
		Name: "Exhaust tip, chrome", SKU: "EXH-01", Price: 40,
	}).Error)
	require.NoError(t, svc.DB.Create(&catalog.Product{
		Name: "Floor mats", SKU: "MAT-01", Description: "all-weather", Price: 25,
	}).Error)
	require.NoError(t, svc.DB.Create(&tutorials.Tutorial{
		Title: "Exhaust install walkthrough", Body: "step by step", AuthorID: uuid.New(),
	}).Error)
	require.NoError(t, svc.DB.Create(&forum.Thread{
		Title: "Loudest exhaust setups", AuthorID: uuid.New(),
	}).Error)

	res, err := svc.Query(ctx, "exhaust", 10)
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	require.Len(t, res.Tutorials, 1)
	require.Len(t, res.Threads, 1)

	// Case-insensitive match across columns.
	res, err = svc.Query(ctx, "ALL-WEATHER", 10)
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	require.Equal(t, "MAT-01", res.Products[0].SKU)
}

func TestQueryBlankReturnsEmpty(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Query(context.Background(), "   ", 10)
	require.NoError(t, err)
	require.Empty(t, res.Products)
	require.Empty(t, res.Tutorials)
	require.Empty(t, res.Threads)
}
