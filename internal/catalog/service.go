package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/events"
	"github.com/keymaxprot/backend/internal/httpx"
	"github.com/keymaxprot/backend/internal/logging"
)

// Indexer mirrors product writes into the search index. Implemented by the
// search package; nil disables indexing.
type Indexer interface {
	IndexProduct(ctx context.Context, p *Product) error
	RemoveProduct(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	Repo   *GormRepo
	Events *events.Producer
	Index  Indexer
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product", httpx.ErrNotFound)
	}
	return p, err
}

func (s *Service) ListProducts(ctx context.Context, category string, offset, limit int) (int64, []Product, error) {
	return s.Repo.ListProducts(ctx, category, offset, limit)
}

func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Name == "" || req.SKU == "" {
		return nil, fmt.Errorf("%w: name and sku required", httpx.ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", httpx.ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", httpx.ErrValidation)
	}

	prod := &Product{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Category:    req.Category,
		Brand:       req.Brand,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, prod, "product_created")
	return prod, nil
}

func (s *Service) PatchProduct(ctx context.Context, id uuid.UUID, req PatchProductRequest) (*Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", httpx.ErrValidation)
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", httpx.ErrValidation)
	}

	prod, err := s.Repo.PatchProduct(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", httpx.ErrNotFound)
		}
		return nil, err
	}

	s.afterWrite(ctx, prod, "product_updated")
	return prod, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product", httpx.ErrNotFound)
		}
		return err
	}

	l := logging.FromContext(ctx)
	if err := s.Events.Publish(ctx, events.TopicCatalog, id.String(), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	}); err != nil {
		l.Error("event publish failed", "error", err)
	}
	if s.Index != nil {
		if err := s.Index.RemoveProduct(ctx, id); err != nil {
			l.Error("search deindex failed", "error", err)
		}
	}
	return nil
}

func (s *Service) afterWrite(ctx context.Context, prod *Product, eventType string) {
	l := logging.FromContext(ctx)
	if err := s.Events.Publish(ctx, events.TopicCatalog, prod.ID.String(), map[string]any{
		"type":      eventType,
		"productID": prod.ID,
		"name":      prod.Name,
	}); err != nil {
		l.Error("event publish failed", "error", err)
	}
	if s.Index != nil {
		if err := s.Index.IndexProduct(ctx, prod); err != nil {
			l.Error("search index failed", "error", err)
		}
	}
}
