package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/catalog"
	"github.com/keymaxprot/backend/internal/httpx"
)

type Service struct {
	Repo    *GormRepo
	Catalog *catalog.GormRepo
}

// Line is a cart item joined with the product it points at.
type Line struct {
	CartItem
	Product   *catalog.Product `json:"product,omitempty"`
	LineTotal float64          `json:"line_total"`
}

// View is the derived cart state: totals are recomputed from current lines
// on every read, never stored.
type View struct {
	Items      []Line  `json:"items"`
	TotalItems int     `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
}

func (s *Service) GetCart(ctx context.Context, userID uuid.UUID) (*View, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, items)
}

func (s *Service) AddToCart(ctx context.Context, userID, productID uuid.UUID, qty int) (*View, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("%w: product_id required", httpx.ErrValidation)
	}
	if qty <= 0 {
		qty = 1
	}

	if _, err := s.Catalog.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", httpx.ErrNotFound)
		}
		return nil, err
	}

	if _, err := s.Repo.AddItem(ctx, userID, productID, qty); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (*View, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("%w: product_id required", httpx.ErrValidation)
	}

	if _, _, err := s.Repo.SetQuantity(ctx, userID, productID, qty); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item", httpx.ErrNotFound)
		}
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *Service) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) (*View, error) {
	if err := s.Repo.RemoveItem(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item", httpx.ErrNotFound)
		}
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *Service) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.Clear(ctx, userID)
}

func (s *Service) ToggleFavorite(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if productID == uuid.Nil {
		return false, fmt.Errorf("%w: product_id required", httpx.ErrValidation)
	}
	return s.Repo.ToggleFavorite(ctx, userID, productID)
}

func (s *Service) ListFavorites(ctx context.Context, userID uuid.UUID) ([]catalog.Product, error) {
	favs, err := s.Repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(favs))
	for _, f := range favs {
		p, err := s.Catalog.GetProduct(ctx, f.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

func (s *Service) buildView(ctx context.Context, items []CartItem) (*View, error) {
	view := &View{Items: make([]Line, 0, len(items))}
	for _, it := range items {
		line := Line{CartItem: it}
		p, err := s.Catalog.GetProduct(ctx, it.ProductID)
		if err == nil {
			line.Product = p
			line.LineTotal = p.Price * float64(it.Quantity)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		view.TotalItems += it.Quantity
		view.TotalPrice += line.LineTotal
		view.Items = append(view.Items, line)
	}
	return view, nil
}
