package stats

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/auth"
	"github.com/keymaxprot/backend/internal/cache"
	"github.com/keymaxprot/backend/internal/catalog"
	"github.com/keymaxprot/backend/internal/orders"
)

const cacheTTL = 5 * time.Minute

// Bucket is one aggregation row: the group key plus its metric.
type Bucket struct {
	ID         string  `json:"_id"`
	Count      int64   `json:"count,omitempty"`
	TotalSales float64 `json:"totalSales,omitempty"`
}

type Service struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

// SalesOverTime groups completed orders into YYYY-MM buckets. Months are
// computed here rather than in SQL so the query stays portable across
// postgres and the sqlite used in tests.
func (s *Service) SalesOverTime(ctx context.Context) ([]Bucket, error) {
	if out, ok := s.cached(ctx, "stats:sales"); ok {
		return out, nil
	}

	var rows []struct {
		CreatedAt  int64
		TotalPrice float64
	}
	err := s.DB.WithContext(ctx).Model(&orders.Order{}).
		Where("status = ?", orders.OrderStatusCompleted).
		Select("created_at", "total_price").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byMonth := map[string]*Bucket{}
	for _, row := range rows {
		month := time.Unix(row.CreatedAt, 0).UTC().Format("2006-01")
		b, ok := byMonth[month]
		if !ok {
			b = &Bucket{ID: month}
			byMonth[month] = b
		}
		b.Count++
		b.TotalSales += row.TotalPrice
	}

	out := make([]Bucket, 0, len(byMonth))
	for _, b := range byMonth {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	s.store(ctx, "stats:sales", out)
	return out, nil
}

// CategoryDistribution counts products per category.
func (s *Service) CategoryDistribution(ctx context.Context) ([]Bucket, error) {
	if out, ok := s.cached(ctx, "stats:categories"); ok {
		return out, nil
	}

	var rows []struct {
		Category string
		Count    int64
	}
	err := s.DB.WithContext(ctx).Model(&catalog.Product{}).
		Select("category", "COUNT(*) AS count").
		Group("category").
		Order("category ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]Bucket, 0, len(rows))
	for _, row := range rows {
		out = append(out, Bucket{ID: row.Category, Count: row.Count})
	}

	s.store(ctx, "stats:categories", out)
	return out, nil
}

// UserRoleCounts counts accounts per role.
func (s *Service) UserRoleCounts(ctx context.Context) ([]Bucket, error) {
	if out, ok := s.cached(ctx, "stats:roles"); ok {
		return out, nil
	}

	var rows []struct {
		Role  string
		Count int64
	}
	err := s.DB.WithContext(ctx).Model(&auth.User{}).
		Select("role", "COUNT(*) AS count").
		Group("role").
		Order("role ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]Bucket, 0, len(rows))
	for _, row := range rows {
		out = append(out, Bucket{ID: row.Role, Count: row.Count})
	}

	s.store(ctx, "stats:roles", out)
	return out, nil
}

func (s *Service) cached(ctx context.Context, key string) ([]Bucket, bool) {
	var out []Bucket
	if s.Cache.Get(ctx, key, &out) {
		return out, true
	}
	return nil, false
}

func (s *Service) store(ctx context.Context, key string, out []Bucket) {
	s.Cache.Set(ctx, key, out, cacheTTL)
}
