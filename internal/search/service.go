package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/catalog"
	"github.com/keymaxprot/backend/internal/forum"
	"github.com/keymaxprot/backend/internal/tutorials"
)

// Results groups hits per collection. Threads are always served from the
// database; products and tutorials come from elasticsearch when it is
// configured and from the database otherwise.
type Results struct {
	Products  []catalog.Product    `json:"products"`
	Tutorials []tutorials.Tutorial `json:"tutorials"`
	Threads   []forum.Thread       `json:"threads"`
}

type Service struct {
	DB *gorm.DB
	ES *elasticsearch.Client
}

func (s *Service) Query(ctx context.Context, rawQ string, limit int) (*Results, error) {
	q := strings.TrimSpace(rawQ)
	if q == "" {
		return &Results{
			Products:  []catalog.Product{},
			Tutorials: []tutorials.Tutorial{},
			Threads:   []forum.Thread{},
		}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	out := &Results{}
	var err error

	if s.ES != nil {
		if out.Products, err = esSearch[catalog.Product](ctx, s.ES, IndexProducts, q, limit); err != nil {
			return nil, err
		}
		if out.Tutorials, err = esSearch[tutorials.Tutorial](ctx, s.ES, IndexTutorials, q, limit); err != nil {
			return nil, err
		}
	} else {
		if err = s.likeSearch(ctx, &out.Products, q, limit, "name", "description"); err != nil {
			return nil, err
		}
		if err = s.likeSearch(ctx, &out.Tutorials, q, limit, "title", "body"); err != nil {
			return nil, err
		}
	}

	if err = s.likeSearch(ctx, &out.Threads, q, limit, "title", "body"); err != nil {
		return nil, err
	}
	return out, nil
}

func esSearch[T any](ctx context.Context, es *elasticsearch.Client, index, q string, size int) ([]T, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^2", "title^2", "description", "body"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search %s: %s: %s", index, res.Status(), raw)
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source T `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	items := make([]T, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		items[i] = hit.Source
	}
	return items, nil
}

// likeSearch is the database fallback. LOWER on both sides keeps the match
// case-insensitive on postgres and sqlite alike.
func (s *Service) likeSearch(ctx context.Context, dest any, q string, limit int, columns ...string) error {
	pattern := "%" + strings.ToLower(q) + "%"

	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		conds[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}

	return s.DB.WithContext(ctx).
		Where(strings.Join(conds, " OR "), args...).
		Limit(limit).
		Find(dest).Error
}
