// Package search keeps the product and tutorial catalogs queryable. When
// elasticsearch is configured it owns the index lifecycle; without it the
// queries fall back to the database.
package search

import (
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/keymaxprot/backend/internal/config"
)

const (
	IndexProducts  = "products"
	IndexTutorials = "tutorials"
)

// NewClient connects to elasticsearch and verifies the cluster responds.
// Returns (nil, nil) when ES_URL is not set.
func NewClient(cfg config.Config) (*elasticsearch.Client, error) {
	if cfg.ESURL == "" {
		return nil, nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ESURL},
		Username:  cfg.ESUser,
		Password:  cfg.ESPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch: %s: %s", res.Status(), body)
	}

	return client, nil
}
