package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"

	"github.com/keymaxprot/backend/internal/catalog"
	"github.com/keymaxprot/backend/internal/tutorials"
)

// Indexer mirrors catalog and tutorial writes into elasticsearch. It
// satisfies the indexing hooks those packages expose.
type Indexer struct {
	ES *elasticsearch.Client
}

func (ix *Indexer) IndexProduct(ctx context.Context, p *catalog.Product) error {
	return ix.index(ctx, IndexProducts, p.ID.String(), p)
}

func (ix *Indexer) RemoveProduct(ctx context.Context, id uuid.UUID) error {
	return ix.remove(ctx, IndexProducts, id.String())
}

func (ix *Indexer) IndexTutorial(ctx context.Context, t *tutorials.Tutorial) error {
	return ix.index(ctx, IndexTutorials, t.ID.String(), t)
}

func (ix *Indexer) RemoveTutorial(ctx context.Context, id uuid.UUID) error {
	return ix.remove(ctx, IndexTutorials, id.String())
}

func (ix *Indexer) index(ctx context.Context, index, id string, doc any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return err
	}

	res, err := ix.ES.Index(index, &buf,
		ix.ES.Index.WithDocumentID(id),
		ix.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("index %s/%s: %s: %s", index, id, res.Status(), body)
	}
	return nil
}

func (ix *Indexer) remove(ctx context.Context, index, id string) error {
	res, err := ix.ES.Delete(index, id, ix.ES.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	// Removing a document that was never indexed is not a failure.
	if res.IsError() && res.StatusCode != 404 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("delete %s/%s: %s: %s", index, id, res.Status(), body)
	}
	return nil
}
