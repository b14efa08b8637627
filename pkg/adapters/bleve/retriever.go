// Package bleve provides an in-memory full-text implementation of the
// passage retriever port. It is the default knowledge-base backend for the
// server and CLI; swap in a vector store behind the same port for
// semantic retrieval.
package bleve

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
)

// passage is the indexed document shape. The text field is stored so hits
// can be returned verbatim.
type passage struct {
	Text string `json:"text"`
}

// Retriever implements ports.Retriever over a mem-only bleve index.
// Safe for concurrent searches; Add calls should finish before serving.
type Retriever struct {
	index bleve.Index
}

// NewRetriever creates an empty in-memory index.
func NewRetriever() (*Retriever, error) {
	mapping := bleve.NewIndexMapping()
	index, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &Retriever{index: index}, nil
}

// Add indexes one passage under the given id. Re-adding an id replaces it.
func (r *Retriever) Add(id, text string) error {
	if err := r.index.Index(id, passage{Text: text}); err != nil {
		return fmt.Errorf("failed to index passage %s: %w", id, err)
	}
	return nil
}

// Retrieve returns up to k passages ranked by match score, best first.
// Zero hits yield an empty (non-nil) slice, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	q := bleve.NewMatchQuery(query)
	q.SetField("text")

	req := bleve.NewSearchRequestOptions(q, k, 0, false)
	req.Fields = []string{"text"}

	res, err := r.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	passages := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if text, ok := hit.Fields["text"].(string); ok {
			passages = append(passages, text)
		}
	}
	return passages, nil
}

// Close releases the index.
func (r *Retriever) Close() error {
	return r.index.Close()
}
