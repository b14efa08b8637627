package ports

import "context"

// Retriever is the passage retrieval port. Retrieve returns up to k
// passages ranked most-relevant first. An empty result is not an error;
// a non-nil error means the backend itself failed.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}

// RetrieverFunc adapts a function to the Retriever interface.
type RetrieverFunc func(ctx context.Context, query string, k int) ([]string, error)

func (f RetrieverFunc) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	return f(ctx, query, k)
}
