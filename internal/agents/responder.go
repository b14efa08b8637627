package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/canopy/internal/logging"
	"github.com/aretw0/canopy/pkg/domain"
	"github.com/aretw0/canopy/pkg/ports"
)

// ResponderResult carries the generated answer and the passages that
// grounded it, in retrieval order.
type ResponderResult struct {
	Response string
	Passages []string
}

// Responder answers a classified query with retrieval-augmented
// generation. Unlike the classifier it does not absorb failures: a broken
// retriever, a broken generator, or an empty answer is reported to the
// engine, which degrades the run to escalation.
type Responder struct {
	completer        ports.Completer
	retriever        ports.Retriever
	topK             int
	retrievalTimeout time.Duration
	generateTimeout  time.Duration
	logger           *slog.Logger
}

// ResponderOption configures a Responder.
type ResponderOption func(*Responder)

// WithTopK sets the number of passages requested per query (default 4).
func WithTopK(k int) ResponderOption {
	return func(r *Responder) { r.topK = k }
}

// WithRetrievalTimeout bounds each retriever call.
func WithRetrievalTimeout(d time.Duration) ResponderOption {
	return func(r *Responder) { r.retrievalTimeout = d }
}

// WithGenerateTimeout bounds each generation call.
func WithGenerateTimeout(d time.Duration) ResponderOption {
	return func(r *Responder) { r.generateTimeout = d }
}

// WithResponderLogger sets a structured logger.
func WithResponderLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) { r.logger = logger }
}

// NewResponder creates a responder over the completion and retrieval ports.
func NewResponder(completer ports.Completer, retriever ports.Retriever, opts ...ResponderOption) *Responder {
	r := &Responder{
		completer: completer,
		retriever: retriever,
		topK:      4,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond retrieves context for the query, assembles the category-specific
// prompt, and generates the answer. Passage order is preserved end to end:
// the retriever's ranking is what the prompt sees.
func (r *Responder) Respond(ctx context.Context, query string, category domain.Category) (*ResponderResult, error) {
	passages, err := r.retrieve(ctx, query)
	if err != nil {
		return nil, &domain.ResponderError{Step: "retrieve", Err: err}
	}

	r.logger.Debug("passages retrieved", "count", len(passages), "category", category)

	answer, err := r.generate(ctx, query, category, passages)
	if err != nil {
		return nil, &domain.ResponderError{Step: "generate", Err: err}
	}

	return &ResponderResult{Response: answer, Passages: passages}, nil
}

func (r *Responder) retrieve(ctx context.Context, query string) ([]string, error) {
	if r.retrievalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.retrievalTimeout)
		defer cancel()
	}

	passages, err := r.retriever.Retrieve(ctx, query, r.topK)
	if err != nil {
		return nil, err
	}
	if passages == nil {
		passages = []string{}
	}
	return passages, nil
}

func (r *Responder) generate(ctx context.Context, query string, category domain.Category, passages []string) (string, error) {
	if r.generateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.generateTimeout)
		defer cancel()
	}

	result, err := r.completer.Complete(ctx, ports.CompletionRequest{
		System:      buildResponderPrompt(category, passages),
		Prompt:      query,
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(result.Text)
	if answer == "" {
		return "", domain.ErrEmptyCompletion
	}
	return answer, nil
}

// buildResponderPrompt selects the category template (general is the
// fallback) and splices in the passage block. Zero passages become an
// explicit no-context marker instead of a failure.
func buildResponderPrompt(category domain.Category, passages []string) string {
	template, ok := responderPrompts[category]
	if !ok {
		template = responderPrompts[domain.CategoryGeneral]
	}

	contextBlock := noContextMarker
	if len(passages) > 0 {
		contextBlock = strings.Join(passages, "\n\n")
	}
	return fmt.Sprintf(template, contextBlock)
}
