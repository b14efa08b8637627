package canopy

import (
	"context"
	"log/slog"

	"github.com/aretw0/canopy/internal/agents"
	"github.com/aretw0/canopy/internal/config"
	"github.com/aretw0/canopy/internal/logging"
	"github.com/aretw0/canopy/internal/runtime"
	"github.com/aretw0/canopy/pkg/domain"
	"github.com/aretw0/canopy/pkg/ports"
)

// Version is the library version reported by the CLI and the HTTP /info
// endpoint.
var Version = "0.3.0"

// Engine is the high-level entry point. It wraps the internal routing
// engine and attaches record assembly and optional transcript persistence.
// An Engine is stateless per query and safe for concurrent use.
type Engine struct {
	runtime *runtime.Engine
	store   ports.TranscriptStore
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	cfg     config.Config
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// WithTranscripts persists completed records to the given store, keyed by
// session ID. Queries without a session ID are not persisted.
func WithTranscripts(store ports.TranscriptStore) Option {
	return func(e *Engine) { e.store = store }
}

// WithConfidenceThreshold overrides the routing gate (default 0.7).
func WithConfidenceThreshold(threshold float64) Option {
	return func(e *Engine) { e.cfg.ConfidenceThreshold = threshold }
}

// WithTopK overrides the passage count per query (default 4).
func WithTopK(k int) Option {
	return func(e *Engine) { e.cfg.TopK = k }
}

// WithContact overrides the support contact block in escalation messages.
func WithContact(email, hours, responseTime string) Option {
	return func(e *Engine) {
		e.cfg.Contact = config.Contact{Email: email, Hours: hours, ResponseTime: responseTime}
	}
}

// New wires the pipeline over the two required ports.
func New(completer ports.Completer, retriever ports.Retriever, opts ...Option) (*Engine, error) {
	return NewWithConfig(config.Default(), completer, retriever, opts...)
}

// NewWithConfig is New with an explicit resolved configuration; the CLI
// uses it after loading file and environment settings.
func NewWithConfig(cfg config.Config, completer ports.Completer, retriever ports.Retriever, opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: logging.NewNop(),
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	classifier := agents.NewClassifier(completer,
		agents.WithClassifierTimeout(e.cfg.CompletionTimeout),
		agents.WithClassifierLogger(e.logger),
	)
	responder := agents.NewResponder(completer, retriever,
		agents.WithTopK(e.cfg.TopK),
		agents.WithRetrievalTimeout(e.cfg.RetrievalTimeout),
		agents.WithGenerateTimeout(e.cfg.CompletionTimeout),
		agents.WithResponderLogger(e.logger),
	)
	escalation := agents.NewEscalation(agents.Contact{
		Email:        e.cfg.Contact.Email,
		Hours:        e.cfg.Contact.Hours,
		ResponseTime: e.cfg.Contact.ResponseTime,
	}, e.cfg.ConfidenceThreshold, e.cfg.ClarificationThreshold)

	e.runtime = runtime.NewEngine(classifier, responder, escalation,
		runtime.WithThreshold(e.cfg.ConfidenceThreshold),
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(e.hooks),
	)
	return e, nil
}

// Process runs one query through the pipeline and returns the completed
// record. sessionID is opaque: it is echoed in the record and used as the
// transcript key, never interpreted.
func (e *Engine) Process(ctx context.Context, query, sessionID string) (*domain.Record, error) {
	state, err := e.runtime.Run(ctx, query)
	if err != nil {
		return nil, err
	}

	record := domain.NewRecord(state, sessionID)

	if e.store != nil && sessionID != "" {
		if err := e.store.Append(ctx, sessionID, record); err != nil {
			// Transcripts are best-effort; the answer still goes out.
			e.logger.Warn("failed to persist transcript", "err", err, "session_id", sessionID)
		}
	}
	return record, nil
}
