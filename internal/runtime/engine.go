package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/canopy/internal/agents"
	"github.com/aretw0/canopy/internal/logging"
	"github.com/aretw0/canopy/pkg/domain"
)

// Node IDs as they appear in events and logs.
const (
	nodeClassifier = "classifier"
	nodeResponder  = string(domain.NodeRAGResponder)
	nodeEscalation = string(domain.NodeEscalation)
)

// Classifier is the stage contract the engine dispatches to first.
// Implementations absorb their own failures and always return a result.
type Classifier interface {
	Classify(ctx context.Context, query string) domain.Classification
}

// Responder is the RAG stage contract. A returned error degrades the run
// to the escalation branch.
type Responder interface {
	Respond(ctx context.Context, query string, category domain.Category) (*agents.ResponderResult, error)
}

// Escalator is the fallback stage contract. It cannot fail.
type Escalator interface {
	Escalate(query string, category domain.Category, confidence float64) string
}

// Engine is the routing core: it owns the workflow state, invokes the
// classifier, applies the routing policy, dispatches to exactly one of the
// responder or the escalation handler, and assembles the completed state.
// An Engine is stateless across queries and safe for concurrent use.
type Engine struct {
	classifier Classifier
	responder  Responder
	escalation Escalator
	threshold  float64
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithThreshold sets the routing confidence gate (default 0.7).
func WithThreshold(threshold float64) EngineOption {
	return func(e *Engine) { e.threshold = threshold }
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) { e.hooks = hooks }
}

// NewEngine wires the three stages into the state machine.
func NewEngine(classifier Classifier, responder Responder, escalation Escalator, opts ...EngineOption) *Engine {
	e := &Engine{
		classifier: classifier,
		responder:  responder,
		escalation: escalation,
		threshold:  0.7,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run processes one query through the single-pass state machine:
//
//	INIT -> CLASSIFIED -> {RESPONDED | ESCALATED} -> DONE
//
// Run returns an error only for contract violations (empty query). Every
// other failure, including panics out of the classifier or responder,
// terminates in the escalation branch, never in a fault visible to the
// caller.
func (e *Engine) Run(ctx context.Context, query string) (st *domain.State, err error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	state := domain.NewState(query)

	// Last-resort boundary: an unclassified fault inside a stage must still
	// end in an escalation outcome.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("pipeline fault recovered", "err", fmt.Sprintf("%v", r))
			if state.Response == "" {
				e.escalate(ctx, state)
			}
			state.Stage = domain.StageDone
			st, err = state, nil
		}
	}()

	// INIT -> CLASSIFIED. The classifier absorbs its own failures, so this
	// transition always succeeds with some category and confidence.
	e.emitNodeEnter(ctx, nodeClassifier)
	classifyStart := time.Now()
	cls := e.classifier.Classify(ctx, state.Query)
	state.Category = cls.Category
	state.Confidence = cls.Confidence
	state.Reasoning = cls.Reasoning
	state.Stage = domain.StageClassified
	e.emitNodeLeave(ctx, nodeClassifier, time.Since(classifyStart), false)

	// The single policy gate.
	route, reason := Decide(state.Category, state.Confidence, e.threshold)
	e.emitRouteDecision(ctx, route, reason, state)
	e.logger.Info("query routed",
		"route", string(route),
		"category", state.Category,
		"confidence", state.Confidence,
		"reason", reason,
	)

	if route == RouteRAG {
		e.emitNodeEnter(ctx, nodeResponder)
		respondStart := time.Now()
		result, rErr := e.responder.Respond(ctx, state.Query, state.Category)
		if rErr == nil {
			state.Passages = result.Passages
			state.Response = result.Response
			state.NodeExecuted = domain.NodeRAGResponder
			state.RequiresEscalation = false
			state.Stage = domain.StageResponded
			e.emitNodeLeave(ctx, nodeResponder, time.Since(respondStart), false)
			state.Stage = domain.StageDone
			return state, nil
		}

		// Graceful degradation: the one cross-branch transition. The
		// original category and confidence pass through unchanged.
		e.emitNodeLeave(ctx, nodeResponder, time.Since(respondStart), true)
		e.logger.Warn("responder failed, degrading to escalation", "err", rErr)
	}

	e.escalate(ctx, state)
	state.Stage = domain.StageDone
	return state, nil
}

// escalate runs the terminal escalation branch. The handler is pure and
// cannot fail, which makes this transition unconditional.
func (e *Engine) escalate(ctx context.Context, state *domain.State) {
	e.emitNodeEnter(ctx, nodeEscalation)
	start := time.Now()
	state.Response = e.escalation.Escalate(state.Query, state.Category, state.Confidence)
	state.NodeExecuted = domain.NodeEscalation
	state.RequiresEscalation = true
	state.Stage = domain.StageEscalated
	e.emitNodeLeave(ctx, nodeEscalation, time.Since(start), false)
}
