package runtime

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canopy/internal/agents"
	"github.com/aretw0/canopy/pkg/domain"
)

type stubClassifier struct {
	result domain.Classification
	panics bool
}

func (s *stubClassifier) Classify(_ context.Context, _ string) domain.Classification {
	if s.panics {
		panic("classifier exploded")
	}
	return s.result
}

type stubResponder struct {
	result *agents.ResponderResult
	err    error
	panics bool
	calls  int
	mu     sync.Mutex
}

func (s *stubResponder) Respond(_ context.Context, _ string, _ domain.Category) (*agents.ResponderResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.panics {
		panic("responder exploded")
	}
	return s.result, s.err
}

type stubEscalator struct {
	calls int
}

func (s *stubEscalator) Escalate(_ string, _ domain.Category, _ float64) string {
	s.calls++
	return "escalation response"
}

func classified(category domain.Category, confidence float64) *stubClassifier {
	return &stubClassifier{result: domain.Classification{
		Category:   category,
		Confidence: confidence,
		Reasoning:  "test reasoning",
	}}
}

func answered(response string, passages ...string) *stubResponder {
	return &stubResponder{result: &agents.ResponderResult{
		Response: response,
		Passages: passages,
	}}
}

func TestEngineRunRAGBranch(t *testing.T) {
	responder := answered("the answer", "passage one", "passage two")
	escalator := &stubEscalator{}
	engine := NewEngine(classified(domain.CategoryProducts, 0.92), responder, escalator)

	state, err := engine.Run(context.Background(), "What is the battery life?")
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryProducts, state.Category)
	assert.Equal(t, 0.92, state.Confidence)
	assert.Equal(t, "the answer", state.Response)
	assert.Equal(t, []string{"passage one", "passage two"}, state.Passages)
	assert.Equal(t, domain.NodeRAGResponder, state.NodeExecuted)
	assert.False(t, state.RequiresEscalation)
	assert.Equal(t, domain.StageDone, state.Stage)
	assert.True(t, state.Consistent())
	assert.Zero(t, escalator.calls, "escalation must not run on the RAG branch")
}

func TestEngineRunEscalationBranches(t *testing.T) {
	tests := []struct {
		name       string
		category   domain.Category
		confidence float64
	}{
		{"unhandled category", domain.CategoryUnhandled, 0.95},
		{"low confidence", domain.CategoryReturns, 0.4},
		{"unhandled and low confidence", domain.CategoryUnhandled, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responder := answered("never used")
			escalator := &stubEscalator{}
			engine := NewEngine(classified(tt.category, tt.confidence), responder, escalator)

			state, err := engine.Run(context.Background(), "help me")
			require.NoError(t, err)

			assert.Equal(t, "escalation response", state.Response)
			assert.Equal(t, domain.NodeEscalation, state.NodeExecuted)
			assert.True(t, state.RequiresEscalation)
			assert.Equal(t, domain.StageDone, state.Stage)
			assert.True(t, state.Consistent())
			assert.Zero(t, responder.calls, "responder must not run when escalating")
			// The classifier's verdict survives the branch unchanged.
			assert.Equal(t, tt.category, state.Category)
			assert.Equal(t, tt.confidence, state.Confidence)
		})
	}
}

// Confidence exactly at the threshold takes the RAG branch.
func TestEngineRunThresholdInclusive(t *testing.T) {
	escalator := &stubEscalator{}
	engine := NewEngine(classified(domain.CategoryGeneral, 0.7), answered("at the line"), escalator)

	state, err := engine.Run(context.Background(), "store hours?")
	require.NoError(t, err)
	assert.Equal(t, domain.NodeRAGResponder, state.NodeExecuted)
	assert.Zero(t, escalator.calls)
}

func TestEngineRunResponderFailureDegrades(t *testing.T) {
	responder := &stubResponder{err: &domain.ResponderError{
		Step: "retrieve",
		Err:  errors.New("index unavailable"),
	}}
	escalator := &stubEscalator{}
	engine := NewEngine(classified(domain.CategoryProducts, 0.9), responder, escalator)

	state, err := engine.Run(context.Background(), "What chargers do you sell?")
	require.NoError(t, err)

	assert.Equal(t, "escalation response", state.Response)
	assert.Equal(t, domain.NodeEscalation, state.NodeExecuted)
	assert.True(t, state.RequiresEscalation)
	assert.Equal(t, 1, escalator.calls)
	// Degradation forwards the original classification untouched.
	assert.Equal(t, domain.CategoryProducts, state.Category)
	assert.Equal(t, 0.9, state.Confidence)
	assert.True(t, state.Consistent())
}

func TestEngineRunEmptyQuery(t *testing.T) {
	engine := NewEngine(classified(domain.CategoryGeneral, 0.9), answered("x"), &stubEscalator{})

	for _, q := range []string{"", "   ", "\n\t"} {
		state, err := engine.Run(context.Background(), q)
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
		assert.Nil(t, state)
	}
}

func TestEngineRunTrimsQuery(t *testing.T) {
	engine := NewEngine(classified(domain.CategoryGeneral, 0.9), answered("hours"), &stubEscalator{})

	state, err := engine.Run(context.Background(), "  store hours?  ")
	require.NoError(t, err)
	assert.Equal(t, "store hours?", state.Query)
}

func TestEngineRunRecoversPanic(t *testing.T) {
	t.Run("classifier panic", func(t *testing.T) {
		escalator := &stubEscalator{}
		engine := NewEngine(&stubClassifier{panics: true}, answered("x"), escalator)

		state, err := engine.Run(context.Background(), "boom")
		require.NoError(t, err)
		assert.True(t, state.RequiresEscalation)
		assert.Equal(t, "escalation response", state.Response)
		assert.Equal(t, domain.StageDone, state.Stage)
		assert.True(t, state.Consistent())
	})

	t.Run("responder panic", func(t *testing.T) {
		escalator := &stubEscalator{}
		engine := NewEngine(classified(domain.CategoryProducts, 0.9), &stubResponder{panics: true}, escalator)

		state, err := engine.Run(context.Background(), "boom")
		require.NoError(t, err)
		assert.True(t, state.RequiresEscalation)
		assert.Equal(t, domain.NodeEscalation, state.NodeExecuted)
		assert.Equal(t, domain.StageDone, state.Stage)
	})
}

func TestEngineWithThreshold(t *testing.T) {
	escalator := &stubEscalator{}
	engine := NewEngine(classified(domain.CategoryProducts, 0.75), answered("x"), escalator,
		WithThreshold(0.8))

	state, err := engine.Run(context.Background(), "query")
	require.NoError(t, err)
	assert.True(t, state.RequiresEscalation, "0.75 is below the raised 0.8 gate")
}

func TestEngineLifecycleHooks(t *testing.T) {
	var mu sync.Mutex
	var entered, left []string
	var routes []string

	hooks := domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			mu.Lock()
			entered = append(entered, e.NodeID)
			mu.Unlock()
		},
		OnNodeLeave: func(_ context.Context, e *domain.NodeEvent) {
			mu.Lock()
			left = append(left, e.NodeID)
			mu.Unlock()
		},
		OnRouteDecision: func(_ context.Context, e *domain.RouteEvent) {
			mu.Lock()
			routes = append(routes, e.Route)
			mu.Unlock()
		},
	}

	engine := NewEngine(classified(domain.CategoryProducts, 0.9), answered("ok", "p1"), &stubEscalator{},
		WithLifecycleHooks(hooks))

	_, err := engine.Run(context.Background(), "query")
	require.NoError(t, err)

	assert.Equal(t, []string{"classifier", "rag_responder"}, entered)
	assert.Equal(t, []string{"classifier", "rag_responder"}, left)
	assert.Equal(t, []string{"rag"}, routes)
}

func TestEngineHookErrorFlagOnDegradation(t *testing.T) {
	var errFlags []bool
	hooks := domain.LifecycleHooks{
		OnNodeLeave: func(_ context.Context, e *domain.NodeEvent) {
			if e.NodeID == "rag_responder" {
				errFlags = append(errFlags, e.IsError)
			}
		},
	}

	responder := &stubResponder{err: errors.New("generation failed")}
	engine := NewEngine(classified(domain.CategoryProducts, 0.9), responder, &stubEscalator{},
		WithLifecycleHooks(hooks))

	_, err := engine.Run(context.Background(), "query")
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, errFlags)
}

// One engine, many concurrent runs: each gets its own state.
func TestEngineRunConcurrent(t *testing.T) {
	engine := NewEngine(classified(domain.CategoryProducts, 0.9), answered("concurrent answer"), &stubEscalator{})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state, err := engine.Run(context.Background(), "parallel query")
			assert.NoError(t, err)
			assert.True(t, state.Consistent())
			assert.Equal(t, "concurrent answer", state.Response)
		}()
	}
	wg.Wait()
}
