package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canopy/pkg/domain"
	"github.com/aretw0/canopy/pkg/ports"
)

func structuredCompleter(out map[string]any) ports.Completer {
	return ports.CompleterFunc(func(_ context.Context, _ ports.CompletionRequest) (ports.CompletionResult, error) {
		return ports.CompletionResult{Structured: out}, nil
	})
}

func TestClassifierClassify(t *testing.T) {
	completer := structuredCompleter(map[string]any{
		"category":   "products",
		"confidence": 0.91,
		"reasoning":  "asks about laptop specs",
	})

	cls := NewClassifier(completer).Classify(context.Background(), "Tell me about the Titan laptop")

	assert.Equal(t, domain.CategoryProducts, cls.Category)
	assert.Equal(t, 0.91, cls.Confidence)
	assert.Equal(t, "asks about laptop specs", cls.Reasoning)
}

func TestClassifierRequestShape(t *testing.T) {
	var captured ports.CompletionRequest
	completer := ports.CompleterFunc(func(_ context.Context, req ports.CompletionRequest) (ports.CompletionResult, error) {
		captured = req
		return ports.CompletionResult{Structured: map[string]any{
			"category": "general", "confidence": 0.8, "reasoning": "r",
		}}, nil
	})

	NewClassifier(completer).Classify(context.Background(), "  what are your hours?  ")

	require.NotNil(t, captured.Schema)
	assert.Equal(t, "query_classification", captured.Schema.Name)
	assert.Contains(t, captured.Prompt, "what are your hours?")
	assert.NotContains(t, captured.Prompt, "  what")
	assert.InDelta(t, 0.1, captured.Temperature, 1e-9)
}

func TestClassifierAbsorbsCompletionFailure(t *testing.T) {
	completer := ports.CompleterFunc(func(_ context.Context, _ ports.CompletionRequest) (ports.CompletionResult, error) {
		return ports.CompletionResult{}, errors.New("connection refused")
	})

	cls := NewClassifier(completer).Classify(context.Background(), "any query")

	assert.Equal(t, domain.CategoryUnhandled, cls.Category)
	assert.Equal(t, 0.0, cls.Confidence)
	assert.Contains(t, cls.Reasoning, "connection refused")
}

func TestClassifierRejectsInvalidOutput(t *testing.T) {
	tests := []struct {
		name string
		out  map[string]any
	}{
		{"unknown label", map[string]any{"category": "billing", "confidence": 0.9, "reasoning": "r"}},
		{"confidence above one", map[string]any{"category": "products", "confidence": 1.4, "reasoning": "r"}},
		{"negative confidence", map[string]any{"category": "products", "confidence": -0.1, "reasoning": "r"}},
		{"missing category", map[string]any{"confidence": 0.9, "reasoning": "r"}},
		{"nil structured output", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := NewClassifier(structuredCompleter(tt.out)).Classify(context.Background(), "query")

			assert.Equal(t, domain.CategoryUnhandled, cls.Category)
			assert.Equal(t, 0.0, cls.Confidence)
			assert.Equal(t, "classification failed validation", cls.Reasoning)
		})
	}
}

func TestDecodeClassificationNormalizesLabel(t *testing.T) {
	cls, ok := decodeClassification(map[string]any{
		"category":   "  Returns ",
		"confidence": 0.85,
		"reasoning":  "refund question",
	})

	require.True(t, ok)
	assert.Equal(t, domain.CategoryReturns, cls.Category)
}

func TestDecodeClassificationBounds(t *testing.T) {
	for _, c := range []float64{0.0, 1.0} {
		cls, ok := decodeClassification(map[string]any{
			"category": "general", "confidence": c, "reasoning": "edge",
		})
		require.True(t, ok, "confidence %.1f is in range", c)
		assert.Equal(t, c, cls.Confidence)
	}
}
