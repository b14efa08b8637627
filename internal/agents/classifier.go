package agents

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/canopy/internal/logging"
	"github.com/aretw0/canopy/pkg/domain"
	"github.com/aretw0/canopy/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

// classificationSchema is the structured output contract for the
// classification call. The completion backend enforces it where it can;
// decodeClassification re-validates on our side regardless.
var classificationSchema = &ports.SchemaDescriptor{
	Name:        "query_classification",
	Description: "Classification result for a customer query",
	Properties: map[string]any{
		"category": map[string]any{
			"type": "string",
			"enum": domain.Categories(),
		},
		"confidence": map[string]any{
			"type":        "number",
			"description": "Confidence score between 0 and 1",
		},
		"reasoning": map[string]any{
			"type":        "string",
			"description": "Brief explanation for the classification",
		},
	},
	Required: []string{"category", "confidence", "reasoning"},
}

// Classifier turns a raw query into a validated Classification.
// It never returns an error: transport failures and malformed output are
// absorbed into a forced "unhandled" result so classification can never
// kill a run.
type Classifier struct {
	completer ports.Completer
	timeout   time.Duration
	logger    *slog.Logger
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithClassifierTimeout bounds each completion call. Zero disables the
// bound (the caller's context still applies).
func WithClassifierTimeout(d time.Duration) ClassifierOption {
	return func(c *Classifier) { c.timeout = d }
}

// WithClassifierLogger sets a structured logger.
func WithClassifierLogger(logger *slog.Logger) ClassifierOption {
	return func(c *Classifier) { c.logger = logger }
}

// NewClassifier creates a classifier backed by the given completion port.
func NewClassifier(completer ports.Completer, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		completer: completer,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify submits the trimmed query to the completion port and validates
// the result. Low temperature keeps classification consistent.
func (c *Classifier) Classify(ctx context.Context, query string) domain.Classification {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.completer.Complete(ctx, ports.CompletionRequest{
		System:      classifierSystemPrompt,
		Prompt:      "Classify this customer query: " + strings.TrimSpace(query),
		Schema:      classificationSchema,
		Temperature: 0.1,
	})
	if err != nil {
		c.logger.Warn("classification absorbed a completion failure", "err", err)
		return domain.Unhandled("classification error: " + err.Error())
	}

	cls, ok := decodeClassification(result.Structured)
	if !ok {
		c.logger.Warn("classification output failed validation", "raw", result.Structured)
		return domain.Unhandled("classification failed validation")
	}

	c.logger.Debug("query classified",
		"category", cls.Category,
		"confidence", cls.Confidence,
	)
	return cls
}

// decodeClassification is the strict decode-or-reject boundary for the
// model's structured output. Anything that does not decode into the three
// declared fields, carries an unknown label, or reports an out-of-range
// confidence is rejected as a whole.
func decodeClassification(raw map[string]any) (domain.Classification, bool) {
	if raw == nil {
		return domain.Classification{}, false
	}

	var out struct {
		Category   string  `mapstructure:"category"`
		Confidence float64 `mapstructure:"confidence"`
		Reasoning  string  `mapstructure:"reasoning"`
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil || decoder.Decode(raw) != nil {
		return domain.Classification{}, false
	}

	category := domain.Category(strings.ToLower(strings.TrimSpace(out.Category)))
	if !category.Known() {
		return domain.Classification{}, false
	}
	if out.Confidence < 0.0 || out.Confidence > 1.0 {
		return domain.Classification{}, false
	}

	return domain.Classification{
		Category:   category,
		Confidence: out.Confidence,
		Reasoning:  out.Reasoning,
	}, true
}
