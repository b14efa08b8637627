package ports

import "context"

// SchemaDescriptor declares the structured output expected from a
// completion call. When present, the result must decode into the declared
// fields; implementations are expected to enforce the schema on their side
// where the backend supports it (e.g. JSON-schema response formats).
type SchemaDescriptor struct {
	// Name identifies the schema to the backend (required by some APIs).
	Name string

	// Description is a short hint for the model.
	Description string

	// Properties maps field names to JSON-schema fragments.
	Properties map[string]any

	// Required lists mandatory field names.
	Required []string
}

// CompletionRequest carries one prompt to the completion service.
type CompletionRequest struct {
	// System is the fixed instruction block.
	System string

	// Prompt is the user-facing content.
	Prompt string

	// Schema, when non-nil, requests structured output.
	Schema *SchemaDescriptor

	// Temperature in [0,2]; callers pick low values for classification.
	Temperature float64
}

// CompletionResult is the outcome of a completion call. Exactly one of
// Text or Structured is meaningful: Structured is populated when the
// request carried a schema, Text otherwise.
type CompletionResult struct {
	Text       string
	Structured map[string]any
}

// Completer is the text completion port. A failed call returns an error;
// callers apply their own absorption or degradation policy.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, req CompletionRequest) (CompletionResult, error)

func (f CompleterFunc) Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error) {
	return f(ctx, req)
}
