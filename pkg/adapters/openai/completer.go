// Package openai implements the text completion port over the OpenAI
// chat completions API. Schema-constrained requests use the JSON-schema
// response format so classification output is validated server-side
// before Canopy re-validates it.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/canopy/pkg/ports"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Completer implements ports.Completer.
type Completer struct {
	client openai.Client
	model  shared.ChatModel
}

// NewCompleter creates the adapter. Extra request options (base URL,
// custom headers) are passed through to the client; tests use
// option.WithBaseURL against a stub server.
func NewCompleter(apiKey, model string, reqOpts ...option.RequestOption) (*Completer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("openai: model is required")
	}

	opts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, reqOpts...)
	return &Completer{
		client: openai.NewClient(opts...),
		model:  shared.ChatModel(model),
	}, nil
}

// Complete performs one chat completion call. With a schema the result is
// decoded into CompletionResult.Structured; without one the raw text is
// returned in CompletionResult.Text.
func (c *Completer) Complete(ctx context.Context, req ports.CompletionRequest) (ports.CompletionResult, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
	}

	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        req.Schema.Name,
					Description: openai.String(req.Schema.Description),
					Schema: map[string]any{
						"type":                 "object",
						"properties":           req.Schema.Properties,
						"required":             req.Schema.Required,
						"additionalProperties": false,
					},
					Strict: openai.Bool(true),
				},
			},
		}
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return ports.CompletionResult{}, fmt.Errorf("openai completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return ports.CompletionResult{}, fmt.Errorf("openai completion: no choices returned")
	}

	content := completion.Choices[0].Message.Content

	if req.Schema == nil {
		return ports.CompletionResult{Text: content}, nil
	}

	var structured map[string]any
	if err := json.Unmarshal([]byte(content), &structured); err != nil {
		return ports.CompletionResult{}, fmt.Errorf("openai completion: malformed structured output: %w", err)
	}
	return ports.CompletionResult{Structured: structured}, nil
}
