package canopy_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/pkg/ports"
)

// ExampleNew demonstrates the pipeline over custom port implementations.
// Production code would use the openai and bleve adapters instead; any
// Completer/Retriever pair works, which is what makes the engine testable
// without network access.
func ExampleNew() {
	// 1. A completion port. The classifier sends a schema-bearing request;
	// the responder sends a plain one.
	completer := ports.CompleterFunc(func(_ context.Context, req ports.CompletionRequest) (ports.CompletionResult, error) {
		if req.Schema != nil {
			return ports.CompletionResult{Structured: map[string]any{
				"category":   "products",
				"confidence": 0.93,
				"reasoning":  "asks about a product price",
			}}, nil
		}
		return ports.CompletionResult{Text: "The SmartWatch Pro X costs ₹15,999."}, nil
	})

	// 2. A retrieval port over whatever index you have.
	retriever := ports.RetrieverFunc(func(_ context.Context, _ string, _ int) ([]string, error) {
		return []string{"Product: SmartWatch Pro X. Price: ₹15,999."}, nil
	})

	// 3. Wire the engine and process a query.
	engine, err := canopy.New(completer, retriever)
	if err != nil {
		log.Fatal(err)
	}

	record, err := engine.Process(context.Background(), "How much is the SmartWatch Pro X?", "demo-session")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(record.Category)
	fmt.Println(record.NodeExecuted)
	fmt.Println(record.Response)
	// Output:
	// products
	// rag_responder
	// The SmartWatch Pro X costs ₹15,999.
}
