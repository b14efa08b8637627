package runtime

import (
	"fmt"

	"github.com/aretw0/canopy/pkg/domain"
)

// Route is the outcome of the routing gate.
type Route string

const (
	RouteRAG      Route = "rag"
	RouteEscalate Route = "escalate"
)

// Decide applies the routing policy: the RAG branch requires a handled
// category AND confidence at or above the threshold (inclusive bound).
// Every (category, confidence) pair maps to exactly one route; there is no
// fallthrough. The returned reason is for logs and events only.
func Decide(category domain.Category, confidence, threshold float64) (Route, string) {
	if category == domain.CategoryUnhandled || !category.Known() {
		return RouteEscalate, fmt.Sprintf("category %q is not answerable", category)
	}
	if confidence < threshold {
		return RouteEscalate, fmt.Sprintf("confidence %.2f below threshold %.2f", confidence, threshold)
	}
	return RouteRAG, fmt.Sprintf("category %q at confidence %.2f", category, confidence)
}
