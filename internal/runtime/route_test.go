package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/canopy/pkg/domain"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		category   domain.Category
		confidence float64
		want       Route
	}{
		{"handled above threshold", domain.CategoryProducts, 0.95, RouteRAG},
		{"handled exactly at threshold", domain.CategoryReturns, 0.7, RouteRAG},
		{"handled just below threshold", domain.CategoryGeneral, 0.699, RouteEscalate},
		{"handled at zero confidence", domain.CategoryProducts, 0.0, RouteEscalate},
		{"unhandled at full confidence", domain.CategoryUnhandled, 1.0, RouteEscalate},
		{"unhandled at zero confidence", domain.CategoryUnhandled, 0.0, RouteEscalate},
		{"unknown label escalates", domain.Category("billing"), 0.99, RouteEscalate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, reason := Decide(tt.category, tt.confidence, 0.7)
			assert.Equal(t, tt.want, route)
			assert.NotEmpty(t, reason)
		})
	}
}

// Raising the threshold can only move queries from the RAG branch to the
// escalation branch, never the other way around.
func TestDecideThresholdMonotonic(t *testing.T) {
	confidences := []float64{0.0, 0.3, 0.5, 0.69, 0.7, 0.71, 0.9, 1.0}
	thresholds := []float64{0.0, 0.5, 0.7, 0.9, 1.0}

	for _, c := range confidences {
		prev := RouteRAG
		for _, th := range thresholds {
			route, _ := Decide(domain.CategoryProducts, c, th)
			if prev == RouteEscalate {
				assert.Equal(t, RouteEscalate, route,
					"confidence %.2f flipped back to RAG at threshold %.2f", c, th)
			}
			prev = route
		}
	}
}

func TestDecideUnhandledIgnoresThreshold(t *testing.T) {
	for _, th := range []float64{0.0, 0.5, 1.0} {
		route, _ := Decide(domain.CategoryUnhandled, 1.0, th)
		assert.Equal(t, RouteEscalate, route)
	}
}
