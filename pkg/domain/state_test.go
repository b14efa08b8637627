package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsistent(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{
			"responder outcome",
			State{Response: "answer", NodeExecuted: NodeRAGResponder, RequiresEscalation: false},
			true,
		},
		{
			"escalation outcome",
			State{Response: "handoff", NodeExecuted: NodeEscalation, RequiresEscalation: true},
			true,
		},
		{
			"empty response",
			State{NodeExecuted: NodeEscalation, RequiresEscalation: true},
			false,
		},
		{
			"flag disagrees with node",
			State{Response: "answer", NodeExecuted: NodeRAGResponder, RequiresEscalation: true},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Consistent())
		})
	}
}

func TestCategoryAnswerable(t *testing.T) {
	assert.True(t, CategoryProducts.Answerable())
	assert.True(t, CategoryReturns.Answerable())
	assert.True(t, CategoryGeneral.Answerable())
	assert.False(t, CategoryUnhandled.Answerable())
	assert.False(t, Category("billing").Answerable())
}

func TestUnhandled(t *testing.T) {
	cls := Unhandled("backend down")
	assert.Equal(t, CategoryUnhandled, cls.Category)
	assert.Equal(t, 0.0, cls.Confidence)
	assert.Equal(t, "backend down", cls.Reasoning)
}
