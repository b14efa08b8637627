package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter     EventType = "node_enter"
	EventNodeLeave     EventType = "node_leave"
	EventRouteDecision EventType = "route_decision"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// NodeEvent represents entry into or exit from a pipeline node
// (classifier, rag_responder, escalation).
type NodeEvent struct {
	EventBase
	NodeID string `json:"node_id"`

	// Duration is set on node_leave events only.
	Duration time.Duration `json:"duration,omitempty"`
	IsError  bool          `json:"is_error,omitempty"`
}

// RouteEvent records the single routing decision of a run.
type RouteEvent struct {
	EventBase
	Route      string   `json:"route"` // "rag" or "escalate"
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason"`
}

// LifecycleHooks defines callbacks for engine observability.
// All hooks are optional; nil hooks are skipped. Hooks run inline on the
// request path and must be fast.
type LifecycleHooks struct {
	OnNodeEnter     func(context.Context, *NodeEvent)
	OnNodeLeave     func(context.Context, *NodeEvent)
	OnRouteDecision func(context.Context, *RouteEvent)
}
