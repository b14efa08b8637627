package runtime

import (
	"context"
	"time"

	"github.com/aretw0/canopy/pkg/domain"
)

func (e *Engine) emitNodeEnter(ctx context.Context, nodeID string) {
	if e.hooks.OnNodeEnter == nil {
		return
	}
	e.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeEnter},
		NodeID:    nodeID,
	})
}

func (e *Engine) emitNodeLeave(ctx context.Context, nodeID string, duration time.Duration, isError bool) {
	if e.hooks.OnNodeLeave == nil {
		return
	}
	e.hooks.OnNodeLeave(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeLeave},
		NodeID:    nodeID,
		Duration:  duration,
		IsError:   isError,
	})
}

func (e *Engine) emitRouteDecision(ctx context.Context, route Route, reason string, state *domain.State) {
	if e.hooks.OnRouteDecision == nil {
		return
	}
	e.hooks.OnRouteDecision(ctx, &domain.RouteEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventRouteDecision},
		Route:      string(route),
		Category:   state.Category,
		Confidence: state.Confidence,
		Reason:     reason,
	})
}
