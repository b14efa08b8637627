package ports

import (
	"context"

	"github.com/aretw0/canopy/pkg/domain"
)

// TranscriptStore persists completed result records keyed by session ID.
// The workflow core never reads transcripts back; they exist for the
// transport layer (history endpoints) and for operators.
type TranscriptStore interface {
	// Append adds a completed record to the session's transcript.
	Append(ctx context.Context, sessionID string, rec *domain.Record) error

	// History returns the session's records in append order.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	History(ctx context.Context, sessionID string) ([]*domain.Record, error)

	// Delete removes a session's transcript.
	Delete(ctx context.Context, sessionID string) error

	// Sessions lists session IDs with at least one record.
	Sessions(ctx context.Context) ([]string, error)
}
