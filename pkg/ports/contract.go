package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/canopy/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTranscriptStoreContract verifies that a TranscriptStore implementation
// adheres to the interface contract. Adapter test suites call this against
// their concrete store.
func RunTranscriptStoreContract(t *testing.T, store TranscriptStore) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	rec := func(response string) *domain.Record {
		return &domain.Record{
			Response:     response,
			Category:     domain.CategoryProducts,
			Confidence:   0.92,
			NodeExecuted: domain.NodeRAGResponder,
			Timestamp:    time.Now().UTC(),
			SessionID:    sessionID,
		}
	}

	t.Run("Append and History", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, sessionID, rec("first")))
		require.NoError(t, store.Append(ctx, sessionID, rec("second")))

		history, err := store.History(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "first", history[0].Response)
		assert.Equal(t, "second", history[1].Response)
		assert.Equal(t, domain.CategoryProducts, history[0].Category)
	})

	t.Run("History Non-Existent", func(t *testing.T) {
		_, err := store.History(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Sessions", func(t *testing.T) {
		sessions, err := store.Sessions(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, sessionID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, sessionID))

		_, err := store.History(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
