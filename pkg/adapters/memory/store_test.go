package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/canopy/pkg/adapters/memory"
	"github.com/aretw0/canopy/pkg/domain"
	"github.com/aretw0/canopy/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunTranscriptStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	rec := &domain.Record{
		Response:          "original",
		RetrievedPassages: []string{"p1"},
	}
	require.NoError(t, store.Append(ctx, "s1", rec))

	// Mutating the caller's record must not change stored history.
	rec.Response = "mutated"
	rec.RetrievedPassages[0] = "mutated"

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "original", history[0].Response)
	assert.Equal(t, "p1", history[0].RetrievedPassages[0])
}
