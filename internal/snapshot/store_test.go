package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, []byte(`{"date":"2026-08-31"}`)))
	raw, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"date":"2026-08-31"}`, string(raw))

	// Save overwrites the single blob
	require.NoError(t, store.Save(ctx, []byte(`{}`)))
	raw, _, _ = store.Load(ctx)
	assert.Equal(t, `{}`, string(raw))

	require.NoError(t, store.Clear(ctx))
	_, ok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
