package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	store, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreLoadAbsentCollection(t *testing.T) {
	store := newTestStore(t)

	payload, err := store.Load(context.Background(), "users")
	require.NoError(t, err)
	assert.Nil(t, payload, "an unwritten collection yields nil, not an error")
}

func TestStoreSaveReplacesPayload(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "users", []byte(`[{"id":1}]`)))
	require.NoError(t, store.Save(ctx, "users", []byte(`[{"id":1},{"id":2}]`)))

	payload, err := store.Load(ctx, "users")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1},{"id":2}]`, string(payload))
}

func TestStoreCollections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "users", []byte(`[]`)))
	require.NoError(t, store.Save(ctx, "orders", []byte(`[]`)))

	names, err := store.Collections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders", "users"}, names)
}

func TestStoreClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "orders", []byte(`[{"id":1}]`)))
	require.NoError(t, store.Clear(ctx, "orders"))

	payload, err := store.Load(ctx, "orders")
	require.NoError(t, err)
	assert.Nil(t, payload)

	// Clearing an absent collection is a no-op.
	require.NoError(t, store.Clear(ctx, "orders"))
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := New(ctx, DefaultConfig(path), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "users", []byte(`[{"id":42}]`)))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, DefaultConfig(path), zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	payload, err := reopened.Load(ctx, "users")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":42}]`, string(payload))
}
