package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newTestCollection(t *testing.T) *Collection[record] {
	t.Helper()
	return NewCollection(NewMemoryStore(), "records", func(r record) int64 { return r.ID })
}

func TestCollection_AllEmpty(t *testing.T) {
	c := newTestCollection(t)

	records, err := c.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestCollection_AppendPreservesOrder(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	require.NoError(t, c.Append(ctx, record{ID: 3, Name: "c"}))
	require.NoError(t, c.Append(ctx, record{ID: 1, Name: "a"}))
	require.NoError(t, c.Append(ctx, record{ID: 2, Name: "b"}))

	records, err := c.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{records[0].ID, records[1].ID, records[2].ID})
}

func TestCollection_ReplaceByID(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	require.NoError(t, c.Append(ctx, record{ID: 1, Name: "a"}))
	require.NoError(t, c.Append(ctx, record{ID: 2, Name: "b"}))

	require.NoError(t, c.ReplaceByID(ctx, 2, record{ID: 2, Name: "updated"}))

	records, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "updated", records[1].Name)

	err = c.ReplaceByID(ctx, 99, record{ID: 99})
	assert.True(t, errors.Is(err, ErrRecordNotFound))
}

func TestCollection_Upsert(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	require.NoError(t, c.Upsert(ctx, 1, record{ID: 1, Name: "a"}))
	require.NoError(t, c.Upsert(ctx, 1, record{ID: 1, Name: "a2"}))
	require.NoError(t, c.Upsert(ctx, 2, record{ID: 2, Name: "b"}))

	records, err := c.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a2", records[0].Name)
}

func TestCollection_RemoveByID(t *testing.T) {
	c := newTestCollection(t)
	ctx := context.Background()

	require.NoError(t, c.Append(ctx, record{ID: 1, Name: "a"}))
	require.NoError(t, c.Append(ctx, record{ID: 2, Name: "b"}))

	removed, err := c.RemoveByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	records, err := c.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(2), records[0].ID)

	// Absent ID is not an error, just a no-op.
	removed, err = c.RemoveByID(ctx, 42)
	require.NoError(t, err)
	assert.False(t, removed)
}
