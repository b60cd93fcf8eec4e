package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const byteListSchema = `{"type": "list", "of": {"type": "bytes"}}`

func listIndexes(t *testing.T, b *Buffer, cur Cursor, withEmpty bool) ([]uint16, []bool) {
	t.Helper()
	it, err := b.ListIter(cur, withEmpty)
	require.NoError(t, err)
	var idxs []uint16
	var present []bool
	for {
		e, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			return idxs, present
		}
		idxs = append(idxs, e.Index)
		present = append(present, e.Present)
	}
}

func TestListSelectKeepsAscendingOrder(t *testing.T) {
	b := New(mustSchema(t, byteListSchema), Addr16)

	// Out-of-order inserts: append, then prepend, then interior splice.
	for _, idx := range []uint16{5, 20, 12} {
		_, _, err := b.ListSelect(b.Root(), idx, true)
		require.NoError(t, err)
	}

	idxs, _ := listIndexes(t, b, b.Root(), false)
	assert.Equal(t, []uint16{5, 12, 20}, idxs, "the chain walks in ascending index order")
}

func TestListSelectResolvesExistingItem(t *testing.T) {
	b := New(mustSchema(t, byteListSchema), Addr16)
	c1, _, err := b.ListSelect(b.Root(), 3, true)
	require.NoError(t, err)

	c2, ok, err := b.ListSelect(b.Root(), 3, true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, c1.Offset(), c2.Offset())

	_, ok, err = b.ListSelect(b.Root(), 4, false)
	require.NoError(t, err)
	assert.False(t, ok, "a gap index resolves to nothing without create")
}

func TestListSparseIndexes(t *testing.T) {
	b := New(mustSchema(t, byteListSchema), Addr16)
	for _, idx := range []uint16{2, 100} {
		c, _, err := b.ListSelect(b.Root(), idx, true)
		require.NoError(t, err)
		writeScalar(t, b, c, []byte{0, 1, byte(idx)})
	}

	idxs, _ := listIndexes(t, b, b.Root(), false)
	assert.Equal(t, []uint16{2, 100}, idxs, "only set indices are materialized")
}

func TestListIterWithEmpty(t *testing.T) {
	b := New(mustSchema(t, byteListSchema), Addr16)
	for _, idx := range []uint16{1, 4} {
		_, _, err := b.ListSelect(b.Root(), idx, true)
		require.NoError(t, err)
	}

	idxs, present := listIndexes(t, b, b.Root(), true)
	assert.Equal(t, []uint16{0, 1, 2, 3, 4}, idxs,
		"include-empty mode yields every index from zero through the tail")
	assert.Equal(t, []bool{false, true, false, false, true}, present)
}

func TestListPush(t *testing.T) {
	b := New(mustSchema(t, byteListSchema), Addr16)

	_, idx, err := b.ListPush(b.Root())
	require.NoError(t, err)
	assert.Equal(t, uint16(0), idx, "push on an empty list starts at index 0")

	_, _, err = b.ListSelect(b.Root(), 9, true)
	require.NoError(t, err)
	_, idx, err = b.ListPush(b.Root())
	require.NoError(t, err)
	assert.Equal(t, uint16(10), idx, "push appends one past the tail")
}

func TestListPushIndexExhaustion(t *testing.T) {
	b := New(mustSchema(t, byteListSchema), Addr16)
	_, _, err := b.ListSelect(b.Root(), 0xFFFF, true)
	require.NoError(t, err)

	_, _, err = b.ListPush(b.Root())
	require.ErrorIs(t, err, ErrOutOfSpace)
}

func TestListDelete(t *testing.T) {
	b := New(mustSchema(t, byteListSchema), Addr16)
	for _, idx := range []uint16{1, 2, 3} {
		_, _, err := b.ListSelect(b.Root(), idx, true)
		require.NoError(t, err)
	}

	ok, err := b.ListDelete(b.Root(), 2)
	require.NoError(t, err)
	require.True(t, ok)
	idxs, _ := listIndexes(t, b, b.Root(), false)
	assert.Equal(t, []uint16{1, 3}, idxs)

	// Deleting the tail pulls the tail pointer back, so pushes continue
	// from the surviving item.
	ok, err = b.ListDelete(b.Root(), 3)
	require.NoError(t, err)
	require.True(t, ok)
	_, idx, err := b.ListPush(b.Root())
	require.NoError(t, err)
	assert.Equal(t, uint16(2), idx)

	ok, err = b.ListDelete(b.Root(), 7)
	require.NoError(t, err)
	assert.False(t, ok, "deleting a gap index reports false")
}

func TestListDeleteHead(t *testing.T) {
	b := New(mustSchema(t, byteListSchema), Addr16)
	for _, idx := range []uint16{0, 1} {
		_, _, err := b.ListSelect(b.Root(), idx, true)
		require.NoError(t, err)
	}

	ok, err := b.ListDelete(b.Root(), 0)
	require.NoError(t, err)
	require.True(t, ok)
	idxs, _ := listIndexes(t, b, b.Root(), false)
	assert.Equal(t, []uint16{1}, idxs)

	ok, err = b.ListDelete(b.Root(), 1)
	require.NoError(t, err)
	require.True(t, ok)
	idxs, _ = listIndexes(t, b, b.Root(), false)
	assert.Empty(t, idxs, "the list empties out and iteration ends immediately")
}
