package buffer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bufkit/internal/format"
)

const pairTupleSchema = `{"type": "tuple", "values": [
	{"type": "u16"}, {"type": "string"}
]}`

const sortedTupleSchema = `{"type": "tuple", "sorted": true, "values": [
	{"type": "u16"}, {"type": "string", "size": 8}
]}`

// overwriteSlot rewrites the fixed-width payload a sorted tuple already
// allocated for the slot.
func overwriteSlot(t *testing.T, b *Buffer, c Cursor, payload []byte) {
	t.Helper()
	addr, err := c.ValueAddr(b.mem)
	require.NoError(t, err)
	require.NotZero(t, addr, "sorted tuples hold a payload for every value")
	require.NoError(t, b.mem.WriteAt(addr, payload))
}

// sortedPair builds a sorted (u16, string8) tuple buffer holding (n, s).
func sortedPair(t *testing.T, n uint16, s string) *Buffer {
	t.Helper()
	b := New(mustSchema(t, sortedTupleSchema), Addr16)

	c, _, err := b.TupleSelect(b.Root(), 0, true)
	require.NoError(t, err)
	num := make([]byte, 2)
	format.PutU16(num, 0, n)
	overwriteSlot(t, b, c, num)

	c, _, err = b.TupleSelect(b.Root(), 1, true)
	require.NoError(t, err)
	str := bytes.Repeat([]byte{' '}, 8)
	copy(str, s)
	overwriteSlot(t, b, c, str)
	return b
}

func TestTupleSelectBounds(t *testing.T) {
	b := New(mustSchema(t, pairTupleSchema), Addr16)

	_, _, err := b.TupleSelect(b.Root(), 2, true)
	require.ErrorIs(t, err, ErrBadIndex)
	_, _, err = b.TupleSelect(b.Root(), -1, true)
	require.ErrorIs(t, err, ErrBadIndex)

	_, ok, err := b.TupleSelect(b.Root(), 0, false)
	require.NoError(t, err)
	assert.False(t, ok, "nothing resolves before the first write")
}

func TestTupleDeleteUnsorted(t *testing.T) {
	b := New(mustSchema(t, pairTupleSchema), Addr16)
	c, _, err := b.TupleSelect(b.Root(), 0, true)
	require.NoError(t, err)
	writeScalar(t, b, c, []byte{0, 3})

	ok, err := b.TupleDelete(b.Root(), 0)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = b.TupleDelete(b.Root(), 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSortedTupleMaterializesEagerly(t *testing.T) {
	b := New(mustSchema(t, sortedTupleSchema), Addr16)

	before := b.Len()
	_, _, err := b.TupleSelect(b.Root(), 1, true)
	require.NoError(t, err)

	// One vtable plus both default payloads, in one shot.
	want := PtrVtable.Size(Addr16) + 2 + 8
	assert.Equal(t, want, b.Len()-before)

	// Every value reads present even though none was explicitly set.
	for i := 0; i < 2; i++ {
		c, ok, err := b.TupleSelect(b.Root(), i, false)
		require.NoError(t, err)
		require.True(t, ok)
		addr, err := c.ValueAddr(b.mem)
		require.NoError(t, err)
		assert.NotZero(t, addr)
	}
}

func TestSortedTupleLengthIndependentOfSetOrder(t *testing.T) {
	forward := sortedPair(t, 1, "apple")

	backward := New(mustSchema(t, sortedTupleSchema), Addr16)
	c, _, err := backward.TupleSelect(backward.Root(), 1, true)
	require.NoError(t, err)
	str := bytes.Repeat([]byte{' '}, 8)
	copy(str, "apple")
	overwriteSlot(t, backward, c, str)
	c, _, err = backward.TupleSelect(backward.Root(), 0, true)
	require.NoError(t, err)
	overwriteSlot(t, backward, c, []byte{0, 1})

	assert.Equal(t, forward.Len(), backward.Len())
	assert.Equal(t, forward.Bytes(), backward.Bytes(),
		"sorted buffers of one schema are byte-identical regardless of write order")
}

func TestSortedTupleByteOrderMatchesValueOrder(t *testing.T) {
	b1 := sortedPair(t, 1, "apple")
	b2 := sortedPair(t, 1, "banana")
	b3 := sortedPair(t, 2, "aardvark")

	assert.Negative(t, bytes.Compare(b1.Bytes(), b2.Bytes()))
	assert.Negative(t, bytes.Compare(b2.Bytes(), b3.Bytes()))
}

func TestSortedTupleRejectsDelete(t *testing.T) {
	b := sortedPair(t, 1, "x")
	_, err := b.TupleDelete(b.Root(), 0)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}
