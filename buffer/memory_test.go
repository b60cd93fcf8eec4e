package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bufkit/internal/format"
)

func TestMallocReturnsSequentialOffsets(t *testing.T) {
	m := newMemory(Addr16)
	hdr := format.RootHeaderSize(2)

	off1, err := m.Malloc([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, uint32(hdr), off1, "first allocation lands right after the header")

	off2, err := m.Malloc([]byte{4, 5})
	require.NoError(t, err)
	assert.Equal(t, off1+3, off2)
	assert.Equal(t, hdr+5, m.Length())
}

func TestMallocNeverReturnsZero(t *testing.T) {
	m := newMemory(Addr16)
	off, err := m.Malloc([]byte{0xAA})
	require.NoError(t, err)
	assert.NotZero(t, off, "offset 0 is the absent sentinel, the header occupies it")
}

func TestReadZeroIsAbsent(t *testing.T) {
	m := newMemory(Addr16)
	b, err := m.Read(0, 4)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestReadPastLengthIsCorrupt(t *testing.T) {
	m := newMemory(Addr16)
	off, err := m.Malloc([]byte{1, 2})
	require.NoError(t, err)

	_, err = m.Read(off, 3)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestWriteAtOverwritesInPlace(t *testing.T) {
	m := newMemory(Addr16)
	off, err := m.Malloc([]byte{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, m.WriteAt(off, []byte{9, 8, 7}))
	b, err := m.Read(off, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8, 7}, b)

	err = m.WriteAt(off, []byte{1, 2, 3, 4})
	require.ErrorIs(t, err, ErrCorrupt, "WriteAt may not grow the arena")
}

func TestMallocOutOfSpaceAtWidthCeiling(t *testing.T) {
	m := newMemory(Addr16)

	marker, err := m.Malloc([]byte{0xDE, 0xAD})
	require.NoError(t, err)

	// Fill to exactly one byte under the 16-bit ceiling. An allocation whose
	// end would reach 65536 must fail, so the largest reachable length is
	// 65535.
	_, err = m.Malloc(make([]byte, format.MaxSize16-1-m.Length()))
	require.NoError(t, err)
	require.Equal(t, format.MaxSize16-1, m.Length())

	_, err = m.Malloc([]byte{0})
	require.ErrorIs(t, err, ErrOutOfSpace)
	assert.Equal(t, format.MaxSize16-1, m.Length(), "failed allocation must not move the bump pointer")

	b, err := m.Read(marker, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD}, b, "content written before the failure stays intact")
}

func TestMallocZeroLengthAllocationAtCeiling(t *testing.T) {
	m := newMemory(Addr16)
	_, err := m.Malloc(make([]byte, format.MaxSize16-1-m.Length()))
	require.NoError(t, err)

	// length+0 >= max once length hits the ceiling; just under it, an empty
	// allocation still fits.
	_, err = m.Malloc(nil)
	require.NoError(t, err)
}

func TestReadOnlyRejectsMutation(t *testing.T) {
	src := newMemory(Addr16)
	off, err := src.Malloc([]byte{1, 2})
	require.NoError(t, err)

	m := borrowMemory(src.Bytes(), src.Length(), Addr16, true)
	_, err = m.Malloc([]byte{3})
	require.ErrorIs(t, err, ErrReadOnly)
	require.ErrorIs(t, m.WriteAt(off, []byte{9}), ErrReadOnly)
	require.ErrorIs(t, m.putAddr(off, 1), ErrReadOnly)
	require.ErrorIs(t, m.putU16(off, 1), ErrReadOnly)

	b, err := m.Read(off, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b, "reads still work on a read-only arena")
}

func TestBorrowedMemoryGrowsIntoHeadroom(t *testing.T) {
	src := newMemory(Addr16)
	data := make([]byte, src.Length()+8)
	copy(data, src.Bytes())

	m := borrowMemory(data, src.Length(), Addr16, false)
	off, err := m.Malloc([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, uint32(src.Length()), off)

	_, err = m.Malloc([]byte{9})
	require.ErrorIs(t, err, ErrOutOfSpace, "borrowed arenas cannot grow past the slice")
}

func TestSetMaxSizeClampsToWidth(t *testing.T) {
	m := newMemory(Addr16)
	m.SetMaxSize(1 << 20)
	assert.Equal(t, format.MaxSize16, m.MaxSize())

	m.SetMaxSize(256)
	_, err := m.Malloc(make([]byte, 300))
	require.ErrorIs(t, err, ErrOutOfSpace)
}

func TestAddrFieldsRoundTrip(t *testing.T) {
	for _, w := range []AddrWidth{Addr16, Addr32} {
		m := newMemory(w)
		off, err := m.MallocZero(w.Bytes())
		require.NoError(t, err)

		require.NoError(t, m.putAddr(off, 0x1234))
		got, err := m.readAddr(off)
		require.NoError(t, err)
		assert.Equal(t, uint32(0x1234), got)
	}
}
