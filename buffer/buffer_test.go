package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bufkit/internal/format"
	"github.com/joshuapare/bufkit/schema"
)

func mustSchema(t *testing.T, doc string) *schema.Node {
	t.Helper()
	sch, err := schema.Parse([]byte(doc))
	require.NoError(t, err)
	return sch
}

// writeScalar allocates payload and points the cursor at it, standing in
// for the codec layer these tests do not depend on.
func writeScalar(t *testing.T, b *Buffer, c Cursor, payload []byte) {
	t.Helper()
	addr, err := b.mem.Malloc(payload)
	require.NoError(t, err)
	require.NoError(t, c.SetValueAddr(b.mem, addr))
}

func readScalar(t *testing.T, b *Buffer, c Cursor, n int) []byte {
	t.Helper()
	addr, err := c.ValueAddr(b.mem)
	require.NoError(t, err)
	payload, err := b.mem.Read(addr, n)
	require.NoError(t, err)
	return payload
}

func TestNewBufferHeader(t *testing.T) {
	sch := mustSchema(t, `{"type": "u32"}`)

	b16 := New(sch, Addr16)
	raw := b16.Bytes()
	require.Len(t, raw, 4)
	assert.Equal(t, byte(format.ProtocolVersion), raw[format.VersionOffset])
	assert.Equal(t, byte(format.AddrFlag16), raw[format.AddrFlagOffset])
	assert.Equal(t, []byte{0, 0}, raw[format.RootPtrOffset:], "root pointer starts absent")

	b32 := New(sch, Addr32)
	require.Len(t, b32.Bytes(), 6)
	assert.Equal(t, byte(format.AddrFlag32), b32.Bytes()[format.AddrFlagOffset])
}

func TestOpenRoundTrip(t *testing.T) {
	sch := mustSchema(t, `{"type": "u32"}`)
	b := New(sch, Addr16)
	writeScalar(t, b, b.Root(), []byte{0, 0, 0, 42})

	reopened, err := Open(sch, b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, Addr16, reopened.Width(), "width comes from the header, not the caller")
	assert.Equal(t, []byte{0, 0, 0, 42}, readScalar(t, reopened, reopened.Root(), 4))

	// Open copies: mutating the reopened buffer leaves the source alone.
	writeScalar(t, reopened, reopened.Root(), []byte{0, 0, 0, 7})
	assert.Equal(t, []byte{0, 0, 0, 42}, readScalar(t, b, b.Root(), 4))
}

func TestOpenReadOnlySharesBytes(t *testing.T) {
	sch := mustSchema(t, `{"type": "u32"}`)
	b := New(sch, Addr16)
	writeScalar(t, b, b.Root(), []byte{0, 0, 0, 1})

	ro, err := OpenReadOnly(sch, b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 1}, readScalar(t, ro, ro.Root(), 4))

	_, err = ro.mem.Malloc([]byte{1})
	require.ErrorIs(t, err, ErrReadOnly)
}

func TestOpenBorrowedHeadroom(t *testing.T) {
	sch := mustSchema(t, `{"type": "u32"}`)
	b := New(sch, Addr16)
	writeScalar(t, b, b.Root(), []byte{0, 0, 0, 9})

	data := make([]byte, b.Len()+16)
	copy(data, b.Bytes())
	bw, err := OpenBorrowed(sch, data, b.Len())
	require.NoError(t, err)

	writeScalar(t, bw, bw.Root(), []byte{0, 0, 0, 8})
	assert.Greater(t, bw.Len(), b.Len(), "new payload grew into the headroom")
	assert.Equal(t, []byte{0, 0, 0, 8}, readScalar(t, bw, bw.Root(), 4))

	_, err = OpenBorrowed(sch, data, len(data)+1)
	require.ErrorIs(t, err, ErrBadHeader)
}

func TestOpenRejectsBadHeader(t *testing.T) {
	sch := mustSchema(t, `{"type": "u32"}`)

	cases := map[string][]byte{
		"empty":          nil,
		"short":          {format.ProtocolVersion},
		"bad version":    {99, format.AddrFlag16, 0, 0},
		"bad flag":       {format.ProtocolVersion, 7, 0, 0},
		"truncated root": {format.ProtocolVersion, format.AddrFlag32, 0, 0},
	}
	for name, data := range cases {
		_, err := Open(sch, data)
		require.ErrorIs(t, err, ErrBadHeader, name)
	}
}
