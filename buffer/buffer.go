package buffer

import (
	"fmt"

	"github.com/joshuapare/bufkit/internal/format"

	"github.com/joshuapare/bufkit/schema"
)

// Buffer pairs one arena with the shared schema describing its content.
// The schema is read-only and shared by every buffer of one type; the arena
// is exclusively owned by this buffer.
type Buffer struct {
	mem *Memory
	sch *schema.Node
}

// New creates an empty buffer at the given address width. The root value is
// absent until the first write.
func New(sch *schema.Node, width AddrWidth) *Buffer {
	return &Buffer{mem: newMemory(width), sch: sch}
}

// Open copies data into an owned, growable arena. Use it when the buffer
// will be mutated and the caller's slice must stay untouched.
func Open(sch *schema.Node, data []byte) (*Buffer, error) {
	width, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m := &Memory{
		buf:    buf,
		length: len(buf),
		max:    width.Max(),
		mode:   modeOwned,
		width:  width,
	}
	return &Buffer{mem: m, sch: sch}, nil
}

// OpenReadOnly wraps data zero-copy as an immutable buffer. Every mutation
// fails with ErrReadOnly.
func OpenReadOnly(sch *schema.Node, data []byte) (*Buffer, error) {
	width, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	return &Buffer{mem: borrowMemory(data, len(data), width, true), sch: sch}, nil
}

// OpenBorrowed wraps data zero-copy as a mutable buffer whose logical length
// is tracked separately from the physical slice. Bytes between length and
// len(data) are headroom: the arena can grow into them without reallocating,
// and the caller reads the final length back via Len after mutating.
func OpenBorrowed(sch *schema.Node, data []byte, length int) (*Buffer, error) {
	if length > len(data) {
		return nil, fmt.Errorf("%w: logical length %d exceeds slice length %d",
			ErrBadHeader, length, len(data))
	}
	width, err := parseHeader(data[:length])
	if err != nil {
		return nil, err
	}
	return &Buffer{mem: borrowMemory(data, length, width, false), sch: sch}, nil
}

// parseHeader validates the version byte and address-size flag.
func parseHeader(data []byte) (AddrWidth, error) {
	if len(data) < format.RootPtrOffset {
		return 0, fmt.Errorf("%w: %d bytes", ErrBadHeader, len(data))
	}
	if v := data[format.VersionOffset]; v != format.ProtocolVersion {
		return 0, fmt.Errorf("%w: unsupported protocol version %d", ErrBadHeader, v)
	}
	var width AddrWidth
	switch data[format.AddrFlagOffset] {
	case format.AddrFlag16:
		width = Addr16
	case format.AddrFlag32:
		width = Addr32
	default:
		return 0, fmt.Errorf("%w: unknown address-size flag %d", ErrBadHeader, data[format.AddrFlagOffset])
	}
	if len(data) < format.RootHeaderSize(width.Bytes()) {
		return 0, fmt.Errorf("%w: header truncated at %d bytes", ErrBadHeader, len(data))
	}
	return width, nil
}

// Root returns a cursor at the buffer's root pointer. The root pointer
// lives in the header and has the scalar shape.
func (b *Buffer) Root() Cursor {
	return Cursor{node: b.sch, off: format.RootPtrOffset}
}

// Schema returns the shared schema tree.
func (b *Buffer) Schema() *schema.Node { return b.sch }

// Memory returns the arena backing this buffer.
func (b *Buffer) Memory() *Memory { return b.mem }

// Bytes returns the encoded buffer, borrowed from the arena. The slice is
// invalidated by the next mutation.
func (b *Buffer) Bytes() []byte { return b.mem.Bytes() }

// Len returns the buffer's logical length in bytes.
func (b *Buffer) Len() int { return b.mem.Length() }

// Width returns the buffer's address width.
func (b *Buffer) Width() AddrWidth { return b.mem.Width() }
