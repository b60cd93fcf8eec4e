package buffer

import (
	"fmt"

	"github.com/joshuapare/bufkit/internal/buf"
	"github.com/joshuapare/bufkit/internal/format"
)

// AddrWidth selects how wide addresses are on the wire. The width is fixed
// per buffer and recorded in its header; it also caps the arena size.
type AddrWidth uint8

const (
	// Addr32 uses 4-byte addresses and a 4 GiB arena ceiling.
	Addr32 AddrWidth = format.AddrFlag32
	// Addr16 uses 2-byte addresses and a 64 KiB arena ceiling.
	Addr16 AddrWidth = format.AddrFlag16
)

// Bytes returns the encoded width of one address.
func (w AddrWidth) Bytes() int {
	if w == Addr16 {
		return 2
	}
	return 4
}

// Max returns the arena ceiling for the width. An allocation whose end
// would reach the ceiling fails with ErrOutOfSpace.
func (w AddrWidth) Max() int {
	if w == Addr16 {
		return format.MaxSize16
	}
	return format.MaxSize32
}

type memMode uint8

const (
	// modeOwned grows its own backing slice on allocation.
	modeOwned memMode = iota
	// modeBorrowed mutates a caller-owned slice in place; the logical length
	// is tracked separately so the physical slice can carry growth headroom.
	modeBorrowed
	// modeReadOnly rejects every mutation with ErrReadOnly.
	modeReadOnly
)

// Memory is the arena backing one buffer: a byte slice plus a bump pointer.
// Allocation only ever appends; individual values are never freed, and the
// only reclamation mechanism is compaction into a fresh arena.
//
// Memory is single-writer state. Nothing here is synchronized.
type Memory struct {
	buf    []byte
	length int
	max    int
	mode   memMode
	width  AddrWidth
}

// newMemory creates an owned, growable arena with an initialized header and
// a zero (absent) root pointer.
func newMemory(width AddrWidth) *Memory {
	hdr := format.RootHeaderSize(width.Bytes())
	buf := make([]byte, hdr, 64)
	buf[format.VersionOffset] = format.ProtocolVersion
	buf[format.AddrFlagOffset] = byte(width)
	return &Memory{
		buf:    buf,
		length: hdr,
		max:    width.Max(),
		mode:   modeOwned,
		width:  width,
	}
}

// borrowMemory wraps a caller-owned slice without copying. length is the
// logical end of the arena; bytes past it (up to len(data)) are headroom for
// future allocations. readOnly arenas reject all mutation.
func borrowMemory(data []byte, length int, width AddrWidth, readOnly bool) *Memory {
	mode := modeBorrowed
	if readOnly {
		mode = modeReadOnly
	}
	return &Memory{
		buf:    data,
		length: length,
		max:    width.Max(),
		mode:   mode,
		width:  width,
	}
}

// Width returns the buffer's address width.
func (m *Memory) Width() AddrWidth { return m.width }

// Length returns the logical length of the arena: the offset the next
// allocation would return.
func (m *Memory) Length() int { return m.length }

// MaxSize returns the current allocation ceiling.
func (m *Memory) MaxSize() int { return m.max }

// SetMaxSize clamps the allocation ceiling. The ceiling can never exceed
// what the address width can express.
func (m *Memory) SetMaxSize(n int) {
	if n > m.width.Max() {
		n = m.width.Max()
	}
	m.max = n
}

// Writable reports whether the arena accepts mutation.
func (m *Memory) Writable() bool { return m.mode != modeReadOnly }

// Bytes returns the live arena content (header included, headroom excluded).
// The slice aliases the arena; it is invalidated by the next allocation.
func (m *Memory) Bytes() []byte { return m.buf[:m.length] }

// Malloc appends b to the arena and returns the offset it was placed at.
// The returned offset is always the logical length before the append, so it
// can never be 0: offset 0 is occupied by the header and reserved as the
// absent sentinel.
func (m *Memory) Malloc(b []byte) (uint32, error) {
	if m.mode == modeReadOnly {
		return 0, ErrReadOnly
	}
	if m.length+len(b) >= m.max {
		return 0, ErrOutOfSpace
	}
	off := m.length
	switch m.mode {
	case modeOwned:
		m.buf = append(m.buf, b...)
	case modeBorrowed:
		if m.length+len(b) > len(m.buf) {
			return 0, ErrOutOfSpace
		}
		copy(m.buf[m.length:], b)
	}
	m.length += len(b)
	return uint32(off), nil
}

// MallocZero allocates n zeroed bytes.
func (m *Memory) MallocZero(n int) (uint32, error) {
	return m.Malloc(make([]byte, n))
}

// Read returns n bytes starting at off, borrowed from the arena. Address 0
// is the absent sentinel and reads as (nil, nil); reading past the logical
// length is a corruption error, never an out-of-range access.
func (m *Memory) Read(off uint32, n int) ([]byte, error) {
	if off == 0 {
		return nil, nil
	}
	end, ok := buf.Fits(m.length, int(off), n)
	if !ok {
		return nil, fmt.Errorf("%w: read %d+%d beyond length %d", ErrCorrupt, off, n, m.length)
	}
	return m.buf[off:end], nil
}

// WriteAt overwrites len(b) bytes at off in place. Only existing bytes may
// be overwritten; growing the arena goes through Malloc.
func (m *Memory) WriteAt(off uint32, b []byte) error {
	if m.mode == modeReadOnly {
		return ErrReadOnly
	}
	end, ok := buf.Fits(m.length, int(off), len(b))
	if off == 0 || !ok {
		return fmt.Errorf("%w: write %d+%d beyond length %d", ErrCorrupt, off, len(b), m.length)
	}
	copy(m.buf[off:end], b)
	return nil
}

// readAddr reads one address-width field at off.
func (m *Memory) readAddr(off uint32) (uint32, error) {
	w := m.width.Bytes()
	if _, ok := buf.Fits(m.length, int(off), w); !ok {
		return 0, fmt.Errorf("%w: address field %d+%d beyond length %d", ErrCorrupt, off, w, m.length)
	}
	return format.ReadAddr(m.buf, int(off), w), nil
}

// putAddr writes one address-width field at off.
func (m *Memory) putAddr(off uint32, addr uint32) error {
	if m.mode == modeReadOnly {
		return ErrReadOnly
	}
	w := m.width.Bytes()
	if _, ok := buf.Fits(m.length, int(off), w); !ok {
		return fmt.Errorf("%w: address field %d+%d beyond length %d", ErrCorrupt, off, w, m.length)
	}
	format.PutAddr(m.buf, int(off), w, addr)
	return nil
}

// readU16 reads a 2-byte field at off (list item indices).
func (m *Memory) readU16(off uint32) (uint16, error) {
	if _, ok := buf.Fits(m.length, int(off), 2); !ok {
		return 0, fmt.Errorf("%w: u16 field %d+2 beyond length %d", ErrCorrupt, off, m.length)
	}
	return format.ReadU16(m.buf, int(off)), nil
}

// putU16 writes a 2-byte field at off.
func (m *Memory) putU16(off uint32, v uint16) error {
	if m.mode == modeReadOnly {
		return ErrReadOnly
	}
	if _, ok := buf.Fits(m.length, int(off), 2); !ok {
		return fmt.Errorf("%w: u16 field %d+2 beyond length %d", ErrCorrupt, off, m.length)
	}
	format.PutU16(m.buf, int(off), v)
	return nil
}
