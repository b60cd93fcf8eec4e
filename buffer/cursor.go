package buffer

import (
	"github.com/joshuapare/bufkit/internal/format"

	"github.com/joshuapare/bufkit/schema"
)

// PtrKind is the byte-level record shape at a cursor's offset. The set is
// closed and fixed by the format, so dispatch is a plain switch rather than
// an interface.
type PtrKind uint8

const (
	// PtrScalar is a bare value-address. It is the shape for the root
	// pointer, for table and tuple vtable slots, and for any value whose
	// parent is not a linked collection.
	PtrScalar PtrKind = iota
	// PtrListItem is value-address + next-address + u16 index.
	PtrListItem
	// PtrMapItem is value-address + next-address + key-address.
	PtrMapItem
	// PtrVtable is four value-address slots + next-vtable-address. It is
	// internal to the table/tuple chain walk; cursors handed to callers for
	// table and tuple children point at individual slots (PtrScalar).
	PtrVtable
)

// Size returns the encoded record size for the kind at the given width.
func (k PtrKind) Size(w AddrWidth) int {
	a := w.Bytes()
	switch k {
	case PtrListItem:
		return 2*a + 2
	case PtrMapItem:
		return 3 * a
	case PtrVtable:
		return (format.VtableSlots + 1) * a
	default:
		return a
	}
}

// Cursor is an ephemeral view of one value location: the offset of its
// pointer record plus the schema of the value and of the parent collection
// that shaped the record. Cursors are cheap values, recomputed on every
// traversal step; never keep one across a mutation, since a write may move
// payloads and compaction replaces the arena outright.
type Cursor struct {
	node   *schema.Node
	parent *schema.Node
	off    uint32
}

// Node returns the schema of the value this cursor addresses.
func (c Cursor) Node() *schema.Node { return c.node }

// Offset returns the arena offset of the cursor's pointer record.
func (c Cursor) Offset() uint32 { return c.off }

// Valid reports whether the cursor addresses a real location.
func (c Cursor) Valid() bool { return c.node != nil && c.off != 0 }

// Kind returns the pointer record shape at this cursor, selected by the
// parent schema's collection kind.
func (c Cursor) Kind() PtrKind {
	if c.parent == nil {
		return PtrScalar
	}
	switch c.parent.Kind {
	case schema.Map:
		return PtrMapItem
	case schema.List:
		return PtrListItem
	default:
		// Table and tuple children sit in vtable slots, which are plain
		// address fields.
		return PtrScalar
	}
}

// ValueAddr reads the cursor's value-address field. 0 means absent.
func (c Cursor) ValueAddr(m *Memory) (uint32, error) {
	return m.readAddr(c.off)
}

// SetValueAddr writes the cursor's value-address field in place.
func (c Cursor) SetValueAddr(m *Memory, addr uint32) error {
	return m.putAddr(c.off, addr)
}

// NextAddr reads the next-record address. Only list items, map items and
// vtables carry one.
func (c Cursor) NextAddr(m *Memory) (uint32, error) {
	switch c.Kind() {
	case PtrListItem, PtrMapItem:
		return m.readAddr(c.off + uint32(m.width.Bytes()))
	default:
		return 0, ErrSchemaMismatch
	}
}

// SetNextAddr writes the next-record address.
func (c Cursor) SetNextAddr(m *Memory, addr uint32) error {
	switch c.Kind() {
	case PtrListItem, PtrMapItem:
		return m.putAddr(c.off+uint32(m.width.Bytes()), addr)
	default:
		return ErrSchemaMismatch
	}
}

// Index reads a list item's explicit index field.
func (c Cursor) Index(m *Memory) (uint16, error) {
	if c.Kind() != PtrListItem {
		return 0, ErrSchemaMismatch
	}
	return m.readU16(c.off + uint32(2*m.width.Bytes()))
}

// KeyAddr reads a map item's key address.
func (c Cursor) KeyAddr(m *Memory) (uint32, error) {
	if c.Kind() != PtrMapItem {
		return 0, ErrSchemaMismatch
	}
	return m.readAddr(c.off + uint32(2*m.width.Bytes()))
}

// Key reads a map item's key bytes, borrowed from the arena.
func (c Cursor) Key(m *Memory) ([]byte, error) {
	addr, err := c.KeyAddr(m)
	if err != nil {
		return nil, err
	}
	return readKey(m, addr)
}

// readKey reads a length-prefixed key at addr.
func readKey(m *Memory, addr uint32) ([]byte, error) {
	lb, err := m.Read(addr, 1)
	if err != nil || lb == nil {
		return nil, err
	}
	return m.Read(addr+1, int(lb[0]))
}
