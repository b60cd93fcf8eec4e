package buffer

import (
	"fmt"

	"github.com/joshuapare/bufkit/internal/format"

	"github.com/joshuapare/bufkit/schema"
)

// Table collection: fixed, schema-declared columns stored through a
// forward-only chain of 4-slot vtables. Column i lives in vtable i/4,
// slot i%4. Vtables are allocated lazily up to the highest column ever
// written, never reordered and never removed; deletion clears a slot's
// value-address, and only compaction reclaims the space.

// TableSelect resolves a column name to its slot cursor. The name-to-index
// mapping is static per schema. With create set, missing vtables along the
// chain are allocated; without it, a chain that does not reach the column
// yet returns ok=false and allocates nothing.
func (b *Buffer) TableSelect(cur Cursor, name string, create bool) (Cursor, bool, error) {
	node := cur.node.Resolve()
	if node.Kind != schema.Table {
		return Cursor{}, false, fmt.Errorf("%w: table select on %s", ErrSchemaMismatch, node.Kind)
	}
	idx, child, ok := node.ColumnIndex(name)
	if !ok {
		return Cursor{}, false, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	slot, ok, err := b.vtableSlot(cur, idx, create)
	if err != nil || !ok {
		return Cursor{}, false, err
	}
	return Cursor{node: child, parent: node, off: slot}, true, nil
}

// TableDelete clears a column's value-address. The old payload becomes
// garbage; the vtable chain is left untouched. Returns false when the
// column had no value.
func (b *Buffer) TableDelete(cur Cursor, name string) (bool, error) {
	c, ok, err := b.TableSelect(cur, name, false)
	if err != nil || !ok {
		return false, err
	}
	addr, err := c.ValueAddr(b.mem)
	if err != nil || addr == 0 {
		return false, err
	}
	return true, c.SetValueAddr(b.mem, 0)
}

// TableEntry is one column yielded during iteration. Present reports
// whether the column holds a value; absent columns still yield so callers
// can materialize defaults.
type TableEntry struct {
	Name    string
	Index   int
	Cursor  Cursor
	Present bool
}

// TableIter yields every schema column in declaration order. Columns whose
// vtable was never allocated yield with Present=false and an invalid cursor.
func (b *Buffer) TableIter(cur Cursor, fn func(TableEntry) error) error {
	node := cur.node.Resolve()
	if node.Kind != schema.Table {
		return fmt.Errorf("%w: table iteration on %s", ErrSchemaMismatch, node.Kind)
	}
	for i, col := range node.Columns {
		e := TableEntry{Name: col.Name, Index: i}
		slot, ok, err := b.vtableSlot(cur, i, false)
		if err != nil {
			return err
		}
		if ok {
			e.Cursor = Cursor{node: col.Node, parent: node, off: slot}
			addr, err := e.Cursor.ValueAddr(b.mem)
			if err != nil {
				return err
			}
			e.Present = addr != 0
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// vtableSlot walks the vtable chain to the slot for value index idx,
// allocating the first vtable and any missing links when create is set.
// The walk is capped: a chain longer than MaxVtableHops is cyclic or
// otherwise corrupt, and the cap turns that into an error instead of an
// unbounded loop.
func (b *Buffer) vtableSlot(cur Cursor, idx int, create bool) (uint32, bool, error) {
	m := b.mem
	a := uint32(m.width.Bytes())
	target := idx / format.VtableSlots
	if target >= format.MaxVtableHops {
		return 0, false, fmt.Errorf("%w: value index %d beyond vtable cap", ErrCorrupt, idx)
	}

	vt, err := cur.ValueAddr(m)
	if err != nil {
		return 0, false, err
	}
	if vt == 0 {
		if !create {
			return 0, false, nil
		}
		if vt, err = m.MallocZero(PtrVtable.Size(m.width)); err != nil {
			return 0, false, err
		}
		if err = cur.SetValueAddr(m, vt); err != nil {
			return 0, false, err
		}
	}

	for n := 0; n < target; n++ {
		nextOff := vt + uint32(format.VtableSlots)*a
		next, err := m.readAddr(nextOff)
		if err != nil {
			return 0, false, err
		}
		if next == 0 {
			if !create {
				return 0, false, nil
			}
			if next, err = m.MallocZero(PtrVtable.Size(m.width)); err != nil {
				return 0, false, err
			}
			if err = m.putAddr(nextOff, next); err != nil {
				return 0, false, err
			}
		}
		vt = next
	}
	return vt + uint32(idx%format.VtableSlots)*a, true, nil
}

// walkVtables follows a vtable chain from first, yielding each vtable base
// address. Used by size accounting; the hop cap guards cyclic chains.
func (b *Buffer) walkVtables(first uint32, fn func(vt uint32) error) error {
	m := b.mem
	a := uint32(m.width.Bytes())
	vt := first
	for hops := 0; vt != 0; hops++ {
		if hops >= format.MaxVtableHops {
			return fmt.Errorf("%w: vtable chain exceeds %d records", ErrCorrupt, format.MaxVtableHops)
		}
		if err := fn(vt); err != nil {
			return err
		}
		next, err := m.readAddr(vt + uint32(format.VtableSlots)*a)
		if err != nil {
			return err
		}
		vt = next
	}
	return nil
}
