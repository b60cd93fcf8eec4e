package buffer

import (
	"fmt"

	"github.com/joshuapare/bufkit/internal/format"

	"github.com/joshuapare/bufkit/schema"
)

// Tuple collection: the same vtable chain as Table, addressed by declared
// value index instead of column name. A tuple marked sorted allocates every
// vtable and every default payload eagerly on first write, so all sorted
// buffers of one schema are byte-length-identical and compare byte-wise in
// declared value order.

// TupleSelect resolves a declared value index to its slot cursor. On a
// sorted tuple the first creating select materializes the whole tuple:
// every vtable plus each value's schema default, eagerly, because the
// byte-wise sort guarantee requires identical length regardless of which
// values were ever set.
func (b *Buffer) TupleSelect(cur Cursor, idx int, create bool) (Cursor, bool, error) {
	node := cur.node.Resolve()
	if node.Kind != schema.Tuple {
		return Cursor{}, false, fmt.Errorf("%w: tuple select on %s", ErrSchemaMismatch, node.Kind)
	}
	if idx < 0 || idx >= len(node.Values) {
		return Cursor{}, false, fmt.Errorf("%w: %d of %d values", ErrBadIndex, idx, len(node.Values))
	}

	if node.Sortable && create {
		addr, err := cur.ValueAddr(b.mem)
		if err != nil {
			return Cursor{}, false, err
		}
		if addr == 0 {
			if err := b.tupleInitSorted(cur, node); err != nil {
				return Cursor{}, false, err
			}
		}
	}

	slot, ok, err := b.vtableSlot(cur, idx, create)
	if err != nil || !ok {
		return Cursor{}, false, err
	}
	return Cursor{node: node.Values[idx], parent: node, off: slot}, true, nil
}

// TupleDelete clears a value's address. On a sorted tuple values are never
// cleared (that would break the fixed-length guarantee); the caller
// overwrites with the default instead.
func (b *Buffer) TupleDelete(cur Cursor, idx int) (bool, error) {
	node := cur.node.Resolve()
	if node.Kind != schema.Tuple {
		return false, fmt.Errorf("%w: tuple delete on %s", ErrSchemaMismatch, node.Kind)
	}
	if node.Sortable {
		return false, fmt.Errorf("%w: sorted tuples hold every value", ErrSchemaMismatch)
	}
	c, ok, err := b.TupleSelect(cur, idx, false)
	if err != nil || !ok {
		return false, err
	}
	addr, err := c.ValueAddr(b.mem)
	if err != nil || addr == 0 {
		return false, err
	}
	return true, c.SetValueAddr(b.mem, 0)
}

// TupleIter yields every declared value in index order.
func (b *Buffer) TupleIter(cur Cursor, fn func(idx int, c Cursor, present bool) error) error {
	node := cur.node.Resolve()
	if node.Kind != schema.Tuple {
		return fmt.Errorf("%w: tuple iteration on %s", ErrSchemaMismatch, node.Kind)
	}
	for i := range node.Values {
		slot, ok, err := b.vtableSlot(cur, i, false)
		if err != nil {
			return err
		}
		var c Cursor
		present := false
		if ok {
			c = Cursor{node: node.Values[i], parent: node, off: slot}
			addr, err := c.ValueAddr(b.mem)
			if err != nil {
				return err
			}
			present = addr != 0
		}
		if err := fn(i, c, present); err != nil {
			return err
		}
	}
	return nil
}

// tupleInitSorted allocates the complete vtable chain and writes every
// value's encoded default. Defaults must be written, not left at zero
// addresses: the sort guarantee compares payload bytes, and an absent value
// has no payload to compare.
func (b *Buffer) tupleInitSorted(cur Cursor, node *schema.Node) error {
	m := b.mem
	a := uint32(m.width.Bytes())
	vtSize := PtrVtable.Size(m.width)
	nVts := (len(node.Values) + format.VtableSlots - 1) / format.VtableSlots

	vts := make([]uint32, nVts)
	for i := range vts {
		vt, err := m.MallocZero(vtSize)
		if err != nil {
			return err
		}
		vts[i] = vt
		if i > 0 {
			if err := m.putAddr(vts[i-1]+uint32(format.VtableSlots)*a, vt); err != nil {
				return err
			}
		}
	}

	for i, v := range node.Values {
		def, err := v.Resolve().EncodedDefault()
		if err != nil {
			return err
		}
		addr, err := m.Malloc(def)
		if err != nil {
			return err
		}
		slot := vts[i/format.VtableSlots] + uint32(i%format.VtableSlots)*a
		if err := m.putAddr(slot, addr); err != nil {
			return err
		}
	}
	return cur.SetValueAddr(m, vts[0])
}
