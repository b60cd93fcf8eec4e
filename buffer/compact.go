package buffer

import (
	"github.com/joshuapare/bufkit/schema"
)

// Compaction: a single depth-first walk of the source buffer's live value
// tree, re-inserting every present value into a fresh arena. Orphaned
// payloads, unlinked items and cleared slots contribute nothing, so the
// result is dense. The source is never patched in place; a failed
// compaction leaves it untouched and the half-built destination is simply
// discarded.

// Compact rebuilds the buffer into a fresh arena at the same address width.
func (b *Buffer) Compact() (*Buffer, error) {
	return b.CompactWidth(b.mem.width)
}

// CompactWidth rebuilds the buffer into a fresh arena, optionally changing
// the address width. Payload bytes are always copied fresh, never shared
// with the source, because addresses do not survive the move.
func (b *Buffer) CompactWidth(width AddrWidth) (*Buffer, error) {
	dst := New(b.sch, width)
	if err := compactValue(b, b.Root(), dst, dst.Root()); err != nil {
		return nil, err
	}
	return dst, nil
}

// compactValue re-inserts the live value at scur into dst at dcur.
func compactValue(src *Buffer, scur Cursor, dst *Buffer, dcur Cursor) error {
	node := scur.node.Resolve()

	addr, err := scur.ValueAddr(src.mem)
	if err != nil {
		return err
	}
	if addr == 0 {
		// Absent or deleted: contributes nothing to the new buffer.
		return nil
	}

	switch node.Kind {
	case schema.Map:
		// Walking head-first and re-inserting prepends, so one compaction
		// reverses item order and a second restores it. Stable under
		// repeated compaction; do not "fix".
		it, err := src.MapIter(scur)
		if err != nil {
			return err
		}
		for {
			e, ok, err := it.Next()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			dchild, err := dst.MapInsert(dcur, e.Key)
			if err != nil {
				return err
			}
			if err := compactValue(src, e.Cursor, dst, dchild); err != nil {
				return err
			}
		}

	case schema.Table:
		// Ascending column-index order, from the schema's column list, so
		// destination vtables are allocated exactly when the index crosses
		// a group-of-four boundary.
		for _, col := range node.Columns {
			sc, ok, err := src.TableSelect(scur, col.Name, false)
			if err != nil {
				return err
			}
			if !ok || !live(src, sc) {
				continue
			}
			dc, _, err := dst.TableSelect(dcur, col.Name, true)
			if err != nil {
				return err
			}
			if err := compactValue(src, sc, dst, dc); err != nil {
				return err
			}
		}
		return nil

	case schema.Tuple:
		for i := range node.Values {
			sc, ok, err := src.TupleSelect(scur, i, false)
			if err != nil {
				return err
			}
			if !ok || !live(src, sc) {
				continue
			}
			dc, _, err := dst.TupleSelect(dcur, i, true)
			if err != nil {
				return err
			}
			if err := compactValue(src, sc, dst, dc); err != nil {
				return err
			}
		}
		return nil

	case schema.List:
		// Items already walk in ascending index order, so every insert is
		// an O(1) tail append. Logical indices survive untouched; only
		// physical storage gets denser.
		it, err := src.ListIter(scur, false)
		if err != nil {
			return err
		}
		for {
			e, ok, err := it.Next()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			dchild, _, err := dst.ListSelect(dcur, e.Index, true)
			if err != nil {
				return err
			}
			if err := compactValue(src, e.Cursor, dst, dchild); err != nil {
				return err
			}
		}

	case schema.Any, schema.None:
		// Opaque values cannot be walked; they do not survive compaction.
		return nil

	default:
		return compactScalar(src, node, addr, dst, dcur)
	}
}

// compactScalar copies a scalar payload into the destination. When the
// destination slot already holds an equal-sized payload (a sorted tuple's
// eagerly written default), the bytes are overwritten in place instead of
// orphaning the default allocation.
func compactScalar(src *Buffer, node *schema.Node, addr uint32, dst *Buffer, dcur Cursor) error {
	size, err := src.payloadSize(node, addr)
	if err != nil {
		return err
	}
	payload, err := src.mem.Read(addr, size)
	if err != nil {
		return err
	}

	daddr, err := dcur.ValueAddr(dst.mem)
	if err != nil {
		return err
	}
	if daddr != 0 {
		dsize, err := dst.payloadSize(node, daddr)
		if err != nil {
			return err
		}
		if dsize == size {
			return dst.mem.WriteAt(daddr, payload)
		}
	}

	if daddr, err = dst.mem.Malloc(payload); err != nil {
		return err
	}
	return dcur.SetValueAddr(dst.mem, daddr)
}

// live reports whether the slot at c holds a value.
func live(b *Buffer, c Cursor) bool {
	addr, err := c.ValueAddr(b.mem)
	return err == nil && addr != 0
}
