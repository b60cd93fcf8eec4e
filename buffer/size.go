package buffer

import (
	"fmt"

	"github.com/joshuapare/bufkit/internal/format"

	"github.com/joshuapare/bufkit/schema"
)

// Savings describes how much a compaction would reclaim. Callers use it to
// decide whether a compaction is worth its full-tree walk before paying it.
type Savings struct {
	// CurrentSize is the buffer's logical length today.
	CurrentSize int
	// CompactedSize is the length a freshly compacted copy would have.
	CompactedSize int
	// WastedBytes is the difference: orphaned payloads, unlinked items, and
	// cleared slots that only compaction can reclaim.
	WastedBytes int
}

// Savings walks the live value tree and reports current size against the
// size of a compacted copy at the same address width.
func (b *Buffer) Savings() (Savings, error) {
	live, err := b.valueSize(b.Root())
	if err != nil {
		return Savings{}, err
	}
	compacted := format.RootHeaderSize(b.mem.width.Bytes()) + live
	return Savings{
		CurrentSize:   b.mem.Length(),
		CompactedSize: compacted,
		WastedBytes:   b.mem.Length() - compacted,
	}, nil
}

// valueSize returns the arena bytes the live subtree at cur would occupy
// after compaction, excluding the address slot that references it (the
// parent pays for that).
func (b *Buffer) valueSize(cur Cursor) (int, error) {
	node := cur.node.Resolve()
	m := b.mem
	a := m.width.Bytes()

	addr, err := cur.ValueAddr(m)
	if err != nil {
		return 0, err
	}
	if addr == 0 {
		return 0, nil
	}

	switch node.Kind {
	case schema.Map:
		it, err := b.MapIter(cur)
		if err != nil {
			return 0, err
		}
		total := 0
		for {
			e, ok, err := it.Next()
			if err != nil {
				return 0, err
			}
			if !ok {
				return total, nil
			}
			child, err := b.valueSize(e.Cursor)
			if err != nil {
				return 0, err
			}
			total += PtrMapItem.Size(m.width) + 1 + len(e.Key) + child
		}

	case schema.Table:
		return b.slotsSize(cur, len(node.Columns), func(i int) (Cursor, bool, error) {
			return b.TableSelect(cur, node.Columns[i].Name, false)
		})

	case schema.Tuple:
		if node.Sortable {
			// Sorted tuples are fully materialized: every vtable plus every
			// fixed-width payload, independent of what was ever set.
			nVts := (len(node.Values) + format.VtableSlots - 1) / format.VtableSlots
			total := nVts * PtrVtable.Size(m.width)
			for _, v := range node.Values {
				total += v.Resolve().PayloadSize()
			}
			// Walk the chain anyway so a cyclic buffer surfaces as corrupt.
			if err := b.walkVtables(addr, func(uint32) error { return nil }); err != nil {
				return 0, err
			}
			return total, nil
		}
		return b.slotsSize(cur, len(node.Values), func(i int) (Cursor, bool, error) {
			return b.TupleSelect(cur, i, false)
		})

	case schema.List:
		it, err := b.ListIter(cur, false)
		if err != nil {
			return 0, err
		}
		total := 2 * a // head/tail record
		for {
			e, ok, err := it.Next()
			if err != nil {
				return 0, err
			}
			if !ok {
				return total, nil
			}
			child, err := b.valueSize(e.Cursor)
			if err != nil {
				return 0, err
			}
			total += PtrListItem.Size(m.width) + child
		}

	case schema.Any, schema.None:
		// Opaque: nothing to size, and compaction drops it.
		return 0, nil

	default:
		return b.payloadSize(node, addr)
	}
}

// slotsSize sums vtable overhead plus live slot payloads for a table or
// unsorted tuple: one vtable per started group of four up to the highest
// live value index.
func (b *Buffer) slotsSize(cur Cursor, n int, selectAt func(int) (Cursor, bool, error)) (int, error) {
	maxLive := -1
	total := 0
	for i := 0; i < n; i++ {
		c, ok, err := selectAt(i)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		addr, err := c.ValueAddr(b.mem)
		if err != nil {
			return 0, err
		}
		if addr == 0 {
			continue
		}
		maxLive = i
		child, err := b.valueSize(c)
		if err != nil {
			return 0, err
		}
		total += child
	}
	if maxLive < 0 {
		return 0, nil
	}
	// Detect cyclic chains even when every slot is healthy.
	first, err := cur.ValueAddr(b.mem)
	if err != nil {
		return 0, err
	}
	if err := b.walkVtables(first, func(uint32) error { return nil }); err != nil {
		return 0, err
	}
	nVts := maxLive/format.VtableSlots + 1
	return total + nVts*PtrVtable.Size(b.mem.width), nil
}

// payloadSize returns the encoded payload length of the scalar at addr.
func (b *Buffer) payloadSize(node *schema.Node, addr uint32) (int, error) {
	if size := node.PayloadSize(); size >= 0 {
		return size, nil
	}
	switch node.Kind {
	case schema.String, schema.Bytes:
		n, err := b.mem.readU16(addr)
		if err != nil {
			return 0, err
		}
		return 2 + int(n), nil
	}
	return 0, fmt.Errorf("%w: cannot size %s payload", ErrSchemaMismatch, node.Kind)
}
