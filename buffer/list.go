package buffer

import (
	"fmt"

	"github.com/joshuapare/bufkit/internal/format"

	"github.com/joshuapare/bufkit/schema"
)

// List collection: a sparse, index-ordered linked list. The list's own
// value-address points at a two-address record holding the head and tail
// item addresses, giving O(1) pushes at either end. Items carry an explicit
// u16 index; ascending index order along the chain is a hard invariant, and
// gaps are represented by the absence of an item, never by placeholders.

// listHeads reads the address of the list's head/tail record (0 when the
// list was never written).
func (b *Buffer) listHeads(cur Cursor) (uint32, error) {
	return cur.ValueAddr(b.mem)
}

// listNewItem allocates a zeroed item record carrying idx.
func (b *Buffer) listNewItem(idx uint16) (uint32, error) {
	m := b.mem
	item, err := m.MallocZero(PtrListItem.Size(m.width))
	if err != nil {
		return 0, err
	}
	return item, m.putU16(item+uint32(2*m.width.Bytes()), idx)
}

// ListSelect finds the item cursor for idx, splicing a new item into the
// chain when create is set. The splice keeps ascending index order: the new
// item becomes the head, the tail, or is linked between the two neighbors
// that bracket its index.
func (b *Buffer) ListSelect(cur Cursor, idx uint16, create bool) (Cursor, bool, error) {
	node := cur.node.Resolve()
	if node.Kind != schema.List {
		return Cursor{}, false, fmt.Errorf("%w: list select on %s", ErrSchemaMismatch, node.Kind)
	}
	m := b.mem
	a := uint32(m.width.Bytes())

	ht, err := b.listHeads(cur)
	if err != nil {
		return Cursor{}, false, err
	}
	if ht == 0 {
		if !create {
			return Cursor{}, false, nil
		}
		if ht, err = m.MallocZero(2 * int(a)); err != nil {
			return Cursor{}, false, err
		}
		if err = cur.SetValueAddr(m, ht); err != nil {
			return Cursor{}, false, err
		}
	}

	head, err := m.readAddr(ht)
	if err != nil {
		return Cursor{}, false, err
	}

	item := func(off uint32) Cursor { return Cursor{node: node.Item, parent: node, off: off} }

	// Empty list: the new item is both head and tail.
	if head == 0 {
		if !create {
			return Cursor{}, false, nil
		}
		it, err := b.listNewItem(idx)
		if err != nil {
			return Cursor{}, false, err
		}
		if err = m.putAddr(ht, it); err != nil {
			return Cursor{}, false, err
		}
		return item(it), true, m.putAddr(ht+a, it)
	}

	headIdx, err := item(head).Index(m)
	if err != nil {
		return Cursor{}, false, err
	}
	if idx == headIdx {
		return item(head), true, nil
	}

	// Below the head: prepend.
	if idx < headIdx {
		if !create {
			return Cursor{}, false, nil
		}
		it, err := b.listNewItem(idx)
		if err != nil {
			return Cursor{}, false, err
		}
		if err = item(it).SetNextAddr(m, head); err != nil {
			return Cursor{}, false, err
		}
		return item(it), true, m.putAddr(ht, it)
	}

	tail, err := m.readAddr(ht + a)
	if err != nil {
		return Cursor{}, false, err
	}
	tailIdx, err := item(tail).Index(m)
	if err != nil {
		return Cursor{}, false, err
	}
	if idx == tailIdx {
		return item(tail), true, nil
	}

	// Above the tail: append.
	if idx > tailIdx {
		if !create {
			return Cursor{}, false, nil
		}
		it, err := b.listNewItem(idx)
		if err != nil {
			return Cursor{}, false, err
		}
		if err = item(tail).SetNextAddr(m, it); err != nil {
			return Cursor{}, false, err
		}
		return item(it), true, m.putAddr(ht+a, it)
	}

	// Interior: walk forward from the head until the bracket closes.
	prev := head
	for hops := 0; hops < format.MaxItemHops; hops++ {
		next, err := item(prev).NextAddr(m)
		if err != nil {
			return Cursor{}, false, err
		}
		if next == 0 {
			// The tail index bracketed idx above, so the chain ended early.
			return Cursor{}, false, fmt.Errorf("%w: list chain ends before index %d", ErrCorrupt, idx)
		}
		nextIdx, err := item(next).Index(m)
		if err != nil {
			return Cursor{}, false, err
		}
		if nextIdx == idx {
			return item(next), true, nil
		}
		if nextIdx > idx {
			if !create {
				return Cursor{}, false, nil
			}
			it, err := b.listNewItem(idx)
			if err != nil {
				return Cursor{}, false, err
			}
			if err = item(it).SetNextAddr(m, next); err != nil {
				return Cursor{}, false, err
			}
			return item(it), true, item(prev).SetNextAddr(m, it)
		}
		prev = next
	}
	return Cursor{}, false, fmt.Errorf("%w: list chain exceeds %d items", ErrCorrupt, format.MaxItemHops)
}

// ListPush appends a new item one past the current tail index (index 0 for
// an empty list) and returns its cursor and index.
func (b *Buffer) ListPush(cur Cursor) (Cursor, uint16, error) {
	node := cur.node.Resolve()
	if node.Kind != schema.List {
		return Cursor{}, 0, fmt.Errorf("%w: list push on %s", ErrSchemaMismatch, node.Kind)
	}
	m := b.mem
	a := uint32(m.width.Bytes())

	idx := uint16(0)
	ht, err := b.listHeads(cur)
	if err != nil {
		return Cursor{}, 0, err
	}
	if ht != 0 {
		tail, err := m.readAddr(ht + a)
		if err != nil {
			return Cursor{}, 0, err
		}
		if tail != 0 {
			tailIdx, err := Cursor{node: node.Item, parent: node, off: tail}.Index(m)
			if err != nil {
				return Cursor{}, 0, err
			}
			if tailIdx == 0xFFFF {
				return Cursor{}, 0, fmt.Errorf("%w: list index space exhausted", ErrOutOfSpace)
			}
			idx = tailIdx + 1
		}
	}
	c, _, err := b.ListSelect(cur, idx, true)
	return c, idx, err
}

// ListDelete unlinks the item at idx, updating head/tail as needed. The
// item's bytes stay in the arena until compaction. Returns false when no
// item holds idx.
func (b *Buffer) ListDelete(cur Cursor, idx uint16) (bool, error) {
	node := cur.node.Resolve()
	if node.Kind != schema.List {
		return false, fmt.Errorf("%w: list delete on %s", ErrSchemaMismatch, node.Kind)
	}
	m := b.mem
	a := uint32(m.width.Bytes())

	ht, err := b.listHeads(cur)
	if err != nil || ht == 0 {
		return false, err
	}
	item := func(off uint32) Cursor { return Cursor{node: node.Item, parent: node, off: off} }

	var prev uint32
	it, err := m.readAddr(ht)
	if err != nil {
		return false, err
	}
	for hops := 0; it != 0; hops++ {
		if hops >= format.MaxItemHops {
			return false, fmt.Errorf("%w: list chain exceeds %d items", ErrCorrupt, format.MaxItemHops)
		}
		itIdx, err := item(it).Index(m)
		if err != nil {
			return false, err
		}
		next, err := item(it).NextAddr(m)
		if err != nil {
			return false, err
		}
		if itIdx == idx {
			if prev == 0 {
				if err := m.putAddr(ht, next); err != nil {
					return false, err
				}
			} else if err := item(prev).SetNextAddr(m, next); err != nil {
				return false, err
			}
			if next == 0 {
				// Removed the tail; the new tail is the previous item (or
				// nothing at all).
				if err := m.putAddr(ht+a, prev); err != nil {
					return false, err
				}
			}
			return true, nil
		}
		if itIdx > idx {
			return false, nil
		}
		prev = it
		it = next
	}
	return false, nil
}

// ListEntry is one position yielded during iteration. Present is false only
// in include-empty mode, for interior indices that hold no item.
type ListEntry struct {
	Index   uint16
	Cursor  Cursor
	Present bool
}

// ListIterator walks a list forward from the head in ascending index order.
type ListIterator struct {
	b         *Buffer
	node      *schema.Node
	next      uint32
	virtual   uint16
	withEmpty bool
	done      bool
	hops      int
}

// ListIter starts an iteration over the list at cur. With withEmpty set the
// iterator reports every index from 0 through the last live item, yielding
// Present=false for gaps without allocating anything; otherwise it yields
// only live items.
func (b *Buffer) ListIter(cur Cursor, withEmpty bool) (*ListIterator, error) {
	node := cur.node.Resolve()
	if node.Kind != schema.List {
		return nil, fmt.Errorf("%w: list iteration on %s", ErrSchemaMismatch, node.Kind)
	}
	it := &ListIterator{b: b, node: node, withEmpty: withEmpty}

	ht, err := b.listHeads(cur)
	if err != nil {
		return nil, err
	}
	if ht == 0 {
		it.done = true
		return it, nil
	}
	if it.next, err = b.mem.readAddr(ht); err != nil {
		return nil, err
	}
	it.done = it.next == 0
	return it, nil
}

// Next returns the next entry, or ok=false when the walk is finished.
func (it *ListIterator) Next() (ListEntry, bool, error) {
	if it.done {
		return ListEntry{}, false, nil
	}
	if it.hops >= format.MaxItemHops {
		return ListEntry{}, false, fmt.Errorf("%w: list chain exceeds %d items", ErrCorrupt, format.MaxItemHops)
	}

	m := it.b.mem
	ic := Cursor{node: it.node.Item, parent: it.node, off: it.next}
	idx, err := ic.Index(m)
	if err != nil {
		return ListEntry{}, false, err
	}

	if it.withEmpty && it.virtual < idx {
		e := ListEntry{Index: it.virtual}
		it.virtual++
		return e, true, nil
	}

	next, err := ic.NextAddr(m)
	if err != nil {
		return ListEntry{}, false, err
	}
	it.hops++
	it.next = next
	it.virtual = idx + 1
	it.done = next == 0
	return ListEntry{Index: idx, Cursor: ic, Present: true}, true, nil
}
