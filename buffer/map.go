package buffer

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/bufkit/internal/format"

	"github.com/joshuapare/bufkit/schema"
)

// Map collection: a singly linked list of map-item records reachable from
// the map's own value-address, which always points at the current head.
// Keys are length-prefixed byte strings, allocated once and never mutated.
// Insertion prepends, so iteration yields most-recently-inserted first.
// Lookup is a linear scan; the format trades hashing away for simplicity
// and byte-wise sortability of the whole buffer.

// MapSelect finds the value cursor for key. With create set, a missing key
// is inserted (empty value) and its cursor returned. The second return is
// false when the key is absent and create is false.
func (b *Buffer) MapSelect(cur Cursor, key []byte, create bool) (Cursor, bool, error) {
	node := cur.node.Resolve()
	if node.Kind != schema.Map {
		return Cursor{}, false, fmt.Errorf("%w: map select on %s", ErrSchemaMismatch, node.Kind)
	}
	m := b.mem

	item, err := cur.ValueAddr(m)
	if err != nil {
		return Cursor{}, false, err
	}
	for hops := 0; item != 0; hops++ {
		if hops >= format.MaxItemHops {
			return Cursor{}, false, fmt.Errorf("%w: map chain exceeds %d items", ErrCorrupt, format.MaxItemHops)
		}
		ic := Cursor{node: node.Value, parent: node, off: item}
		k, err := ic.Key(m)
		if err != nil {
			return Cursor{}, false, err
		}
		if bytes.Equal(k, key) {
			return ic, true, nil
		}
		if item, err = ic.NextAddr(m); err != nil {
			return Cursor{}, false, err
		}
	}

	if !create {
		return Cursor{}, false, nil
	}
	ic, err := b.MapInsert(cur, key)
	if err != nil {
		return Cursor{}, false, err
	}
	return ic, true, nil
}

// MapInsert allocates a new item for key and makes it the head of the map's
// chain. The key length is checked before anything is allocated, so a
// rejected insert leaves the arena length unchanged. Callers that need
// get-or-insert semantics use MapSelect; MapInsert does not look for an
// existing key.
func (b *Buffer) MapInsert(cur Cursor, key []byte) (Cursor, error) {
	node := cur.node.Resolve()
	if node.Kind != schema.Map {
		return Cursor{}, fmt.Errorf("%w: map insert on %s", ErrSchemaMismatch, node.Kind)
	}
	if len(key) > format.MaxMapKeyLen {
		return Cursor{}, fmt.Errorf("%w: %d bytes", ErrKeyTooLong, len(key))
	}
	m := b.mem

	head, err := cur.ValueAddr(m)
	if err != nil {
		return Cursor{}, err
	}

	a := uint32(m.width.Bytes())
	item, err := m.MallocZero(PtrMapItem.Size(m.width))
	if err != nil {
		return Cursor{}, err
	}

	kb := make([]byte, 1+len(key))
	kb[0] = byte(len(key))
	copy(kb[1:], key)
	kaddr, err := m.Malloc(kb)
	if err != nil {
		return Cursor{}, err
	}

	// item: [value][next][key]; value stays 0 (absent) until a codec writes it.
	if err := m.putAddr(item+a, head); err != nil {
		return Cursor{}, err
	}
	if err := m.putAddr(item+2*a, kaddr); err != nil {
		return Cursor{}, err
	}
	if err := cur.SetValueAddr(m, item); err != nil {
		return Cursor{}, err
	}
	return Cursor{node: node.Value, parent: node, off: item}, nil
}

// MapDelete unlinks the item for key from the chain. The item's bytes stay
// in the arena as garbage until compaction. Returns false when the key was
// not present.
func (b *Buffer) MapDelete(cur Cursor, key []byte) (bool, error) {
	node := cur.node.Resolve()
	if node.Kind != schema.Map {
		return false, fmt.Errorf("%w: map delete on %s", ErrSchemaMismatch, node.Kind)
	}
	m := b.mem

	var prev Cursor
	item, err := cur.ValueAddr(m)
	if err != nil {
		return false, err
	}
	for hops := 0; item != 0; hops++ {
		if hops >= format.MaxItemHops {
			return false, fmt.Errorf("%w: map chain exceeds %d items", ErrCorrupt, format.MaxItemHops)
		}
		ic := Cursor{node: node.Value, parent: node, off: item}
		k, err := ic.Key(m)
		if err != nil {
			return false, err
		}
		next, err := ic.NextAddr(m)
		if err != nil {
			return false, err
		}
		if bytes.Equal(k, key) {
			if prev.Valid() {
				return true, prev.SetNextAddr(m, next)
			}
			return true, cur.SetValueAddr(m, next)
		}
		prev = ic
		item = next
	}
	return false, nil
}

// MapLen walks the chain and counts live items.
func (b *Buffer) MapLen(cur Cursor) (int, error) {
	it, err := b.MapIter(cur)
	if err != nil {
		return 0, err
	}
	n := 0
	for {
		_, ok, err := it.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// MapEntry is one (key, value cursor) pair yielded during iteration.
type MapEntry struct {
	Key    []byte
	Cursor Cursor
}

// MapIterator walks a map's item chain from the head. Because insertion
// prepends, iteration order is most-recently-inserted first.
type MapIterator struct {
	b    *Buffer
	node *schema.Node
	next uint32
	hops int
}

// MapIter starts an iteration over the map at cur.
func (b *Buffer) MapIter(cur Cursor) (*MapIterator, error) {
	node := cur.node.Resolve()
	if node.Kind != schema.Map {
		return nil, fmt.Errorf("%w: map iteration on %s", ErrSchemaMismatch, node.Kind)
	}
	head, err := cur.ValueAddr(b.mem)
	if err != nil {
		return nil, err
	}
	return &MapIterator{b: b, node: node, next: head}, nil
}

// Next returns the next entry, or ok=false when the chain is exhausted.
func (it *MapIterator) Next() (MapEntry, bool, error) {
	if it.next == 0 {
		return MapEntry{}, false, nil
	}
	if it.hops >= format.MaxItemHops {
		return MapEntry{}, false, fmt.Errorf("%w: map chain exceeds %d items", ErrCorrupt, format.MaxItemHops)
	}
	it.hops++

	ic := Cursor{node: it.node.Value, parent: it.node, off: it.next}
	key, err := ic.Key(it.b.mem)
	if err != nil {
		return MapEntry{}, false, err
	}
	next, err := ic.NextAddr(it.b.mem)
	if err != nil {
		return MapEntry{}, false, err
	}
	it.next = next
	return MapEntry{Key: key, Cursor: ic}, true, nil
}
