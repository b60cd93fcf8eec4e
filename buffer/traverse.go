package buffer

import (
	"fmt"
	"strconv"

	"github.com/joshuapare/bufkit/schema"
)

// Select descends from the root through a path of collection steps and
// returns the cursor at the end. Table steps are column names, map steps
// are keys, list and tuple steps are decimal indices. Portals are followed
// transparently. With create set, missing intermediate structure (map
// items, vtables, list items) is materialized along the way; without it,
// the walk returns ok=false at the first absent step.
//
// An empty path selects the root value itself.
func (b *Buffer) Select(path []string, create bool) (Cursor, bool, error) {
	cur := b.Root()
	for depth, seg := range path {
		node := cur.node.Resolve()
		var (
			next Cursor
			ok   bool
			err  error
		)
		switch node.Kind {
		case schema.Table:
			next, ok, err = b.TableSelect(cur, seg, create)
		case schema.Map:
			next, ok, err = b.MapSelect(cur, []byte(seg), create)
		case schema.List:
			idx, perr := parseIndex(seg)
			if perr != nil {
				return Cursor{}, false, fmt.Errorf("step %d: %w", depth, perr)
			}
			next, ok, err = b.ListSelect(cur, idx, create)
		case schema.Tuple:
			idx, perr := parseIndex(seg)
			if perr != nil {
				return Cursor{}, false, fmt.Errorf("step %d: %w", depth, perr)
			}
			next, ok, err = b.TupleSelect(cur, int(idx), create)
		default:
			return Cursor{}, false, fmt.Errorf("%w: cannot descend %s at step %d",
				ErrSchemaMismatch, node.Kind, depth)
		}
		if err != nil {
			return Cursor{}, false, fmt.Errorf("step %d (%q): %w", depth, seg, err)
		}
		if !ok {
			return Cursor{}, false, nil
		}
		cur = next
	}
	return cur, true, nil
}

// parseIndex parses a decimal list/tuple position.
func parseIndex(seg string) (uint16, error) {
	idx, err := strconv.ParseUint(seg, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an index", ErrSchemaMismatch, seg)
	}
	return uint16(idx), nil
}
