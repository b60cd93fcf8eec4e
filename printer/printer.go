// Package printer renders whole buffers as JSON-shaped values for
// debugging, dumping, and the CLI.
package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/codec"
	"github.com/joshuapare/bufkit/schema"
)

// Options controls rendering.
type Options struct {
	// IncludeAbsent renders schema defaults for absent scalars instead of
	// null, and every table column instead of only the present ones.
	IncludeAbsent bool
}

// Render walks the buffer's live value tree and produces a JSON-shaped Go
// value: map[string]any for maps and tables, []any for lists and tuples,
// scalars per their codec.
func Render(b *buffer.Buffer, opts Options) (any, error) {
	return renderValue(b, b.Root(), opts)
}

// JSON renders the buffer as indented JSON text.
func JSON(b *buffer.Buffer, opts Options) ([]byte, error) {
	v, err := Render(b, opts)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, "", "  ")
}

func renderValue(b *buffer.Buffer, cur buffer.Cursor, opts Options) (any, error) {
	node := cur.Node().Resolve()
	switch node.Kind {
	case schema.Map:
		out := map[string]any{}
		it, err := b.MapIter(cur)
		if err != nil {
			return nil, err
		}
		for {
			e, ok, err := it.Next()
			if err != nil {
				return nil, err
			}
			if !ok {
				return out, nil
			}
			v, err := renderValue(b, e.Cursor, opts)
			if err != nil {
				return nil, err
			}
			out[string(e.Key)] = v
		}

	case schema.Table:
		out := map[string]any{}
		err := b.TableIter(cur, func(e buffer.TableEntry) error {
			if !e.Present && !opts.IncludeAbsent {
				return nil
			}
			if !e.Cursor.Valid() {
				// Column whose vtable was never allocated: fall back to
				// the schema default, null when none is declared.
				out[e.Name] = node.Columns[e.Index].Node.Resolve().Default
				return nil
			}
			v, err := renderValue(b, e.Cursor, opts)
			if err != nil {
				return err
			}
			out[e.Name] = v
			return nil
		})
		return out, err

	case schema.Tuple:
		out := make([]any, len(node.Values))
		err := b.TupleIter(cur, func(i int, c buffer.Cursor, present bool) error {
			if !present && !opts.IncludeAbsent {
				return nil
			}
			if !c.Valid() {
				return nil
			}
			v, err := renderValue(b, c, opts)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
		return out, err

	case schema.List:
		// Sparse lists render dense: unset interior indices come back as
		// null without materializing items.
		var out []any
		it, err := b.ListIter(cur, true)
		if err != nil {
			return nil, err
		}
		for {
			e, ok, err := it.Next()
			if err != nil {
				return nil, err
			}
			if !ok {
				return out, nil
			}
			if !e.Present {
				out = append(out, nil)
				continue
			}
			v, err := renderValue(b, e.Cursor, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}

	case schema.Any:
		return nil, nil

	default:
		v, present, err := codec.GetAny(b, cur)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", node.Kind, err)
		}
		if !present && !opts.IncludeAbsent {
			return nil, nil
		}
		return v, nil
	}
}

// RenderPath renders the value at a path, for targeted CLI reads.
func RenderPath(b *buffer.Buffer, path []string, opts Options) (any, bool, error) {
	cur, ok, err := b.Select(path, false)
	if err != nil || !ok {
		return nil, false, err
	}
	v, err := renderValue(b, cur, opts)
	return v, true, err
}
