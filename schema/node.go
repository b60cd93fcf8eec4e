package schema

import (
	"fmt"

	"github.com/joshuapare/bufkit/internal/format"
)

// Column is one named, positional column of a table schema. Column order is
// fixed by the schema document and never changes per buffer.
type Column struct {
	Name string
	Node *Node
}

// Node is one typed location in the schema tree. Nodes are immutable after
// Parse returns and are shared by every buffer of one type.
type Node struct {
	Kind Kind

	// Size is the fixed payload width for fixed-width strings/bytes and for
	// the geo family. Zero means variable width where that is legal.
	Size int

	// Exp is the base-10 exponent for decimal nodes. The stored payload is
	// the mantissa only; the exponent is schema-level.
	Exp uint8

	// Sortable reports whether the payload encoding is fixed-width and
	// byte-comparable. Computed during parse, never set by documents except
	// through the tuple "sorted" flag.
	Sortable bool

	// Default is the decoded default value, if the document declared one:
	// int64, uint64, float64, bool, or string depending on Kind.
	Default any

	// Value is the child schema of map values.
	Value *Node

	// Item is the child schema of list items.
	Item *Node

	// Columns are the ordered columns of a table.
	Columns []Column

	// Values are the ordered value schemas of a tuple.
	Values []*Node

	// Choices are the declared names of an enum, addressed by index.
	Choices []string

	// PortalPath is the dotted column path a portal redirects to, resolved
	// from the schema root.
	PortalPath string

	portal *Node
}

// Resolve follows a portal redirect, returning the node the portal points
// at. Non-portal nodes return themselves.
func (n *Node) Resolve() *Node {
	if n.Kind == Portal && n.portal != nil {
		return n.portal
	}
	return n
}

// ColumnIndex resolves a table column name to its fixed index and child
// schema. The mapping is static per schema, never a buffer-level lookup.
func (n *Node) ColumnIndex(name string) (int, *Node, bool) {
	for i, c := range n.Columns {
		if c.Name == name {
			return i, c.Node, true
		}
	}
	return 0, nil, false
}

// ChoiceIndex resolves an enum choice name to its stored index.
func (n *Node) ChoiceIndex(name string) (uint8, bool) {
	for i, c := range n.Choices {
		if c == name {
			return uint8(i), true
		}
	}
	return 0, false
}

// PayloadSize returns the encoded payload width of a scalar node in bytes,
// or -1 for variable-width payloads (strings/bytes without a fixed size) and
// for collections.
func (n *Node) PayloadSize() int {
	switch n.Kind {
	case Int8, Uint8, Bool, Enum:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64, Date, Decimal:
		return 8
	case UUID, ULID:
		return 16
	case Geo:
		return n.Size
	case String, Bytes:
		if n.Size > 0 {
			return n.Size
		}
		return -1
	}
	return -1
}

// EncodedDefault returns the encoded payload for this node's default value.
// Nodes without a declared default encode their zero value. Only fixed-width
// nodes have encoded defaults; that is all a sorted tuple may contain.
func (n *Node) EncodedDefault() ([]byte, error) {
	size := n.PayloadSize()
	if size < 0 {
		return nil, fmt.Errorf("%w: %s has no fixed-width default", ErrBadDefault, n.Kind)
	}
	b := make([]byte, size)
	if n.Default == nil {
		if n.Kind == String {
			for i := range b {
				b[i] = ' '
			}
		}
		return b, nil
	}

	switch n.Kind {
	case Int8:
		format.PutI8(b, 0, int8(n.Default.(int64)))
	case Int16:
		format.PutI16(b, 0, int16(n.Default.(int64)))
	case Int32:
		format.PutI32(b, 0, int32(n.Default.(int64)))
	case Int64, Decimal:
		format.PutI64(b, 0, n.Default.(int64))
	case Uint8:
		b[0] = uint8(n.Default.(uint64))
	case Uint16:
		format.PutU16(b, 0, uint16(n.Default.(uint64)))
	case Uint32:
		format.PutU32(b, 0, uint32(n.Default.(uint64)))
	case Uint64, Date:
		format.PutU64(b, 0, n.Default.(uint64))
	case Float32:
		format.PutF32(b, 0, float32(n.Default.(float64)))
	case Float64:
		format.PutF64(b, 0, n.Default.(float64))
	case Bool:
		if n.Default.(bool) {
			b[0] = 1
		}
	case String:
		s := n.Default.(string)
		for i := range b {
			b[i] = ' '
		}
		copy(b, s)
	case Enum:
		idx, ok := n.ChoiceIndex(n.Default.(string))
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a declared choice", ErrBadDefault, n.Default)
		}
		b[0] = idx
	default:
		return nil, fmt.Errorf("%w: %s does not support defaults", ErrBadDefault, n.Kind)
	}
	return b, nil
}
