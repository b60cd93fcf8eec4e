package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/bufkit/internal/format"
)

// rawNode is the wire shape of one schema document node.
type rawNode struct {
	Type    string            `json:"type"`
	Size    int               `json:"size,omitempty"`
	Exp     uint8             `json:"exp,omitempty"`
	Default json.RawMessage   `json:"default,omitempty"`
	Of      *rawNode          `json:"of,omitempty"`
	Value   *rawNode          `json:"value,omitempty"`
	Columns []json.RawMessage `json:"columns,omitempty"`
	Values  []*rawNode        `json:"values,omitempty"`
	Sorted  bool              `json:"sorted,omitempty"`
	Choices []string          `json:"choices,omitempty"`
	To      string            `json:"to,omitempty"`
}

// Parse builds an immutable schema tree from a JSON schema document.
// Validation (sortability, portal resolution, name lengths) happens here,
// once per type, never per buffer operation.
func Parse(doc []byte) (*Node, error) {
	var raw rawNode
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSchema, err)
	}
	root, err := build(&raw)
	if err != nil {
		return nil, err
	}
	if err := resolvePortals(root, root); err != nil {
		return nil, err
	}
	return root, nil
}

// build converts one raw document node (and its children) to a Node.
func build(raw *rawNode) (*Node, error) {
	spec, ok := typeNames[raw.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, raw.Type)
	}

	n := &Node{
		Kind: spec.kind,
		Size: raw.Size,
		Exp:  raw.Exp,
	}
	if spec.size != 0 {
		n.Size = spec.size
	}

	var err error
	switch n.Kind {
	case Map:
		if raw.Value == nil {
			return nil, fmt.Errorf("%w: map requires a value schema", ErrBadSchema)
		}
		if n.Value, err = build(raw.Value); err != nil {
			return nil, err
		}

	case List:
		if raw.Of == nil {
			return nil, fmt.Errorf("%w: list requires an item schema", ErrBadSchema)
		}
		if n.Item, err = build(raw.Of); err != nil {
			return nil, err
		}

	case Table:
		if len(raw.Columns) == 0 {
			return nil, fmt.Errorf("%w: table requires columns", ErrBadSchema)
		}
		if len(raw.Columns) > format.MaxVtableValues {
			return nil, fmt.Errorf("%w: table has %d columns, max is %d", ErrBadSchema, len(raw.Columns), format.MaxVtableValues)
		}
		seen := make(map[string]bool, len(raw.Columns))
		for i, rc := range raw.Columns {
			col, err := buildColumn(rc)
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", i, err)
			}
			if seen[col.Name] {
				return nil, fmt.Errorf("%w: duplicate column %q", ErrBadSchema, col.Name)
			}
			seen[col.Name] = true
			n.Columns = append(n.Columns, col)
		}

	case Tuple:
		if len(raw.Values) == 0 {
			return nil, fmt.Errorf("%w: tuple requires values", ErrBadSchema)
		}
		if len(raw.Values) > format.MaxVtableValues {
			return nil, fmt.Errorf("%w: tuple has %d values, max is %d", ErrBadSchema, len(raw.Values), format.MaxVtableValues)
		}
		for i, rv := range raw.Values {
			child, err := build(rv)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			n.Values = append(n.Values, child)
		}
		if raw.Sorted {
			// Sorted tuples are rejected at construction time, not write
			// time, when any child encoding is not byte-comparable.
			for i, v := range n.Values {
				if !v.Sortable {
					return nil, fmt.Errorf("%w: value %d (%s)", ErrNotSortable, i, v.Kind)
				}
			}
			n.Sortable = true
		}

	case Enum:
		if len(raw.Choices) == 0 || len(raw.Choices) > 256 {
			return nil, fmt.Errorf("%w: option requires 1-256 choices", ErrBadSchema)
		}
		for _, c := range raw.Choices {
			if len(c) > format.MaxMapKeyLen {
				return nil, fmt.Errorf("%w: choice %q", ErrNameTooLong, c[:16]+"...")
			}
		}
		n.Choices = raw.Choices

	case Portal:
		if raw.To == "" {
			return nil, fmt.Errorf("%w: portal requires a path", ErrBadSchema)
		}
		n.PortalPath = raw.To
	}

	n.Sortable = n.Sortable || sortable(n)

	if raw.Default != nil {
		if err := parseDefault(n, raw.Default); err != nil {
			return nil, err
		}
		// Encoding is how fixed-width defaults get range-checked.
		if n.PayloadSize() > 0 {
			if _, err := n.EncodedDefault(); err != nil {
				return nil, err
			}
		}
	}
	return n, nil
}

// buildColumn parses one ["name", {...}] column entry.
func buildColumn(raw json.RawMessage) (Column, error) {
	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
		return Column{}, fmt.Errorf("%w: column must be [name, schema]", ErrBadSchema)
	}
	var name string
	if err := json.Unmarshal(pair[0], &name); err != nil || name == "" {
		return Column{}, fmt.Errorf("%w: column name must be a non-empty string", ErrBadSchema)
	}
	if len(name) > format.MaxMapKeyLen {
		return Column{}, fmt.Errorf("%w: column %q", ErrNameTooLong, name[:16]+"...")
	}
	var rn rawNode
	if err := json.Unmarshal(pair[1], &rn); err != nil {
		return Column{}, fmt.Errorf("%w: %v", ErrBadSchema, err)
	}
	node, err := build(&rn)
	if err != nil {
		return Column{}, err
	}
	return Column{Name: name, Node: node}, nil
}

// sortable computes whether a node's payload is fixed-width byte-comparable.
func sortable(n *Node) bool {
	switch n.Kind {
	case Int8, Int16, Int32, Int64,
		Uint8, Uint16, Uint32, Uint64,
		Bool, Date, UUID, ULID, Decimal, Geo, Enum:
		return true
	case String, Bytes:
		return n.Size > 0
	}
	return false
}

// parseDefault decodes a document default into the node's decoded form.
func parseDefault(n *Node, raw json.RawMessage) error {
	switch n.Kind {
	case Int8, Int16, Int32, Int64, Decimal:
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: %v", ErrBadDefault, err)
		}
		n.Default = v
	case Uint8, Uint16, Uint32, Uint64, Date:
		var v uint64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: %v", ErrBadDefault, err)
		}
		n.Default = v
	case Float32, Float64:
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: %v", ErrBadDefault, err)
		}
		n.Default = v
	case Bool:
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: %v", ErrBadDefault, err)
		}
		n.Default = v
	case String, Enum:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: %v", ErrBadDefault, err)
		}
		n.Default = v
	default:
		return fmt.Errorf("%w: %s does not support defaults", ErrBadDefault, n.Kind)
	}
	return nil
}

// resolvePortals walks the structural tree and binds every portal to the
// node its dotted path names, starting from the schema root. Portals may
// point at ancestors; that is how recursive shapes are declared, and it is
// safe because resolution only walks the raw tree, never portal targets.
func resolvePortals(root, n *Node) error {
	switch n.Kind {
	case Portal:
		target, err := walkPath(root, n.PortalPath)
		if err != nil {
			return err
		}
		n.portal = target
	case Map:
		return resolvePortals(root, n.Value)
	case List:
		return resolvePortals(root, n.Item)
	case Table:
		for _, c := range n.Columns {
			if err := resolvePortals(root, c.Node); err != nil {
				return err
			}
		}
	case Tuple:
		for _, v := range n.Values {
			if err := resolvePortals(root, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkPath descends the schema tree by dotted path segments. Table segments
// select columns by name; list and map segments descend into the item/value
// schema; numeric segments select tuple values.
func walkPath(root *Node, path string) (*Node, error) {
	n := root
	for _, seg := range strings.Split(path, ".") {
		switch n.Kind {
		case Table:
			_, child, ok := n.ColumnIndex(seg)
			if !ok {
				return nil, fmt.Errorf("%w: no column %q in %q", ErrBadPortal, seg, path)
			}
			n = child
		case Map:
			n = n.Value
		case List:
			n = n.Item
		case Tuple:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(n.Values) {
				return nil, fmt.Errorf("%w: bad tuple index %q in %q", ErrBadPortal, seg, path)
			}
			n = n.Values[idx]
		default:
			return nil, fmt.Errorf("%w: cannot descend %s via %q", ErrBadPortal, n.Kind, path)
		}
	}
	return n, nil
}
