package schema

import "errors"

var (
	// ErrUnknownType indicates a schema document used a type name the
	// format does not define.
	ErrUnknownType = errors.New("schema: unknown type")

	// ErrBadSchema indicates a structurally invalid schema document.
	ErrBadSchema = errors.New("schema: invalid schema document")

	// ErrBadDefault indicates a default value that does not fit its type.
	ErrBadDefault = errors.New("schema: invalid default value")

	// ErrNotSortable indicates a sorted tuple declared a child whose
	// encoding is not fixed-width byte-comparable.
	ErrNotSortable = errors.New("schema: sorted tuple requires sortable values")

	// ErrNameTooLong indicates a column name or enum choice exceeding 255 bytes.
	ErrNameTooLong = errors.New("schema: name exceeds 255 bytes")

	// ErrBadPortal indicates a portal path that does not resolve to a node.
	ErrBadPortal = errors.New("schema: portal path does not resolve")
)
