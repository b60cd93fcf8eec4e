package buffer

import "errors"

var (
	// ErrOutOfSpace indicates an allocation would exceed the arena ceiling
	// imposed by the address width (or the fixed backing slice for borrowed
	// arenas). Recoverable: compact, or reopen at a wider address size.
	ErrOutOfSpace = errors.New("buffer: out of space")

	// ErrReadOnly indicates a mutation was attempted on a read-only arena.
	ErrReadOnly = errors.New("buffer: memory is read-only")

	// ErrKeyTooLong indicates a map key longer than 255 bytes.
	ErrKeyTooLong = errors.New("buffer: map key exceeds 255 bytes")

	// ErrSchemaMismatch indicates an operation against a cursor whose schema
	// kind does not support it (e.g. a map select on a table node).
	ErrSchemaMismatch = errors.New("buffer: operation does not match schema")

	// ErrUnknownColumn indicates a table column name the schema does not declare.
	ErrUnknownColumn = errors.New("buffer: unknown table column")

	// ErrBadIndex indicates a tuple value index outside the declared range.
	ErrBadIndex = errors.New("buffer: value index out of range")

	// ErrCorrupt indicates an offset beyond the arena or a chain walk that
	// exceeded its hop cap. Buffers are not validated up front; this is how
	// malformed input surfaces during traversal.
	ErrCorrupt = errors.New("buffer: corrupt buffer")

	// ErrBadHeader indicates the buffer header is truncated, has an unknown
	// protocol version, or an invalid address-size flag.
	ErrBadHeader = errors.New("buffer: invalid buffer header")
)
