package codec

import "errors"

var (
	// ErrTooLong indicates a variable-width payload exceeding the u16
	// length prefix.
	ErrTooLong = errors.New("codec: payload exceeds 65535 bytes")

	// ErrUnknownChoice indicates an enum value the schema does not declare.
	ErrUnknownChoice = errors.New("codec: not a declared choice")

	// ErrBadValue indicates a value that cannot be represented by the
	// target schema node (e.g. a coordinate outside the geo range).
	ErrBadValue = errors.New("codec: value does not fit type")
)
