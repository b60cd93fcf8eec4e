package codec

import (
	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/schema"
)

// SetBytes writes a raw bytes value at the cursor. Fixed-width payloads are
// zero-padded and truncated to the schema size; variable payloads carry a
// u16 length prefix.
func SetBytes(b *buffer.Buffer, c buffer.Cursor, v []byte) error {
	n, err := node(c, schema.Bytes)
	if err != nil {
		return err
	}
	if n.Size > 0 {
		p := make([]byte, n.Size)
		copy(p, v)
		return writeFixed(b, c, p)
	}
	return writeVar(b, c, v)
}

// GetBytes reads a bytes value, borrowed from the arena.
func GetBytes(b *buffer.Buffer, c buffer.Cursor) ([]byte, bool, error) {
	n, err := node(c, schema.Bytes)
	if err != nil {
		return nil, false, err
	}
	var p []byte
	if n.Size > 0 {
		p, err = readFixed(b, c, n.Size)
	} else {
		p, err = readVar(b, c)
	}
	if err != nil || p == nil {
		return nil, false, err
	}
	return p, true, nil
}
