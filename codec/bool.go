package codec

import (
	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/schema"
)

// SetBool writes a bool value at the cursor. Encoded as one byte, 0 or 1,
// so false sorts before true.
func SetBool(b *buffer.Buffer, c buffer.Cursor, v bool) error {
	if _, err := node(c, schema.Bool); err != nil {
		return err
	}
	p := []byte{0}
	if v {
		p[0] = 1
	}
	return writeFixed(b, c, p)
}

// GetBool reads a bool value.
func GetBool(b *buffer.Buffer, c buffer.Cursor) (bool, bool, error) {
	n, err := node(c, schema.Bool)
	if err != nil {
		return false, false, err
	}
	p, err := readFixed(b, c, 1)
	if err != nil || p == nil {
		def, _ := n.Default.(bool)
		return def, false, err
	}
	return p[0] != 0, true, nil
}
