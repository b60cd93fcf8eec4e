package codec

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/schema"
)

// SetString writes a string value at the cursor.
//
// Fixed-width (sortable) strings are NFC-normalized, truncated to the
// schema size and padded with spaces, then written in place; normalization
// makes canonically-equivalent text byte-equal, which the sort guarantee
// needs. Variable strings carry a u16 length prefix and re-allocate when
// the length changes.
func SetString(b *buffer.Buffer, c buffer.Cursor, v string) error {
	n, err := node(c, schema.String)
	if err != nil {
		return err
	}
	if n.Size > 0 {
		v = norm.NFC.String(v)
		p := make([]byte, n.Size)
		copied := copy(p, v)
		for i := copied; i < n.Size; i++ {
			p[i] = ' '
		}
		return writeFixed(b, c, p)
	}
	return writeVar(b, c, []byte(v))
}

// GetString reads a string value. Fixed-width payloads come back with
// trailing padding trimmed.
func GetString(b *buffer.Buffer, c buffer.Cursor) (string, bool, error) {
	n, err := node(c, schema.String)
	if err != nil {
		return "", false, err
	}
	var p []byte
	if n.Size > 0 {
		p, err = readFixed(b, c, n.Size)
	} else {
		p, err = readVar(b, c)
	}
	if err != nil || p == nil {
		def, _ := n.Default.(string)
		return def, false, err
	}
	if n.Size > 0 {
		return strings.TrimRight(string(p), " "), true, nil
	}
	return string(p), true, nil
}
