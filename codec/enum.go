package codec

import (
	"fmt"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/schema"
)

// SetEnum writes an enum value at the cursor, stored as the u8 index of the
// choice in the schema's declared list.
func SetEnum(b *buffer.Buffer, c buffer.Cursor, choice string) error {
	n, err := node(c, schema.Enum)
	if err != nil {
		return err
	}
	idx, ok := n.ChoiceIndex(choice)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChoice, choice)
	}
	return writeFixed(b, c, []byte{idx})
}

// GetEnum reads an enum value's choice name.
func GetEnum(b *buffer.Buffer, c buffer.Cursor) (string, bool, error) {
	n, err := node(c, schema.Enum)
	if err != nil {
		return "", false, err
	}
	p, err := readFixed(b, c, 1)
	if err != nil || p == nil {
		def, _ := n.Default.(string)
		return def, false, err
	}
	if int(p[0]) >= len(n.Choices) {
		return "", false, fmt.Errorf("%w: choice index %d of %d", buffer.ErrCorrupt, p[0], len(n.Choices))
	}
	return n.Choices[p[0]], true, nil
}
