package codec

import (
	"github.com/google/uuid"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/schema"
)

// SetUUID writes a uuid value at the cursor: the 16 raw bytes, which for
// RFC 4122 UUIDs compare byte-wise in their canonical string order.
func SetUUID(b *buffer.Buffer, c buffer.Cursor, u uuid.UUID) error {
	if _, err := node(c, schema.UUID); err != nil {
		return err
	}
	return writeFixed(b, c, u[:])
}

// NewUUID generates a random v4 UUID and writes it at the cursor.
func NewUUID(b *buffer.Buffer, c buffer.Cursor) (uuid.UUID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, err
	}
	return u, SetUUID(b, c, u)
}

// GetUUID reads a uuid value.
func GetUUID(b *buffer.Buffer, c buffer.Cursor) (uuid.UUID, bool, error) {
	if _, err := node(c, schema.UUID); err != nil {
		return uuid.Nil, false, err
	}
	p, err := readFixed(b, c, 16)
	if err != nil || p == nil {
		return uuid.Nil, false, err
	}
	var u uuid.UUID
	copy(u[:], p)
	return u, true, nil
}
