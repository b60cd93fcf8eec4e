package codec

import (
	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/internal/format"
	"github.com/joshuapare/bufkit/schema"
)

// Integer codecs. Signed payloads are sign-biased so every integer is
// byte-comparable; see internal/format.

// SetInt8 writes an i8 value at the cursor.
func SetInt8(b *buffer.Buffer, c buffer.Cursor, v int8) error {
	if _, err := node(c, schema.Int8); err != nil {
		return err
	}
	p := make([]byte, 1)
	format.PutI8(p, 0, v)
	return writeFixed(b, c, p)
}

// GetInt8 reads an i8 value. Absent values report the schema default with
// present=false.
func GetInt8(b *buffer.Buffer, c buffer.Cursor) (int8, bool, error) {
	n, err := node(c, schema.Int8)
	if err != nil {
		return 0, false, err
	}
	p, err := readFixed(b, c, 1)
	if err != nil || p == nil {
		return int8(defaultInt(n)), false, err
	}
	return format.ReadI8(p, 0), true, nil
}

// SetInt16 writes an i16 value at the cursor.
func SetInt16(b *buffer.Buffer, c buffer.Cursor, v int16) error {
	if _, err := node(c, schema.Int16); err != nil {
		return err
	}
	p := make([]byte, 2)
	format.PutI16(p, 0, v)
	return writeFixed(b, c, p)
}

// GetInt16 reads an i16 value.
func GetInt16(b *buffer.Buffer, c buffer.Cursor) (int16, bool, error) {
	n, err := node(c, schema.Int16)
	if err != nil {
		return 0, false, err
	}
	p, err := readFixed(b, c, 2)
	if err != nil || p == nil {
		return int16(defaultInt(n)), false, err
	}
	return format.ReadI16(p, 0), true, nil
}

// SetInt32 writes an i32 value at the cursor.
func SetInt32(b *buffer.Buffer, c buffer.Cursor, v int32) error {
	if _, err := node(c, schema.Int32); err != nil {
		return err
	}
	p := make([]byte, 4)
	format.PutI32(p, 0, v)
	return writeFixed(b, c, p)
}

// GetInt32 reads an i32 value.
func GetInt32(b *buffer.Buffer, c buffer.Cursor) (int32, bool, error) {
	n, err := node(c, schema.Int32)
	if err != nil {
		return 0, false, err
	}
	p, err := readFixed(b, c, 4)
	if err != nil || p == nil {
		return int32(defaultInt(n)), false, err
	}
	return format.ReadI32(p, 0), true, nil
}

// SetInt64 writes an i64 value at the cursor.
func SetInt64(b *buffer.Buffer, c buffer.Cursor, v int64) error {
	if _, err := node(c, schema.Int64); err != nil {
		return err
	}
	p := make([]byte, 8)
	format.PutI64(p, 0, v)
	return writeFixed(b, c, p)
}

// GetInt64 reads an i64 value.
func GetInt64(b *buffer.Buffer, c buffer.Cursor) (int64, bool, error) {
	n, err := node(c, schema.Int64)
	if err != nil {
		return 0, false, err
	}
	p, err := readFixed(b, c, 8)
	if err != nil || p == nil {
		return defaultInt(n), false, err
	}
	return format.ReadI64(p, 0), true, nil
}

// SetUint8 writes a u8 value at the cursor.
func SetUint8(b *buffer.Buffer, c buffer.Cursor, v uint8) error {
	if _, err := node(c, schema.Uint8); err != nil {
		return err
	}
	return writeFixed(b, c, []byte{v})
}

// GetUint8 reads a u8 value.
func GetUint8(b *buffer.Buffer, c buffer.Cursor) (uint8, bool, error) {
	n, err := node(c, schema.Uint8)
	if err != nil {
		return 0, false, err
	}
	p, err := readFixed(b, c, 1)
	if err != nil || p == nil {
		return uint8(defaultUint(n)), false, err
	}
	return p[0], true, nil
}

// SetUint16 writes a u16 value at the cursor.
func SetUint16(b *buffer.Buffer, c buffer.Cursor, v uint16) error {
	if _, err := node(c, schema.Uint16); err != nil {
		return err
	}
	p := make([]byte, 2)
	format.PutU16(p, 0, v)
	return writeFixed(b, c, p)
}

// GetUint16 reads a u16 value.
func GetUint16(b *buffer.Buffer, c buffer.Cursor) (uint16, bool, error) {
	n, err := node(c, schema.Uint16)
	if err != nil {
		return 0, false, err
	}
	p, err := readFixed(b, c, 2)
	if err != nil || p == nil {
		return uint16(defaultUint(n)), false, err
	}
	return format.ReadU16(p, 0), true, nil
}

// SetUint32 writes a u32 value at the cursor.
func SetUint32(b *buffer.Buffer, c buffer.Cursor, v uint32) error {
	if _, err := node(c, schema.Uint32); err != nil {
		return err
	}
	p := make([]byte, 4)
	format.PutU32(p, 0, v)
	return writeFixed(b, c, p)
}

// GetUint32 reads a u32 value.
func GetUint32(b *buffer.Buffer, c buffer.Cursor) (uint32, bool, error) {
	n, err := node(c, schema.Uint32)
	if err != nil {
		return 0, false, err
	}
	p, err := readFixed(b, c, 4)
	if err != nil || p == nil {
		return uint32(defaultUint(n)), false, err
	}
	return format.ReadU32(p, 0), true, nil
}

// SetUint64 writes a u64 value at the cursor.
func SetUint64(b *buffer.Buffer, c buffer.Cursor, v uint64) error {
	if _, err := node(c, schema.Uint64); err != nil {
		return err
	}
	p := make([]byte, 8)
	format.PutU64(p, 0, v)
	return writeFixed(b, c, p)
}

// GetUint64 reads a u64 value.
func GetUint64(b *buffer.Buffer, c buffer.Cursor) (uint64, bool, error) {
	n, err := node(c, schema.Uint64)
	if err != nil {
		return 0, false, err
	}
	p, err := readFixed(b, c, 8)
	if err != nil || p == nil {
		return defaultUint(n), false, err
	}
	return format.ReadU64(p, 0), true, nil
}

// defaultInt returns a node's declared signed default, or 0.
func defaultInt(n *schema.Node) int64 {
	if v, ok := n.Default.(int64); ok {
		return v
	}
	return 0
}

// defaultUint returns a node's declared unsigned default, or 0.
func defaultUint(n *schema.Node) uint64 {
	if v, ok := n.Default.(uint64); ok {
		return v
	}
	return 0
}
