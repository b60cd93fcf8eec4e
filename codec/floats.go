package codec

import (
	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/internal/format"
	"github.com/joshuapare/bufkit/schema"
)

// SetFloat32 writes an f32 value at the cursor.
func SetFloat32(b *buffer.Buffer, c buffer.Cursor, v float32) error {
	if _, err := node(c, schema.Float32); err != nil {
		return err
	}
	p := make([]byte, 4)
	format.PutF32(p, 0, v)
	return writeFixed(b, c, p)
}

// GetFloat32 reads an f32 value.
func GetFloat32(b *buffer.Buffer, c buffer.Cursor) (float32, bool, error) {
	n, err := node(c, schema.Float32)
	if err != nil {
		return 0, false, err
	}
	p, err := readFixed(b, c, 4)
	if err != nil || p == nil {
		return float32(defaultFloat(n)), false, err
	}
	return format.ReadF32(p, 0), true, nil
}

// SetFloat64 writes an f64 value at the cursor.
func SetFloat64(b *buffer.Buffer, c buffer.Cursor, v float64) error {
	if _, err := node(c, schema.Float64); err != nil {
		return err
	}
	p := make([]byte, 8)
	format.PutF64(p, 0, v)
	return writeFixed(b, c, p)
}

// GetFloat64 reads an f64 value.
func GetFloat64(b *buffer.Buffer, c buffer.Cursor) (float64, bool, error) {
	n, err := node(c, schema.Float64)
	if err != nil {
		return 0, false, err
	}
	p, err := readFixed(b, c, 8)
	if err != nil || p == nil {
		return defaultFloat(n), false, err
	}
	return format.ReadF64(p, 0), true, nil
}

// defaultFloat returns a node's declared float default, or 0.
func defaultFloat(n *schema.Node) float64 {
	if v, ok := n.Default.(float64); ok {
		return v
	}
	return 0
}
