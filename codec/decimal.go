package codec

import (
	"math"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/internal/format"
	"github.com/joshuapare/bufkit/schema"
)

// Decimal values store only the i64 mantissa; the base-10 exponent is
// schema-level, shared by every value of the node. Mantissas are
// sign-biased big-endian, so equal-exponent decimals sort byte-wise.

// SetDecimal writes a decimal's mantissa at the cursor.
func SetDecimal(b *buffer.Buffer, c buffer.Cursor, units int64) error {
	if _, err := node(c, schema.Decimal); err != nil {
		return err
	}
	p := make([]byte, 8)
	format.PutI64(p, 0, units)
	return writeFixed(b, c, p)
}

// GetDecimal reads a decimal's mantissa and the schema exponent.
func GetDecimal(b *buffer.Buffer, c buffer.Cursor) (units int64, exp uint8, present bool, err error) {
	n, err := node(c, schema.Decimal)
	if err != nil {
		return 0, 0, false, err
	}
	p, err := readFixed(b, c, 8)
	if err != nil || p == nil {
		return defaultInt(n), n.Exp, false, err
	}
	return format.ReadI64(p, 0), n.Exp, true, nil
}

// DecimalFloat converts a (mantissa, exponent) pair to float64 for display.
// The float is lossy; the stored mantissa is the source of truth.
func DecimalFloat(units int64, exp uint8) float64 {
	return float64(units) / math.Pow10(int(exp))
}
