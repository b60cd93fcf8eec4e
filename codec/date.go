package codec

import (
	"time"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/internal/format"
	"github.com/joshuapare/bufkit/schema"
)

// SetDate writes a date value at the cursor: unsigned milliseconds since
// the Unix epoch, big-endian, so later dates sort after earlier ones.
func SetDate(b *buffer.Buffer, c buffer.Cursor, t time.Time) error {
	if _, err := node(c, schema.Date); err != nil {
		return err
	}
	p := make([]byte, 8)
	format.PutU64(p, 0, uint64(t.UnixMilli()))
	return writeFixed(b, c, p)
}

// GetDate reads a date value in UTC.
func GetDate(b *buffer.Buffer, c buffer.Cursor) (time.Time, bool, error) {
	n, err := node(c, schema.Date)
	if err != nil {
		return time.Time{}, false, err
	}
	p, err := readFixed(b, c, 8)
	if err != nil || p == nil {
		def, _ := n.Default.(uint64)
		return time.UnixMilli(int64(def)).UTC(), false, err
	}
	return time.UnixMilli(int64(format.ReadU64(p, 0))).UTC(), true, nil
}
