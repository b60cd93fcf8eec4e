package codec

import (
	"fmt"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/internal/format"
	"github.com/joshuapare/bufkit/schema"
)

// Geo values are fixed-point latitude/longitude pairs at three precisions:
//
//	geo4:  two i16 at 1e2  scale (~1.1 km)
//	geo8:  two i32 at 1e7  scale (~1.1 cm)
//	geo16: two i64 at 1e9  scale (sub-millimeter)
//
// Components are sign-biased big-endian, so geo payloads sort byte-wise by
// latitude then longitude.

// Geo is a decoded coordinate pair in degrees.
type Geo struct {
	Lat float64
	Lng float64
}

// geoScale returns the fixed-point multiplier for a geo payload width.
func geoScale(size int) (float64, error) {
	switch size {
	case 4:
		return 1e2, nil
	case 8:
		return 1e7, nil
	case 16:
		return 1e9, nil
	}
	return 0, fmt.Errorf("%w: geo payload width %d", buffer.ErrSchemaMismatch, size)
}

// SetGeo writes a coordinate pair at the cursor.
func SetGeo(b *buffer.Buffer, c buffer.Cursor, g Geo) error {
	n, err := node(c, schema.Geo)
	if err != nil {
		return err
	}
	if g.Lat < -90 || g.Lat > 90 || g.Lng < -180 || g.Lng > 180 {
		return fmt.Errorf("%w: lat %v lng %v", ErrBadValue, g.Lat, g.Lng)
	}
	scale, err := geoScale(n.Size)
	if err != nil {
		return err
	}
	p := make([]byte, n.Size)
	half := n.Size / 2
	switch n.Size {
	case 4:
		format.PutI16(p, 0, int16(g.Lat*scale))
		format.PutI16(p, half, int16(g.Lng*scale))
	case 8:
		format.PutI32(p, 0, int32(g.Lat*scale))
		format.PutI32(p, half, int32(g.Lng*scale))
	default:
		format.PutI64(p, 0, int64(g.Lat*scale))
		format.PutI64(p, half, int64(g.Lng*scale))
	}
	return writeFixed(b, c, p)
}

// GetGeo reads a coordinate pair.
func GetGeo(b *buffer.Buffer, c buffer.Cursor) (Geo, bool, error) {
	n, err := node(c, schema.Geo)
	if err != nil {
		return Geo{}, false, err
	}
	scale, err := geoScale(n.Size)
	if err != nil {
		return Geo{}, false, err
	}
	p, err := readFixed(b, c, n.Size)
	if err != nil || p == nil {
		return Geo{}, false, err
	}
	half := n.Size / 2
	var g Geo
	switch n.Size {
	case 4:
		g.Lat = float64(format.ReadI16(p, 0)) / scale
		g.Lng = float64(format.ReadI16(p, half)) / scale
	case 8:
		g.Lat = float64(format.ReadI32(p, 0)) / scale
		g.Lng = float64(format.ReadI32(p, half)) / scale
	default:
		g.Lat = float64(format.ReadI64(p, 0)) / scale
		g.Lng = float64(format.ReadI64(p, half)) / scale
	}
	return g, true, nil
}
