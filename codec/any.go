package codec

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/schema"
)

// Dynamic accessors used by the printer and the CLI, where the scalar kind
// is only known at runtime. Values cross this boundary in their JSON-shaped
// Go forms: float64 for numbers, string, bool, map[string]any for geo.

// GetAny reads the scalar at the cursor as a JSON-shaped Go value.
// Collections are the buffer package's job, not a scalar read.
func GetAny(b *buffer.Buffer, c buffer.Cursor) (any, bool, error) {
	n := c.Node().Resolve()
	switch n.Kind {
	case schema.Int8:
		v, ok, err := GetInt8(b, c)
		return int64(v), ok, err
	case schema.Int16:
		v, ok, err := GetInt16(b, c)
		return int64(v), ok, err
	case schema.Int32:
		v, ok, err := GetInt32(b, c)
		return int64(v), ok, err
	case schema.Int64:
		return GetInt64(b, c)
	case schema.Uint8:
		v, ok, err := GetUint8(b, c)
		return uint64(v), ok, err
	case schema.Uint16:
		v, ok, err := GetUint16(b, c)
		return uint64(v), ok, err
	case schema.Uint32:
		v, ok, err := GetUint32(b, c)
		return uint64(v), ok, err
	case schema.Uint64:
		return GetUint64(b, c)
	case schema.Float32:
		v, ok, err := GetFloat32(b, c)
		return float64(v), ok, err
	case schema.Float64:
		return GetFloat64(b, c)
	case schema.Bool:
		return GetBool(b, c)
	case schema.String:
		return GetString(b, c)
	case schema.Bytes:
		v, ok, err := GetBytes(b, c)
		if v == nil {
			return nil, ok, err
		}
		return base64.StdEncoding.EncodeToString(v), ok, err
	case schema.Date:
		v, ok, err := GetDate(b, c)
		return v.Format(time.RFC3339Nano), ok, err
	case schema.UUID:
		v, ok, err := GetUUID(b, c)
		return v.String(), ok, err
	case schema.ULID:
		v, ok, err := GetULID(b, c)
		return v.String(), ok, err
	case schema.Decimal:
		units, exp, ok, err := GetDecimal(b, c)
		return DecimalFloat(units, exp), ok, err
	case schema.Geo:
		v, ok, err := GetGeo(b, c)
		return map[string]any{"lat": v.Lat, "lng": v.Lng}, ok, err
	case schema.Enum:
		return GetEnum(b, c)
	}
	return nil, false, fmt.Errorf("%w: cannot read %s as a scalar", buffer.ErrSchemaMismatch, n.Kind)
}

// SetAny writes a JSON-shaped Go value at the cursor, converting to the
// schema's scalar kind.
func SetAny(b *buffer.Buffer, c buffer.Cursor, v any) error {
	n := c.Node().Resolve()
	switch n.Kind {
	case schema.Int8:
		i, err := asInt(v)
		if err != nil {
			return err
		}
		return SetInt8(b, c, int8(i))
	case schema.Int16:
		i, err := asInt(v)
		if err != nil {
			return err
		}
		return SetInt16(b, c, int16(i))
	case schema.Int32:
		i, err := asInt(v)
		if err != nil {
			return err
		}
		return SetInt32(b, c, int32(i))
	case schema.Int64:
		i, err := asInt(v)
		if err != nil {
			return err
		}
		return SetInt64(b, c, i)
	case schema.Uint8:
		i, err := asInt(v)
		if err != nil {
			return err
		}
		return SetUint8(b, c, uint8(i))
	case schema.Uint16:
		i, err := asInt(v)
		if err != nil {
			return err
		}
		return SetUint16(b, c, uint16(i))
	case schema.Uint32:
		i, err := asInt(v)
		if err != nil {
			return err
		}
		return SetUint32(b, c, uint32(i))
	case schema.Uint64:
		i, err := asInt(v)
		if err != nil {
			return err
		}
		return SetUint64(b, c, uint64(i))
	case schema.Float32:
		f, err := asFloat(v)
		if err != nil {
			return err
		}
		return SetFloat32(b, c, float32(f))
	case schema.Float64:
		f, err := asFloat(v)
		if err != nil {
			return err
		}
		return SetFloat64(b, c, f)
	case schema.Bool:
		bv, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: %T is not a bool", ErrBadValue, v)
		}
		return SetBool(b, c, bv)
	case schema.String:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %T is not a string", ErrBadValue, v)
		}
		return SetString(b, c, s)
	case schema.Bytes:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: bytes expect a base64 string", ErrBadValue)
		}
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadValue, err)
		}
		return SetBytes(b, c, raw)
	case schema.Date:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: dates expect an RFC 3339 string", ErrBadValue)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadValue, err)
		}
		return SetDate(b, c, t)
	case schema.UUID:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: uuids expect a string", ErrBadValue)
		}
		u, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadValue, err)
		}
		return SetUUID(b, c, u)
	case schema.ULID:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: ulids expect a string", ErrBadValue)
		}
		u, err := ParseULID(s)
		if err != nil {
			return err
		}
		return SetULID(b, c, u)
	case schema.Decimal:
		f, err := asFloat(v)
		if err != nil {
			return err
		}
		units := int64(f * pow10(n.Exp))
		return SetDecimal(b, c, units)
	case schema.Geo:
		mp, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: geo expects {lat, lng}", ErrBadValue)
		}
		lat, latErr := asFloat(mp["lat"])
		lng, lngErr := asFloat(mp["lng"])
		if latErr != nil || lngErr != nil {
			return fmt.Errorf("%w: geo expects numeric lat/lng", ErrBadValue)
		}
		return SetGeo(b, c, Geo{Lat: lat, Lng: lng})
	case schema.Enum:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: options expect a choice string", ErrBadValue)
		}
		return SetEnum(b, c, s)
	}
	return fmt.Errorf("%w: cannot write %s as a scalar", buffer.ErrSchemaMismatch, n.Kind)
}

// asInt accepts JSON numbers and Go integer types.
func asInt(v any) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case uint64:
		return int64(t), nil
	}
	return 0, fmt.Errorf("%w: %T is not an integer", ErrBadValue, v)
}

// asFloat accepts JSON numbers and Go numeric types.
func asFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case int:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	}
	return 0, fmt.Errorf("%w: %T is not a number", ErrBadValue, v)
}

// pow10 computes 10^exp for small decimal exponents.
func pow10(exp uint8) float64 {
	out := 1.0
	for i := uint8(0); i < exp; i++ {
		out *= 10
	}
	return out
}
