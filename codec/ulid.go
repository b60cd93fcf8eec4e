package codec

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/schema"
)

// ULID is a 128-bit lexicographically sortable identifier: 48 bits of
// millisecond timestamp followed by 80 random bits. The raw byte order is
// the sort order, which is exactly what a sortable payload needs.
type ULID [16]byte

// crockford is the base32 alphabet ULIDs render with (no I, L, O, U).
const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID builds a ULID from a timestamp and an entropy source. A nil
// entropy source uses crypto/rand.
func NewULID(t time.Time, entropy io.Reader) (ULID, error) {
	if entropy == nil {
		entropy = rand.Reader
	}
	var u ULID
	ms := uint64(t.UnixMilli())
	u[0] = byte(ms >> 40)
	u[1] = byte(ms >> 32)
	u[2] = byte(ms >> 24)
	u[3] = byte(ms >> 16)
	u[4] = byte(ms >> 8)
	u[5] = byte(ms)
	if _, err := io.ReadFull(entropy, u[6:]); err != nil {
		return ULID{}, fmt.Errorf("ulid entropy: %w", err)
	}
	return u, nil
}

// Time returns the ULID's embedded timestamp in UTC.
func (u ULID) Time() time.Time {
	ms := uint64(u[0])<<40 | uint64(u[1])<<32 | uint64(u[2])<<24 |
		uint64(u[3])<<16 | uint64(u[4])<<8 | uint64(u[5])
	return time.UnixMilli(int64(ms)).UTC()
}

// String renders the ULID as 26 Crockford base32 characters.
func (u ULID) String() string {
	// 128 bits render as 26 5-bit groups, left-padded by 2 zero bits.
	out := make([]byte, 26)
	var acc uint64
	bits := 0
	pos := 25
	for i := 15; i >= 0; i-- {
		acc |= uint64(u[i]) << bits
		bits += 8
		for bits >= 5 && pos >= 0 {
			out[pos] = crockford[acc&0x1F]
			acc >>= 5
			bits -= 5
			pos--
		}
	}
	for pos >= 0 {
		out[pos] = crockford[acc&0x1F]
		acc >>= 5
		pos--
	}
	return string(out)
}

// ParseULID decodes a 26-character Crockford base32 ULID string.
func ParseULID(s string) (ULID, error) {
	if len(s) != 26 {
		return ULID{}, fmt.Errorf("%w: ulid must be 26 characters", ErrBadValue)
	}
	var acc uint64
	bits := 0
	pos := 15
	var u ULID
	for i := 25; i >= 0; i-- {
		v := decodeCrockford(s[i])
		if v < 0 {
			return ULID{}, fmt.Errorf("%w: ulid character %q", ErrBadValue, s[i])
		}
		acc |= uint64(v) << bits
		bits += 5
		for bits >= 8 && pos >= 0 {
			u[pos] = byte(acc)
			acc >>= 8
			bits -= 8
			pos--
		}
	}
	return u, nil
}

// decodeCrockford maps one Crockford base32 character to its value.
func decodeCrockford(ch byte) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'A' && ch <= 'Z':
		for i := 10; i < len(crockford); i++ {
			if crockford[i] == ch {
				return i
			}
		}
	case ch >= 'a' && ch <= 'z':
		return decodeCrockford(ch - 'a' + 'A')
	}
	return -1
}

// SetULID writes a ulid value at the cursor.
func SetULID(b *buffer.Buffer, c buffer.Cursor, u ULID) error {
	if _, err := node(c, schema.ULID); err != nil {
		return err
	}
	return writeFixed(b, c, u[:])
}

// GetULID reads a ulid value.
func GetULID(b *buffer.Buffer, c buffer.Cursor) (ULID, bool, error) {
	if _, err := node(c, schema.ULID); err != nil {
		return ULID{}, false, err
	}
	p, err := readFixed(b, c, 16)
	if err != nil || p == nil {
		return ULID{}, false, err
	}
	var u ULID
	copy(u[:], p)
	return u, true, nil
}
