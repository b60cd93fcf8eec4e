package format

import "math"

// Scalar payload encodings.
//
// Signed integers are stored sign-biased: the value is XORed with the sign
// bit of its width, which maps the signed range onto the unsigned range while
// preserving order. Combined with big-endian byte order this makes every
// integer payload directly byte-comparable.

const (
	biasI8  = 0x80
	biasI16 = 0x8000
	biasI32 = 0x80000000
	biasI64 = 0x8000000000000000
)

// PutI8 writes a sign-biased int8 at off.
func PutI8(b []byte, off int, v int8) {
	b[off] = uint8(v) ^ biasI8
}

// ReadI8 reads a sign-biased int8 at off.
func ReadI8(b []byte, off int) int8 {
	return int8(b[off] ^ biasI8)
}

// PutI16 writes a sign-biased big-endian int16 at off.
func PutI16(b []byte, off int, v int16) {
	PutU16(b, off, uint16(v)^biasI16)
}

// ReadI16 reads a sign-biased big-endian int16 at off.
func ReadI16(b []byte, off int) int16 {
	return int16(ReadU16(b, off) ^ biasI16)
}

// PutI32 writes a sign-biased big-endian int32 at off.
func PutI32(b []byte, off int, v int32) {
	PutU32(b, off, uint32(v)^biasI32)
}

// ReadI32 reads a sign-biased big-endian int32 at off.
func ReadI32(b []byte, off int) int32 {
	return int32(ReadU32(b, off) ^ biasI32)
}

// PutI64 writes a sign-biased big-endian int64 at off.
func PutI64(b []byte, off int, v int64) {
	PutU64(b, off, uint64(v)^biasI64)
}

// ReadI64 reads a sign-biased big-endian int64 at off.
func ReadI64(b []byte, off int) int64 {
	return int64(ReadU64(b, off) ^ biasI64)
}

// PutF32 writes an IEEE-754 float32 as big-endian bits at off.
// Float payloads are NOT byte-comparable; float schemas are never sortable.
func PutF32(b []byte, off int, v float32) {
	PutU32(b, off, math.Float32bits(v))
}

// ReadF32 reads an IEEE-754 float32 from big-endian bits at off.
func ReadF32(b []byte, off int) float32 {
	return math.Float32frombits(ReadU32(b, off))
}

// PutF64 writes an IEEE-754 float64 as big-endian bits at off.
func PutF64(b []byte, off int, v float64) {
	PutU64(b, off, math.Float64bits(v))
}

// ReadF64 reads an IEEE-754 float64 from big-endian bits at off.
func ReadF64(b []byte, off int) float64 {
	return math.Float64frombits(ReadU64(b, off))
}
