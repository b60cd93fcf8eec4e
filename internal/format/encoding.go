package format

import "encoding/binary"

// Binary encoding utilities for big-endian integers.
//
// Every multi-byte integer in the bufkit format, addresses included, is
// big-endian. That is what makes a sortable buffer byte-comparable: two
// encoded values compare under bytes.Compare exactly as the decoded values
// compare numerically.
//
// Implementation: Uses encoding/binary.BigEndian
//
// Performance Note: Go's standard library implementation is already highly
// optimized by the compiler. Unsafe pointer implementations provide no
// measurable benefit and add complexity; binary.BigEndian calls inline well.

// PutU16 writes a uint16 value to the buffer at the specified offset in big-endian format.
func PutU16(b []byte, off int, v uint16) {
	binary.BigEndian.PutUint16(b[off:off+2], v)
}

// PutU32 writes a uint32 value to the buffer at the specified offset in big-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:off+4], v)
}

// PutU64 writes a uint64 value to the buffer at the specified offset in big-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.BigEndian.PutUint64(b[off:off+8], v)
}

// ReadU16 reads a uint16 value from the buffer at the specified offset in big-endian format.
func ReadU16(b []byte, off int) uint16 {
	return binary.BigEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in big-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off : off+4])
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in big-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.BigEndian.Uint64(b[off : off+8])
}

// PutAddr writes an address at the specified offset using the given address
// width (2 or 4 bytes).
func PutAddr(b []byte, off int, width int, addr uint32) {
	if width == 2 {
		binary.BigEndian.PutUint16(b[off:off+2], uint16(addr))
		return
	}
	binary.BigEndian.PutUint32(b[off:off+4], addr)
}

// ReadAddr reads an address from the specified offset using the given address
// width (2 or 4 bytes).
func ReadAddr(b []byte, off int, width int) uint32 {
	if width == 2 {
		return uint32(binary.BigEndian.Uint16(b[off : off+2]))
	}
	return binary.BigEndian.Uint32(b[off : off+4])
}
