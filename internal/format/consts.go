// Package format houses the low-level byte layout of the bufkit wire format.
// The goal is to keep the encoding focused, allocation-free where possible,
// and independent from the public API so higher-level packages can orchestrate
// the data in a more ergonomic form.
package format

const (
	// ProtocolVersion is written at offset 0 of every buffer.
	ProtocolVersion = 1

	// Address-size flag values, written at offset 1 of every buffer.
	AddrFlag32 = 0 // addresses are 4 bytes wide
	AddrFlag16 = 1 // addresses are 2 bytes wide

	// Root header field offsets.
	VersionOffset  = 0
	AddrFlagOffset = 1
	RootPtrOffset  = 2

	// MaxSize16 and MaxSize32 are the arena ceilings imposed by the two
	// address widths. An allocation whose end would reach the ceiling fails.
	MaxSize16 = 1 << 16
	MaxSize32 = 1 << 32

	// MaxMapKeyLen is the longest map key the format can store. Keys are
	// length-prefixed with a single byte.
	MaxMapKeyLen = 255

	// MaxStrLen is the longest variable-width string or bytes payload.
	// Variable payloads are length-prefixed with two bytes.
	MaxStrLen = 65535

	// VtableSlots is the number of value-address slots per vtable record.
	VtableSlots = 4

	// MaxVtableHops caps the walk along a vtable chain. A well-formed chain
	// for the widest practical table is far shorter; exceeding the cap means
	// the chain is cyclic or otherwise corrupt.
	MaxVtableHops = 64

	// MaxVtableValues is the most columns a table, or values a tuple, can
	// address through a full vtable chain. Schemas beyond it are rejected
	// at parse time.
	MaxVtableValues = MaxVtableHops * VtableSlots

	// MaxItemHops caps the walk along a map or list item chain. Item indices
	// are 16-bit, so no well-formed chain exceeds 65536 records.
	MaxItemHops = 1 << 16
)

// RootHeaderSize returns the number of reserved bytes at the front of a
// buffer: version byte + address-size byte + one root pointer. Real data is
// never placed below this offset, which is what makes address 0 usable as
// the absent sentinel.
func RootHeaderSize(addrWidth int) int {
	return RootPtrOffset + addrWidth
}
