// Package buffer implements the bufkit arena, cursor addressing scheme, and
// the collection algorithms built on it.
//
// # Overview
//
// A buffer is a single byte arena holding one root value described by a
// shared schema. Values reference each other through offsets ("addresses")
// inside the arena; address 0 is reserved to mean "absent". Mutation happens
// in place: fixed-width payloads are overwritten where they sit, and anything
// that outgrows its allocation is re-allocated at the end of the arena, with
// the old bytes orphaned until compaction rebuilds a dense copy.
//
// # Buffer Layout
//
// Every buffer starts with a small header followed by arena content:
//
//	offset 0: protocol version (u8)
//	offset 1: address-size flag (u8): 0 = 32-bit, 1 = 16-bit
//	offset 2: root pointer (2 or 4 bytes)
//
// All multi-byte integers, addresses included, are big-endian.
//
// # Pointer Kinds
//
// Each location holding a value is one of a closed set of fixed-width record
// shapes, selected by the schema kind of the value's parent collection:
//
//	Scalar:    value-address
//	List item: value-address, next-address, index (u16)
//	Map item:  value-address, next-address, key-address
//	Vtable:    4 value-address slots, next-vtable-address
//
// Table and tuple children live in vtable slots, which are plain scalar
// addresses; the vtable shape itself is internal to the chain walk.
//
// # Cursors
//
// A Cursor is an ephemeral (offset, schema) pair. It is recomputed on every
// traversal step and must never be stored across mutating operations: a
// write can re-allocate a payload, and compaction replaces the arena
// entirely.
//
// # Compaction
//
// Compact rebuilds a dense copy by walking every live value into a fresh
// arena. Only values the schema can interpret are walked: payloads of the
// untyped "any" kind are opaque and are dropped by the rebuild. Savings
// reports exactly the size Compact would produce.
//
// # Safety
//
// Buffers are not validated before traversal. Every byte-level read and
// write is bounds-checked and a malformed buffer surfaces as ErrCorrupt
// rather than a panic or an out-of-range read, but a corrupt buffer can
// still produce garbage values. Operations on one buffer must be externally
// serialized; the parsed schema alone is safe to share across goroutines.
package buffer
