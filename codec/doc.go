// Package codec reads and writes scalar payloads through buffer cursors.
//
// # Overview
//
// The buffer package resolves where a value lives; codec decides what the
// bytes there mean. Every setter resolves the cursor's value-address
// (allocating on first write), then encodes its payload in place. Every
// getter returns (value, present, error): absence is normal, not an error,
// and an absent read reports the schema's default value with present=false.
//
// # Encodings
//
// Signed integers are stored sign-biased big-endian so encoded payloads
// sort byte-wise like the decoded values. Floats are big-endian IEEE bits
// and are never sortable. Variable-width strings and bytes carry a u16
// length prefix; fixed-width strings are space-padded and truncated to the
// schema size. Fixed-width (sortable) strings are NFC-normalized before
// encoding so canonically-equivalent text compares equal byte-wise.
//
// In-place rules: fixed-width payloads always overwrite their allocation;
// a variable-width payload overwrites only when the new encoding is exactly
// the old size, otherwise a fresh allocation is made and the old bytes are
// orphaned until compaction.
package codec
