// Package schema parses and represents bufkit schemas.
//
// # Overview
//
// A schema describes the shape of every value a buffer can hold. It is parsed
// once from a JSON document and then shared, read-only, by every buffer of
// that type. The parsed form is a tree of Node values, one per typed location
// in the data model.
//
// # Schema Documents
//
// Schemas are JSON objects with a "type" field and type-specific fields:
//
//	{"type": "table", "columns": [
//	    ["name", {"type": "string"}],
//	    ["age",  {"type": "u8", "default": 0}]
//	]}
//
//	{"type": "list", "of": {"type": "string"}}
//	{"type": "map", "value": {"type": "i64"}}
//	{"type": "tuple", "sorted": true, "values": [
//	    {"type": "u8"}, {"type": "string", "size": 8}
//	]}
//	{"type": "option", "choices": ["pending", "active", "done"]}
//	{"type": "portal", "to": "children"}
//
// The "any" type declares an untyped slot: its payload is opaque bytes the
// format stores but cannot interpret. No codec reads or writes it, and
// because compaction only walks values it can interpret, "any" payloads do
// not survive a compaction.
//
// # Sortability
//
// A node is sortable when its payload is fixed-width and big-endian
// order-preserving, so raw byte comparison of two payloads matches comparing
// the decoded values. Integers, bool, date, uuid, ulid, decimal, geo and enum
// are always sortable; strings and bytes only with an explicit fixed "size";
// floats and collections never. A tuple marked "sorted" requires every child
// to be sortable and is validated at parse time, not at write time.
//
// # Sharing
//
// Node trees are immutable after Parse returns. Many buffers, on many
// goroutines, may read one tree concurrently; only the per-buffer arena
// needs exclusive ownership.
package schema
