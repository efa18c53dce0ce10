// Package nbt implements the NBT (Named Binary Tag) serialization format:
// a self-describing, recursively nested, big-endian binary encoding of
// typed hierarchical data.
//
// # Data Model
//
// Scalars: byte, short, int, long, float, double, string
// Arrays:  byte array, int array, long array
// Containers: list (homogeneous), compound (name → tag map)
//
// Every value on the wire is preceded by a one-byte type id. A serialized
// document is a single named compound: id, length-prefixed UTF-8 name,
// then compound payload terminated by a 0x00 byte.
//
// # Wire Format
//
//	document:  u8 id(=10) | name | compound payload
//	name/str:  u16 length | length UTF-8 bytes
//	compound:  (u8 id | name | payload)* | 0x00
//	list:      u8 element id | i32 count(>=1) | count payloads
//	arrays:    i32 count(>=1) | count elements (1/4/8 bytes each)
//
// All multi-byte values are big-endian. Lists and numeric arrays must hold
// at least one element: an empty list has no way to record its element
// type, and the format rejects empty numeric arrays for symmetry. An empty
// compound is legal (terminator with zero entries).
//
// # Usage
//
//	doc, err := nbt.Decode(data)
//	...
//	out, err := nbt.Encode(doc)
//
// Compressed files (gzip or zlib, the conventional on-disk containers) are
// handled by ReadFile/WriteFile, which sniff the compression on read.
//
// # Limits
//
// Decoding and encoding recurse once per nesting level, so a pathologically
// deep tree can exhaust the goroutine stack. Inputs at that depth are far
// outside anything the format is used for, and the codec does not guard
// against them.
package nbt
