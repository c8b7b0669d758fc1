// Package conv provides checked integer conversions for values decoded from
// untrusted byte streams.
//
// Use cases:
//   - Lengths and counts read as uvarints from a serialized set
//   - Skip index entries that must fit the in-memory uint32 representation
//
// For conversions that are provably safe by construction (loop indices,
// offsets into a buffer this package produced), use direct casts instead.
package conv
