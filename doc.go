// Package docset provides a compressed, ordered set of document IDs for
// search engines.
//
// A Set stores posting lists, live-docs masks and filter results in a
// word-aligned hybrid encoding over 8-bit words. It stays within a small
// constant factor of a plain bitset for incompressible sets and is much
// smaller for sparse or very dense ones. Sets are immutable once built and
// support forward iteration with sub-linear skip-ahead through a sparse
// skip index.
//
// # Quick Start
//
//	b, _ := docset.NewBuilder()
//	for _, id := range []uint32{0, 1, 2, 8, 9, 16} {
//	    _ = b.Add(id) // strictly increasing
//	}
//	set := b.Build()
//
//	it := set.Iterator()
//	for doc := it.NextDoc(); doc != docset.NoMoreDocs; doc = it.NextDoc() {
//	    fmt.Println(doc)
//	}
//
// # Encoding
//
// Doc IDs are grouped into words of 8: word w holds doc IDs 8w..8w+7, bit i
// set meaning doc 8w+i is present. A word of 0x00 or 0xFF is clean, any
// other word is dirty. The stream is a concatenation of sequences, each a
// run of clean words followed by literal dirty words:
//
//	bit 7     direction (1 = clean run is all-ones, 0 = all-zeros)
//	bit 6     clean-length continuation flag
//	bits 5-4  clean-length low bits (length-2 except for the first sequence)
//	bit 3     dirty-length continuation flag
//	bits 2-0  dirty-length low bits
//	[uvarint] clean-length high bits, iff bit 6
//	[uvarint] dirty-length high bits, iff bit 3
//	[bytes]   dirty words
//
// Dirty words inside a sequence never hold two consecutive zero or two
// consecutive 0xFF bytes, so the decoder looks ahead at most two bytes.
//
// # Skip Index
//
// Every IndexInterval sequences the builder records the byte offset and word
// number reached. Iterator.Advance uses a doubling then binary search over
// these entries when the target is far away, and scans sequence headers
// otherwise. A smaller interval makes Advance faster at the cost of memory;
// it never changes results.
//
// # Set Algebra
//
// Intersect and Union operate on the encoded words of their inputs without
// materializing doc IDs and produce a new Set.
//
// # Serialization
//
// Marshal and WriteTo encode a Set with an optional LZ4 or zstd compressed
// payload. Unmarshal and ReadFrom validate the whole stream before returning
// a Set, so untrusted bytes fail with an error wrapping ErrCorrupt instead
// of panicking later during iteration.
//
// # Interop
//
// FromRoaring, FromBitSet, Set.ToRoaring and Set.ToBitSet convert between
// Sets and roaring bitmaps or plain bitsets.
//
// # Thread Safety
//
// Builders are single-owner. A built Set is immutable and safe to share;
// each Iterator belongs to a single goroutine.
package docset
