// Package compress wraps a serialized set payload in an optionally
// compressed block.
//
// Block format (little endian):
//
//	[UncompressedSize uint32][CompressedSize uint32][Data...]
//
// A CompressedSize of 0 means Data holds the payload verbatim. Blocks fall
// back to verbatim storage when compression saves less than 10%.
//
// Supported algorithms:
//   - LZ4: fast block compression, good for sets read on hot paths
//   - Zstd: better ratio, good for cold sets kept for a long time
package compress
