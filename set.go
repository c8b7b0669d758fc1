package docset

import (
	"iter"
	"math"
	"sync"
	"unsafe"
)

const (
	// NoMoreDocs is returned by iterators once they are exhausted.
	// It is never a member of a Set.
	NoMoreDocs uint32 = math.MaxUint32

	// DefaultIndexInterval is the default number of sequences between two
	// skip index entries.
	DefaultIndexInterval = 24

	// MinIndexInterval is the smallest accepted index interval. A sequence
	// saves at least one byte and an index entry costs up to 8, so denser
	// indexes could make a set larger than a plain bitset.
	MinIndexInterval = 8
)

// Set is an immutable compressed set of doc IDs.
//
// A Set is created by a Builder, a WordBuilder, Intersect, Union or one of
// the decoding and conversion functions. It is safe for concurrent use.
type Set struct {
	data          []byte
	cardinality   uint64
	indexInterval int
	index         skipIndex
}

var emptySet = sync.OnceValue(func() *Set {
	return &Set{
		indexInterval: DefaultIndexInterval,
		index:         singleZeroIndex(),
	}
})

// Empty returns the shared empty set.
func Empty() *Set {
	return emptySet()
}

// Iterator returns a new iterator positioned before the first doc ID.
func (s *Set) Iterator() *Iterator {
	return newIterator(s.data, s.cardinality, s.indexInterval, s.index)
}

// All returns an iterator over the doc IDs in ascending order.
func (s *Set) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.Iterator()
		for doc := it.NextDoc(); doc != NoMoreDocs; doc = it.NextDoc() {
			if !yield(doc) {
				return
			}
		}
	}
}

// Cardinality returns the number of doc IDs in the set in constant time.
func (s *Set) Cardinality() uint64 {
	return s.cardinality
}

// IsEmpty reports whether the set holds no doc IDs.
func (s *Set) IsEmpty() bool {
	return s.cardinality == 0
}

// IndexInterval returns the number of sequences between skip index entries.
func (s *Set) IndexInterval() int {
	return s.indexInterval
}

// SizeInBytes estimates the memory held by the set.
func (s *Set) SizeInBytes() uint64 {
	return uint64(unsafe.Sizeof(*s)) +
		uint64(cap(s.data)) +
		uint64(cap(s.index.positions))*4 +
		uint64(cap(s.index.wordNums))*4
}
