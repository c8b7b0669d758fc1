package docset

import (
	"math"
	"sync"
)

// skipIndex maps every indexInterval-th sequence to its byte offset.
//
// Entry i describes sequence i*indexInterval: positions[i] is the offset of
// its token and wordNums[i]-1 is the word number reached just before it.
// Both slices are non-decreasing and entry 0 is always (0, 0).
type skipIndex struct {
	positions []uint32
	wordNums  []uint32
}

// singleZeroIndex is shared by every set with at most one index entry.
var singleZeroIndex = sync.OnceValue(func() skipIndex {
	zero := []uint32{0}
	return skipIndex{positions: zero, wordNums: zero}
})

func (ix skipIndex) len() int {
	return len(ix.wordNums)
}

// indexEntries returns the number of index entries for numSequences sequences.
func indexEntries(numSequences, indexInterval int) int {
	return (numSequences-1)/indexInterval + 1
}

// buildSkipIndex re-decodes data and snapshots the cursor every
// indexInterval sequences.
func buildSkipIndex(data []byte, cardinality uint64, numSequences, indexInterval int) skipIndex {
	count := indexEntries(numSequences, indexInterval)
	if count <= 1 {
		return singleZeroIndex()
	}

	ix := skipIndex{
		positions: make([]uint32, 1, count),
		wordNums:  make([]uint32, 1, count),
	}
	it := newIterator(data, cardinality, math.MaxInt32, singleZeroIndex())
	for i := 1; i < count; i++ {
		for j := 0; j < indexInterval; j++ {
			if !it.readSequence() {
				panic("docset: fewer sequences than counted while indexing")
			}
			it.skipSequence()
		}
		ix.positions = append(ix.positions, uint32(it.pos))
		ix.wordNums = append(ix.wordNums, uint32(it.wordNum+1))
	}
	return ix
}

// search returns the last entry whose word number is <= target. It starts
// at entry lo, which must satisfy wordNums[lo] <= target, doubles the window
// until it contains target, then binary searches inside it.
func (ix skipIndex) search(lo, target int) int {
	size := ix.len()
	hi := lo + 1
	for {
		if hi >= size {
			hi = size - 1
			break
		}
		if int(ix.wordNums[hi]) >= target {
			break
		}
		newLo := hi
		hi += (hi - lo) << 1
		lo = newLo
	}

	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		if int(ix.wordNums[mid]) <= target {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return hi
}
