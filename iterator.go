package docset

import (
	"fmt"
	"math"
	"math/bits"
)

// noMoreWords is the word number of an exhausted iterator.
const noMoreWords = math.MaxInt

// DocIDIterator is a forward-only source of strictly increasing doc IDs
// that returns NoMoreDocs once exhausted.
type DocIDIterator interface {
	NextDoc() uint32
}

var _ DocIDIterator = (*Iterator)(nil)

// Iterator decodes a Set in ascending doc ID order.
//
// An Iterator is not safe for concurrent use; create one per goroutine.
// Iterators over the same Set are independent.
type Iterator struct {
	data           []byte
	pos            int
	cardinality    uint64
	indexInterval  int
	index          skipIndex
	indexThreshold int

	// words left in the current sequence
	onesLength  int
	dirtyLength int

	wordNum     int  // last decoded word, -1 before the first
	word        byte // value of word wordNum
	pending     byte // bits of word not yet returned as doc IDs
	sequenceNum int  // index of the current sequence, -1 before the first

	docID   uint32
	started bool
}

// indexThreshold returns the distance in words beyond which Advance
// consults the skip index. A short sequence covers about 3 words and
// scanning fewer than 3*indexInterval sequences is cheaper than searching.
func indexThreshold(indexInterval int) int {
	if indexInterval > math.MaxInt/9 {
		return math.MaxInt
	}
	return 3 * 3 * indexInterval
}

func newIterator(data []byte, cardinality uint64, indexInterval int, index skipIndex) *Iterator {
	return &Iterator{
		data:           data,
		cardinality:    cardinality,
		indexInterval:  indexInterval,
		index:          index,
		indexThreshold: indexThreshold(indexInterval),
		wordNum:        -1,
		sequenceNum:    -1,
		docID:          NoMoreDocs,
	}
}

// DocID returns the current doc ID, or NoMoreDocs if the iterator has not
// been positioned yet or is exhausted.
func (it *Iterator) DocID() uint32 {
	return it.docID
}

// Cost returns the exact number of doc IDs in the underlying set.
func (it *Iterator) Cost() uint64 {
	return it.cardinality
}

// WordNum returns the number of the current word: -1 before the first word
// and math.MaxInt once exhausted.
func (it *Iterator) WordNum() int {
	return it.wordNum
}

// NextDoc advances to the next doc ID and returns it, or NoMoreDocs.
func (it *Iterator) NextDoc() uint32 {
	it.started = true
	if it.pending == 0 {
		it.nextWord()
		if it.wordNum == noMoreWords {
			it.docID = NoMoreDocs
			return NoMoreDocs
		}
		it.pending = it.word
	}
	bit := bits.TrailingZeros8(it.pending)
	it.pending &= it.pending - 1
	it.docID = uint32(it.wordNum<<3 | bit)
	return it.docID
}

// Advance moves to the first doc ID >= target and returns it, or
// NoMoreDocs if there is none. If the iterator is already positioned on a
// doc ID >= target it stays there.
func (it *Iterator) Advance(target uint32) uint32 {
	if it.wordNum == noMoreWords {
		return NoMoreDocs
	}
	if it.started && target <= it.docID {
		return it.docID
	}
	if target == NoMoreDocs {
		it.exhaust()
		return NoMoreDocs
	}
	it.started = true

	targetWordNum := int(target >> 3)
	if targetWordNum > it.wordNum {
		it.advanceWord(targetWordNum)
		if it.wordNum == noMoreWords {
			it.exhaust()
			return NoMoreDocs
		}
		it.pending = it.word
	}

	for {
		if doc := it.NextDoc(); doc >= target {
			return doc
		}
	}
}

func (it *Iterator) exhaust() {
	it.started = true
	it.wordNum = noMoreWords
	it.pending = 0
	it.onesLength = 0
	it.dirtyLength = 0
	it.pos = len(it.data)
	it.docID = NoMoreDocs
}

// readSequence decodes the next sequence header. Clean zero words are
// consumed immediately; clean one words are left in onesLength.
func (it *Iterator) readSequence() bool {
	if it.pos >= len(it.data) {
		it.wordNum = noMoreWords
		return false
	}
	h, next, err := readHeader(it.data, it.pos)
	if err != nil {
		panic(fmt.Sprintf("docset: corrupt sequence at offset %d: %v", it.pos, err))
	}
	if h.dirty > len(it.data)-next {
		panic(fmt.Sprintf("docset: dirty length %d exceeds remaining %d bytes at offset %d", h.dirty, len(it.data)-next, it.pos))
	}
	it.pos = next
	if h.ones {
		it.onesLength = h.clean
	} else {
		it.wordNum += h.clean
	}
	it.dirtyLength = h.dirty
	it.sequenceNum++
	return true
}

// skipWords skips count words of the current sequence without decoding them.
func (it *Iterator) skipWords(count int) {
	it.wordNum += count
	if count <= it.onesLength {
		it.onesLength -= count
		return
	}
	count -= it.onesLength
	it.onesLength = 0
	it.pos += count
	it.dirtyLength -= count
}

// skipSequence skips what is left of the current sequence.
func (it *Iterator) skipSequence() {
	it.wordNum += it.onesLength + it.dirtyLength
	it.pos += it.dirtyLength
	it.onesLength = 0
	it.dirtyLength = 0
}

// nextWord moves to the next non-zero word.
func (it *Iterator) nextWord() {
	for {
		if it.onesLength > 0 {
			it.word = 0xFF
			it.wordNum++
			it.onesLength--
			return
		}
		if it.dirtyLength > 0 {
			it.word = it.data[it.pos]
			it.pos++
			it.wordNum++
			it.dirtyLength--
			if it.word != 0 {
				return
			}
			// never two zero dirty words in a row
			if it.dirtyLength > 0 {
				it.word = it.data[it.pos]
				it.pos++
				it.wordNum++
				it.dirtyLength--
				return
			}
		}
		if !it.readSequence() {
			return
		}
	}
}

// advanceWord moves to the first non-zero word >= target. target must be
// greater than the current word number.
func (it *Iterator) advanceWord(target int) {
	delta := target - it.wordNum
	if delta <= it.onesLength+it.dirtyLength+1 {
		it.skipWords(delta - 1)
		it.nextWord()
		return
	}

	it.skipSequence()
	if delta > it.indexThreshold {
		i := it.index.search(it.sequenceNum/it.indexInterval, target)
		// never move backwards
		if pos := int(it.index.positions[i]); pos > it.pos {
			it.wordNum = int(it.index.wordNums[i]) - 1
			it.pos = pos
			it.sequenceNum = i*it.indexInterval - 1
		}
	}

	for {
		if !it.readSequence() {
			return
		}
		delta = target - it.wordNum
		if delta <= it.onesLength+it.dirtyLength+1 {
			if delta > 1 {
				it.skipWords(delta - 1)
			}
			break
		}
		it.skipSequence()
	}
	it.nextWord()
}
