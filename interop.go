package docset

import (
	"math"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
)

const interopBatchSize = 256

// FromRoaring encodes the values of rb. It fails with ErrDocIDOutOfRange if
// rb contains NoMoreDocs.
func FromRoaring(rb *roaring.Bitmap, opts ...Option) (*Set, error) {
	b, err := NewBuilder(opts...)
	if err != nil {
		return nil, err
	}

	buf := make([]uint32, interopBatchSize)
	it := rb.ManyIterator()
	for n := it.NextMany(buf); n > 0; n = it.NextMany(buf) {
		if err := b.AddMany(buf[:n]); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// ToRoaring decodes s into a new roaring bitmap. Runs of all-ones words are
// added as ranges.
func (s *Set) ToRoaring() *roaring.Bitmap {
	rb := roaring.New()
	buf := make([]uint32, 0, interopBatchSize)
	runStart, runEnd := -1, -1 // word range [runStart, runEnd) of 0xFF words

	flushRun := func() {
		if runStart >= 0 {
			rb.AddRange(uint64(runStart)<<3, uint64(runEnd)<<3)
			runStart, runEnd = -1, -1
		}
	}

	it := s.Iterator()
	for it.nextWord(); it.wordNum != noMoreWords; it.nextWord() {
		if it.word == 0xFF {
			if it.wordNum != runEnd {
				flushRun()
				runStart = it.wordNum
			}
			runEnd = it.wordNum + 1
			continue
		}
		for w := it.word; w != 0; w &= w - 1 {
			buf = append(buf, uint32(it.wordNum<<3|bits.TrailingZeros8(w)))
		}
		if len(buf) >= interopBatchSize-8 {
			rb.AddMany(buf)
			buf = buf[:0]
		}
	}
	flushRun()
	rb.AddMany(buf)
	rb.RunOptimize()
	return rb
}

// FromBitSet encodes the set bits of bs. It fails with ErrDocIDOutOfRange
// if bs has a bit at NoMoreDocs or beyond.
func FromBitSet(bs *bitset.BitSet, opts ...Option) (*Set, error) {
	b, err := NewBuilder(opts...)
	if err != nil {
		return nil, err
	}

	buf := make([]uint, interopBatchSize)
	ids := make([]uint32, 0, interopBatchSize)
	i, found := bs.NextSetMany(0, buf)
	for ; len(found) > 0; i, found = bs.NextSetMany(i, buf) {
		ids = ids[:0]
		for _, v := range found {
			if v >= math.MaxUint32 {
				return nil, ErrDocIDOutOfRange
			}
			ids = append(ids, uint32(v))
		}
		if err := b.AddMany(ids); err != nil {
			return nil, err
		}
		i++
	}
	return b.Build(), nil
}

// ToBitSet decodes s into a new bitset, copying whole words at a time.
func (s *Set) ToBitSet() *bitset.BitSet {
	var words []uint64
	it := s.Iterator()
	for it.nextWord(); it.wordNum != noMoreWords; it.nextWord() {
		slot := it.wordNum >> 3
		if slot >= len(words) {
			words = append(words, make([]uint64, slot+1-len(words))...)
		}
		words[slot] |= uint64(it.word) << ((it.wordNum & 0x07) << 3)
	}
	return bitset.From(words)
}
