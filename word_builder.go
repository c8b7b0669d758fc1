package docset

import (
	"math/bits"
	"slices"
	"time"
)

// WordBuilder encodes a Set from non-zero words given in increasing word
// number order. Word w covers doc IDs 8w..8w+7, bit i meaning doc 8w+i.
//
// A WordBuilder is not safe for concurrent use.
type WordBuilder struct {
	out   []byte
	dirty []byte

	clean        int  // clean words of the open sequence, including the offset
	ones         bool // clean words of the open sequence are 0xFF
	lastWordNum  int
	numSequences int
	cardinality  uint64

	indexInterval int
	logger        *Logger
	metrics       MetricsCollector
	started       time.Time

	built *Set
}

// NewWordBuilder returns an empty WordBuilder.
func NewWordBuilder(opts ...Option) (*WordBuilder, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return newWordBuilder(o), nil
}

func newWordBuilder(o options) *WordBuilder {
	return &WordBuilder{
		out:           make([]byte, 0, 1024),
		dirty:         make([]byte, 0, 128),
		lastWordNum:   -1,
		indexInterval: o.indexInterval,
		logger:        o.logger,
		metrics:       o.metrics,
		started:       time.Now(),
	}
}

// SetIndexInterval sets the number of sequences between skip index entries.
// It must be called before the first word is added. It returns an
// *IndexIntervalError if n < MinIndexInterval.
func (w *WordBuilder) SetIndexInterval(n int) error {
	switch {
	case w.built != nil:
		return ErrBuilderSpent
	case w.lastWordNum != -1:
		return ErrBuilderStarted
	}
	if err := validateIndexInterval(n); err != nil {
		return err
	}
	w.indexInterval = n
	return nil
}

// AddWord appends word at wordNum. wordNum must be greater than the
// previous one and word must be non-zero.
func (w *WordBuilder) AddWord(wordNum int, word byte) error {
	if w.built != nil {
		return ErrBuilderSpent
	}
	if word == 0 {
		return ErrZeroWord
	}
	if wordNum <= w.lastWordNum {
		return &OrderError{Unit: "word", Last: int64(w.lastWordNum), Got: int64(wordNum)}
	}
	if wordNum > maxWordNum || (wordNum == maxWordNum && word&0x80 != 0) {
		return ErrDocIDOutOfRange
	}
	w.addWord(wordNum, word)
	return nil
}

// addWord implements AddWord for callers that already checked its contract.
func (w *WordBuilder) addWord(wordNum int, word byte) {
	delta := wordNum - w.lastWordNum

	switch {
	case w.lastWordNum == -1:
		// the first sequence stores the leading gap itself
		w.clean = cleanLengthOffset + wordNum
		w.dirty = append(w.dirty, word)

	case delta == 1:
		last := len(w.dirty) - 1
		switch {
		case word != 0xFF:
			w.dirty = append(w.dirty, word)
		case w.ones && last < 0:
			w.clean++
		case last >= 0 && w.dirty[last] == 0xFF:
			// two 0xFF words in a row start a run of ones
			w.dirty = w.dirty[:last]
			w.writeSequence()
			w.ones = true
			w.clean = 2
		default:
			w.dirty = append(w.dirty, word)
		}

	case delta == 2:
		w.dirty = append(w.dirty, 0, word)

	default:
		w.writeSequence()
		w.ones = false
		w.clean = delta - 1
		w.dirty = append(w.dirty, word)
	}

	w.lastWordNum = wordNum
	w.cardinality += uint64(bits.OnesCount8(word))
}

// writeSequence flushes the open sequence to out.
func (w *WordBuilder) writeSequence() {
	w.out = appendHeader(w.out, w.ones, w.clean-cleanLengthOffset, len(w.dirty))
	w.out = append(w.out, w.dirty...)
	w.dirty = w.dirty[:0]
	w.numSequences++
}

// Build flushes the open sequence, indexes the stream and returns the Set.
// Calling Build again returns the same Set; adding after Build fails with
// ErrBuilderSpent.
func (w *WordBuilder) Build() *Set {
	if w.built != nil {
		return w.built
	}
	if w.cardinality == 0 {
		w.built = Empty()
		return w.built
	}

	w.writeSequence()
	data := slices.Clone(w.out)
	index := buildSkipIndex(data, w.cardinality, w.numSequences, w.indexInterval)

	w.built = &Set{
		data:          data,
		cardinality:   w.cardinality,
		indexInterval: w.indexInterval,
		index:         index,
	}
	w.out, w.dirty = nil, nil

	w.logger.WithIndexInterval(w.indexInterval).LogBuild(w.cardinality, len(data), w.numSequences, index.len())
	w.metrics.RecordBuild(w.cardinality, len(data), time.Since(w.started))
	return w.built
}
