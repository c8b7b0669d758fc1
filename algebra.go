package docset

import (
	"cmp"
	"slices"
	"time"

	"github.com/hupe1980/docset/internal/queue"
)

var _ queue.Cursor = (*Iterator)(nil)

// Intersect returns the doc IDs present in every set, built with the given
// index interval. A single set is returned as is; no sets is an error.
//
// The intersection runs on encoded words: iterators are ordered by encoded
// size so the most selective set leads, and the others skip to its words.
func Intersect(sets []*Set, indexInterval int, opts ...Option) (*Set, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := validateIndexInterval(indexInterval); err != nil {
		o.logger.LogIntersect(len(sets), 0, err)
		return nil, err
	}
	o.indexInterval = indexInterval

	switch len(sets) {
	case 0:
		o.logger.LogIntersect(0, 0, ErrNoSets)
		return nil, ErrNoSets
	case 1:
		return sets[0], nil
	}

	start := time.Now()

	iterators := make([]*Iterator, len(sets))
	for i, s := range sets {
		iterators[i] = s.Iterator()
	}
	slices.SortStableFunc(iterators, func(a, b *Iterator) int {
		return cmp.Compare(len(a.data), len(b.data))
	})

	lead, others := iterators[0], iterators[1:]
	wb := newWordBuilder(o)
	wordNum := 0

main:
	for {
		if lead.wordNum < wordNum {
			lead.advanceWord(wordNum)
		}
		wordNum = lead.wordNum
		if wordNum == noMoreWords {
			break
		}

		word := lead.word
		for _, it := range others {
			if it.wordNum < wordNum {
				it.advanceWord(wordNum)
			}
			if it.wordNum == noMoreWords {
				break main
			}
			if it.wordNum > wordNum {
				// realign on the word this iterator skipped to
				wordNum = it.wordNum
				continue main
			}
			word &= it.word
			if word == 0 {
				// common word, no common bit
				wordNum++
				continue main
			}
		}

		wb.addWord(wordNum, word)
		wordNum++
	}

	result := wb.Build()
	o.logger.LogIntersect(len(sets), result.cardinality, nil)
	o.metrics.RecordIntersect(len(sets), result.cardinality, time.Since(start))
	return result, nil
}

// Union returns the doc IDs present in any set, built with the given index
// interval. A single set is returned as is; no sets yield the empty set.
//
// Iterators are merged through a min-heap on their current word number and
// words sharing a number are ORed together.
func Union(sets []*Set, indexInterval int, opts ...Option) (*Set, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := validateIndexInterval(indexInterval); err != nil {
		o.logger.LogUnion(len(sets), 0, err)
		return nil, err
	}
	o.indexInterval = indexInterval

	switch len(sets) {
	case 0:
		return Empty(), nil
	case 1:
		return sets[0], nil
	}

	start := time.Now()

	h := queue.NewCursorHeap[*Iterator](len(sets))
	for _, s := range sets {
		it := s.Iterator()
		it.nextWord()
		if it.wordNum != noMoreWords {
			h.Push(it)
		}
	}

	wb := newWordBuilder(o)
	wordNum, word := -1, byte(0)
	for h.Len() > 0 {
		top, _ := h.Top()
		if top.wordNum != wordNum {
			if word != 0 {
				wb.addWord(wordNum, word)
			}
			wordNum, word = top.wordNum, 0
		}
		word |= top.word

		top.nextWord()
		if top.wordNum == noMoreWords {
			h.Pop()
		} else {
			h.FixTop()
		}
	}
	if word != 0 {
		wb.addWord(wordNum, word)
	}

	result := wb.Build()
	o.logger.LogUnion(len(sets), result.cardinality, nil)
	o.metrics.RecordUnion(len(sets), result.cardinality, time.Since(start))
	return result, nil
}
