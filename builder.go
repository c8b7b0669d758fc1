package docset

// Builder encodes a Set from doc IDs given in strictly increasing order.
//
// It accumulates the bits of one word at a time and hands complete words
// to a WordBuilder. A Builder is not safe for concurrent use.
type Builder struct {
	words *WordBuilder

	lastDocID int64
	wordNum   int
	word      byte
}

// NewBuilder returns an empty Builder.
//
// Example:
//
//	b, _ := docset.NewBuilder(docset.WithIndexInterval(16))
//	_ = b.Add(3)
//	_ = b.Add(42)
//	set := b.Build()
func NewBuilder(opts ...Option) (*Builder, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return newBuilder(o), nil
}

func newBuilder(o options) *Builder {
	return &Builder{
		words:     newWordBuilder(o),
		lastDocID: -1,
		wordNum:   -1,
	}
}

// SetIndexInterval sets the number of sequences between skip index entries.
// It fails with ErrBuilderStarted once a doc ID has been added, and returns
// an *IndexIntervalError if n < MinIndexInterval.
func (b *Builder) SetIndexInterval(n int) error {
	return b.words.SetIndexInterval(n)
}

// Add adds docID, which must be greater than every doc ID added before.
// Out-of-order doc IDs fail with an *OrderError and leave the builder
// unchanged.
func (b *Builder) Add(docID uint32) error {
	if b.words.built != nil {
		return ErrBuilderSpent
	}
	if docID == NoMoreDocs {
		return ErrDocIDOutOfRange
	}
	if int64(docID) <= b.lastDocID {
		return &OrderError{Unit: "doc id", Last: b.lastDocID, Got: int64(docID)}
	}

	wordNum := int(docID >> 3)
	bit := byte(1) << (docID & 0x07)
	if wordNum == b.wordNum {
		b.word |= bit
	} else {
		if b.wordNum != -1 {
			b.words.addWord(b.wordNum, b.word)
		}
		b.wordNum = wordNum
		b.word = bit
	}
	b.lastDocID = int64(docID)
	return nil
}

// AddMany adds ids in order. It stops at the first error.
func (b *Builder) AddMany(ids []uint32) error {
	for _, id := range ids {
		if err := b.Add(id); err != nil {
			return err
		}
	}
	return nil
}

// AddIterator adds every doc ID it returns until NoMoreDocs.
func (b *Builder) AddIterator(it DocIDIterator) error {
	for doc := it.NextDoc(); doc != NoMoreDocs; doc = it.NextDoc() {
		if err := b.Add(doc); err != nil {
			return err
		}
	}
	return nil
}

// Build flushes the pending word and returns the Set.
// Calling Build again returns the same Set.
func (b *Builder) Build() *Set {
	if b.wordNum != -1 && b.words.built == nil {
		b.words.addWord(b.wordNum, b.word)
		b.wordNum = -1
	}
	return b.words.Build()
}
