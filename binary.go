package docset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"math/bits"
	"slices"

	"github.com/hupe1980/docset/internal/compress"
	"github.com/hupe1980/docset/internal/conv"
)

// Serialized layout (little endian):
//
//	magic        u32  "WAH8"
//	version      u8
//	compression  u8
//	cardinality  uvarint
//	interval     uvarint
//	payload len  uvarint
//	payload      sequence bytes, or a compress block
//	index count  uvarint
//	positions    index count uvarints, delta-encoded
//	wordNums     index count uvarints, delta-encoded
const (
	magicNumber   uint32 = 0x38484157
	formatVersion uint8  = 1

	fixedHeaderSize = 6

	payloadChunkSize = 1 << 20
)

// Marshal encodes s. WithCompression selects the payload compression.
func Marshal(s *Set, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return s.appendBinary(nil, o.compression)
}

// MarshalBinary encodes s without compression.
func (s *Set) MarshalBinary() ([]byte, error) {
	return s.appendBinary(nil, CompressionNone)
}

// WriteTo writes the uncompressed encoding of s to w.
func (s *Set) WriteTo(w io.Writer) (int64, error) {
	buf, err := s.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	return int64(n), err
}

func (s *Set) appendBinary(dst []byte, c Compression) ([]byte, error) {
	payload := s.data
	if c != CompressionNone {
		block, err := compress.Compress(s.data, compress.Type(c))
		if err != nil {
			return nil, err
		}
		payload = block
	}

	buf := binary.LittleEndian.AppendUint32(dst, magicNumber)
	buf = append(buf, formatVersion, byte(c))
	buf = binary.AppendUvarint(buf, s.cardinality)
	buf = binary.AppendUvarint(buf, uint64(s.indexInterval))
	buf = binary.AppendUvarint(buf, uint64(len(payload)))
	buf = append(buf, payload...)

	buf = binary.AppendUvarint(buf, uint64(s.index.len()))
	buf = appendDeltas(buf, s.index.positions)
	buf = appendDeltas(buf, s.index.wordNums)
	return buf, nil
}

func appendDeltas(dst []byte, values []uint32) []byte {
	prev := uint32(0)
	for _, v := range values {
		dst = binary.AppendUvarint(dst, uint64(v-prev))
		prev = v
	}
	return dst
}

// Unmarshal decodes and validates a set produced by Marshal. Trailing bytes
// are rejected. Malformed input yields an error wrapping ErrCorrupt,
// ErrInvalidMagic or ErrUnsupportedVersion, never a panic.
func Unmarshal(data []byte, opts ...Option) (*Set, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	r := &countingReader{r: bytes.NewReader(data)}
	s, err := decode(r, len(data), o)
	if err == nil && r.n != len(data) {
		err = corruptf(r.n, nil, "%d trailing bytes", len(data)-r.n)
	}
	o.logger.LogDecode(len(data), err)
	o.metrics.RecordDecode(len(data), err)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ReadFrom decodes and validates one set from r, reading no further than
// its encoding.
func ReadFrom(r io.Reader, opts ...Option) (*Set, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	var br decodeReader
	if rr, ok := r.(decodeReader); ok {
		br = rr
	} else {
		br = &byteReader{r: r}
	}
	cr := &countingReader{r: br}
	s, err := decode(cr, compress.MaxBlockSize+compress.HeaderSize, o)
	o.logger.LogDecode(cr.n, err)
	o.metrics.RecordDecode(cr.n, err)
	if err != nil {
		return nil, err
	}
	return s, nil
}

type decodeReader interface {
	io.Reader
	io.ByteReader
}

// byteReader adds ReadByte to a reader without buffering ahead.
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (b *byteReader) Read(p []byte) (int, error) { return b.r.Read(p) }

func (b *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(b.r, b.buf[:]); err != nil {
		return 0, err
	}
	return b.buf[0], nil
}

type countingReader struct {
	r decodeReader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}

func (c *countingReader) uvarint(what string) (uint64, error) {
	v, err := binary.ReadUvarint(c)
	if err != nil {
		return 0, corruptf(c.n, err, "reading %s", what)
	}
	return v, nil
}

// decode reads one set. limit bounds the payload length.
func decode(r *countingReader, limit int, o options) (*Set, error) {
	var fixed [fixedHeaderSize]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, corruptf(r.n, err, "truncated header")
		}
		return nil, err
	}
	if binary.LittleEndian.Uint32(fixed[0:]) != magicNumber {
		return nil, ErrInvalidMagic
	}
	if fixed[4] != formatVersion {
		return nil, ErrUnsupportedVersion
	}
	compression := compress.Type(fixed[5])
	if !compression.Valid() {
		return nil, corruptf(5, compress.ErrUnknownType, "compression %d", fixed[5])
	}

	cardinality, err := r.uvarint("cardinality")
	if err != nil {
		return nil, err
	}
	if cardinality > math.MaxUint32 {
		return nil, corruptf(r.n, nil, "cardinality %d exceeds doc id space", cardinality)
	}

	rawInterval, err := r.uvarint("index interval")
	if err != nil {
		return nil, err
	}
	interval, err := conv.Uint64ToInt(rawInterval)
	if err == nil {
		err = validateIndexInterval(interval)
	}
	if err != nil {
		return nil, corruptf(r.n, err, "index interval")
	}

	rawLen, err := r.uvarint("payload length")
	if err != nil {
		return nil, err
	}
	payloadLen, err := conv.Length(rawLen, limit)
	if err != nil {
		return nil, corruptf(r.n, err, "payload length")
	}
	payloadOffset := r.n
	payload, err := readPayload(r, payloadLen)
	if err != nil {
		return nil, corruptf(r.n, err, "truncated payload")
	}

	data := payload
	if compression != compress.None {
		data, err = compress.Decompress(payload, compression)
		if err != nil {
			return nil, corruptf(payloadOffset, err, "decompressing payload")
		}
	}

	rawCount, err := r.uvarint("index count")
	if err != nil {
		return nil, err
	}
	count, err := conv.Length(rawCount, len(data)/MinIndexInterval+1)
	if err != nil {
		return nil, corruptf(r.n, err, "index count")
	}
	ix := skipIndex{
		positions: make([]uint32, count),
		wordNums:  make([]uint32, count),
	}
	if err := readDeltas(r, ix.positions, "index position"); err != nil {
		return nil, err
	}
	if err := readDeltas(r, ix.wordNums, "index word number"); err != nil {
		return nil, err
	}

	got, numSequences, err := validateStream(data, ix, interval)
	if err != nil {
		return nil, err
	}
	if got != cardinality {
		return nil, corruptf(payloadOffset, nil, "cardinality %d does not match encoded %d", cardinality, got)
	}
	if want := indexEntries(numSequences, interval); count != want {
		return nil, corruptf(payloadOffset, nil, "skip index has %d entries, want %d", count, want)
	}

	if cardinality == 0 {
		return Empty(), nil
	}
	if count <= 1 {
		ix = singleZeroIndex()
	}
	return &Set{
		data:          data,
		cardinality:   cardinality,
		indexInterval: interval,
		index:         ix,
	}, nil
}

// readPayload reads n bytes in chunks so that a bogus length costs no more
// memory than the bytes actually present.
func readPayload(r io.Reader, n int) ([]byte, error) {
	payload := make([]byte, 0, min(n, payloadChunkSize))
	for len(payload) < n {
		m := min(n-len(payload), payloadChunkSize)
		payload = slices.Grow(payload, m)
		k, err := io.ReadFull(r, payload[len(payload):len(payload)+m])
		payload = payload[:len(payload)+k]
		if err != nil {
			return nil, err
		}
	}
	return payload, nil
}

func readDeltas(r *countingReader, dst []uint32, what string) error {
	var prev uint64
	for i := range dst {
		delta, err := r.uvarint(what)
		if err != nil {
			return err
		}
		v, err := conv.Uint64ToUint32(prev + delta)
		if err != nil || prev+delta < prev {
			return corruptf(r.n, err, "%s %d overflows", what, i)
		}
		dst[i] = v
		prev = uint64(v)
	}
	return nil
}

// validateStream checks the sequence grammar of data and that every entry
// of ix points at the sequence it claims to. It returns the number of doc
// IDs and sequences in data. Offsets in errors are relative to data.
func validateStream(data []byte, ix skipIndex, interval int) (uint64, int, error) {
	if ix.len() == 0 || ix.positions[0] != 0 || ix.wordNums[0] != 0 {
		return 0, 0, corruptf(0, nil, "skip index must start at (0, 0)")
	}

	var (
		cardinality uint64
		wordNum     = -1
		last        byte // last word of the stream
		seq         int
		pos         int
	)
	for pos < len(data) {
		if seq%interval == 0 {
			if e := seq / interval; e < ix.len() &&
				(int(ix.positions[e]) != pos || int(ix.wordNums[e]) != wordNum+1) {
				return 0, 0, corruptf(pos, nil, "skip index entry %d does not match sequence %d", e, seq)
			}
		}

		h, next, err := readHeader(data, pos)
		if err != nil {
			return 0, 0, corruptf(pos, err, "sequence %d", seq)
		}
		if h.dirty > len(data)-next {
			return 0, 0, corruptf(pos, nil, "dirty length %d exceeds remaining %d bytes", h.dirty, len(data)-next)
		}
		if h.ones && pos == 0 {
			return 0, 0, corruptf(pos, nil, "first sequence cannot be a run of ones")
		}

		wordNum += h.clean
		if wordNum > maxWordNum {
			return 0, 0, corruptf(pos, nil, "word number overflows doc id space")
		}
		last = 0
		if h.ones {
			cardinality += 8 * uint64(h.clean)
			if h.clean > 0 {
				last = 0xFF
			}
		}

		dirty := data[next : next+h.dirty]
		for i, b := range dirty {
			if i > 0 && b == dirty[i-1] && (b == 0 || b == 0xFF) {
				return 0, 0, corruptf(next+i, nil, "two consecutive clean dirty words")
			}
			cardinality += uint64(bits.OnesCount8(b))
		}
		if len(dirty) > 0 {
			// a zero may end a sequence cut short by a run of ones
			last = dirty[len(dirty)-1]
		}

		wordNum += h.dirty
		if wordNum > maxWordNum {
			return 0, 0, corruptf(pos, nil, "word number overflows doc id space")
		}
		pos = next + h.dirty
		seq++
	}

	if len(data) > 0 {
		if last == 0 {
			return 0, 0, corruptf(len(data), nil, "stream ends with clean zero words")
		}
		if wordNum == maxWordNum && last&0x80 != 0 {
			return 0, 0, corruptf(len(data), nil, "stream contains NoMoreDocs")
		}
	}
	return cardinality, seq, nil
}
