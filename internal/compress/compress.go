package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies the algorithm a block was compressed with.
type Type uint8

const (
	// None stores the payload verbatim.
	None Type = 0
	// LZ4 uses LZ4 block compression.
	LZ4 Type = 1
	// Zstd uses zstd compression.
	Zstd Type = 2
)

// String returns the name of the algorithm.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Valid reports whether t names a supported algorithm.
func (t Type) Valid() bool {
	return t <= Zstd
}

// HeaderSize is the size of the block header in bytes.
const HeaderSize = 8

// MaxBlockSize bounds the uncompressed size a block may declare.
const MaxBlockSize = 1 << 30

var (
	// ErrShortBlock is returned when a block is smaller than its header claims.
	ErrShortBlock = errors.New("compress: block too short")
	// ErrSizeMismatch is returned when the decompressed size differs from the header.
	ErrSizeMismatch = errors.New("compress: decompressed size mismatch")
	// ErrBlockTooLarge is returned when a block declares more than MaxBlockSize bytes.
	ErrBlockTooLarge = errors.New("compress: block too large")
	// ErrUnknownType is returned for an unsupported compression type.
	ErrUnknownType = errors.New("compress: unknown compression type")
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxBlockSize))
}

// Compress wraps data in a block compressed with t.
func Compress(data []byte, t Type) ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
	if len(data) > MaxBlockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlockTooLarge, len(data))
	}

	var compressed []byte
	switch t {
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		// n == 0 means incompressible
		compressed = buf[:n]
	case Zstd:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, err
		}
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	}

	if t == None || len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		block := make([]byte, HeaderSize+len(data))
		binary.LittleEndian.PutUint32(block[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(block[4:], 0)
		copy(block[HeaderSize:], data)
		return block, nil
	}

	block := make([]byte, HeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(block[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(block[4:], uint32(len(compressed)))
	copy(block[HeaderSize:], compressed)
	return block, nil
}

// Decompress returns the payload of a block produced by Compress with the
// same type. The block must be exactly as long as its header declares.
func Decompress(block []byte, t Type) ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
	if len(block) < HeaderSize {
		return nil, ErrShortBlock
	}

	uncompressedSize := int(binary.LittleEndian.Uint32(block[0:]))
	compressedSize := int(binary.LittleEndian.Uint32(block[4:]))
	if uncompressedSize > MaxBlockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlockTooLarge, uncompressedSize)
	}
	payload := block[HeaderSize:]

	if compressedSize == 0 {
		if len(payload) != uncompressedSize {
			return nil, ErrShortBlock
		}
		return payload, nil
	}
	if len(payload) != compressedSize {
		return nil, ErrShortBlock
	}

	switch t {
	case LZ4:
		result := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, result)
		if err != nil {
			return nil, err
		}
		if n != uncompressedSize {
			return nil, ErrSizeMismatch
		}
		return result, nil
	case Zstd:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.Put(dec)

		decoded, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, err
		}
		if len(decoded) != uncompressedSize {
			return nil, ErrSizeMismatch
		}
		return decoded, nil
	default:
		// a compressed payload cannot come from a None block
		return nil, fmt.Errorf("%w: compressed payload with type %s", ErrUnknownType, t)
	}
}
