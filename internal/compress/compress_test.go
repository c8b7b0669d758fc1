package compress

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress_Types(t *testing.T) {
	compressible := bytes.Repeat([]byte{0x12, 0x00, 0xFF, 0x34}, 4096)

	random := make([]byte, 4096)
	rand.New(rand.NewSource(1)).Read(random)

	inputs := map[string][]byte{
		"empty":        {},
		"compressible": compressible,
		"random":       random,
	}

	for _, typ := range []Type{None, LZ4, Zstd} {
		for name, data := range inputs {
			t.Run(typ.String()+"/"+name, func(t *testing.T) {
				block, err := Compress(data, typ)
				require.NoError(t, err)
				require.GreaterOrEqual(t, len(block), HeaderSize)

				got, err := Decompress(block, typ)
				require.NoError(t, err)
				assert.True(t, bytes.Equal(data, got))
			})
		}
	}
}

func TestCompress_ShrinksRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte{0xAA}, 1<<16)

	for _, typ := range []Type{LZ4, Zstd} {
		block, err := Compress(data, typ)
		require.NoError(t, err)
		assert.Less(t, len(block), len(data)/10, typ.String())
		assert.NotZero(t, binary.LittleEndian.Uint32(block[4:]), "expected compressed payload for %s", typ)
	}
}

func TestCompress_IncompressibleStoredVerbatim(t *testing.T) {
	data := make([]byte, 1024)
	rand.New(rand.NewSource(7)).Read(data)

	block, err := Compress(data, LZ4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(block[4:]))
	assert.Equal(t, data, block[HeaderSize:])
}

func TestDecompress_Errors(t *testing.T) {
	_, err := Decompress([]byte{1, 2, 3}, LZ4)
	assert.ErrorIs(t, err, ErrShortBlock)

	_, err = Compress(nil, Type(9))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = Decompress(make([]byte, HeaderSize), Type(9))
	assert.ErrorIs(t, err, ErrUnknownType)

	// Header claims more bytes than are present.
	block := make([]byte, HeaderSize+2)
	binary.LittleEndian.PutUint32(block[0:], 10)
	_, err = Decompress(block, None)
	assert.ErrorIs(t, err, ErrShortBlock)

	// Oversized declaration.
	binary.LittleEndian.PutUint32(block[0:], MaxBlockSize+1)
	_, err = Decompress(block, None)
	assert.ErrorIs(t, err, ErrBlockTooLarge)

	// Compressed payload under the verbatim type.
	binary.LittleEndian.PutUint32(block[0:], 4)
	binary.LittleEndian.PutUint32(block[4:], 2)
	_, err = Decompress(block, None)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestDecompress_CorruptLZ4(t *testing.T) {
	data := bytes.Repeat([]byte("docset"), 512)
	block, err := Compress(data, LZ4)
	require.NoError(t, err)

	// Lie about the uncompressed size.
	binary.LittleEndian.PutUint32(block[0:], uint32(len(data)-1))
	_, err = Decompress(block, LZ4)
	assert.Error(t, err)
}
