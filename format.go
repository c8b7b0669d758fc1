package docset

import (
	"encoding/binary"
	"errors"
	"math"
)

// Token byte layout, MSB first:
//
//	bit 7     clean run is all-ones
//	bit 6     clean length continues in a uvarint
//	bits 5-4  clean length low bits
//	bit 3     dirty length continues in a uvarint
//	bits 2-0  dirty length low bits
const (
	tokenOnes           = 1 << 7
	tokenCleanContinued = 1 << 6
	tokenDirtyContinued = 1 << 3

	cleanLowMask = 0x03
	dirtyLowMask = 0x07

	// every sequence but the first stores its clean length minus this
	cleanLengthOffset = 2
)

// maxWordNum is the largest word number whose doc IDs fit in a uint32.
const maxWordNum = math.MaxUint32 >> 3

var (
	errTruncatedHeader = errors.New("truncated sequence header")
	errLengthOverflow  = errors.New("sequence length overflows")
)

// header is a decoded sequence header.
type header struct {
	ones  bool
	clean int // clean words, offset already removed
	dirty int // dirty words that follow the header
}

// appendHeader appends the header of a sequence. cleanField is the clean
// length as stored: the gap itself for the first sequence, length minus
// cleanLengthOffset for the others.
func appendHeader(dst []byte, ones bool, cleanField, dirtyLength int) []byte {
	token := byte((cleanField&cleanLowMask)<<4 | dirtyLength&dirtyLowMask)
	if ones {
		token |= tokenOnes
	}
	if cleanField > cleanLowMask {
		token |= tokenCleanContinued
	}
	if dirtyLength > dirtyLowMask {
		token |= tokenDirtyContinued
	}

	dst = append(dst, token)
	if cleanField > cleanLowMask {
		dst = binary.AppendUvarint(dst, uint64(cleanField>>2))
	}
	if dirtyLength > dirtyLowMask {
		dst = binary.AppendUvarint(dst, uint64(dirtyLength>>3))
	}
	return dst
}

// readHeader decodes the sequence header starting at data[pos] and returns
// it with the offset of the first dirty byte. The sequence at offset 0 is
// the first one and carries no clean length offset.
func readHeader(data []byte, pos int) (header, int, error) {
	if pos >= len(data) {
		return header{}, pos, errTruncatedHeader
	}
	first := pos == 0
	token := data[pos]
	pos++

	h := header{ones: token&tokenOnes != 0}

	clean := int(token>>4) & cleanLowMask
	if token&tokenCleanContinued != 0 {
		high, n := binary.Uvarint(data[pos:])
		if n <= 0 {
			return header{}, pos, errTruncatedHeader
		}
		if high > maxWordNum {
			return header{}, pos, errLengthOverflow
		}
		clean |= int(high) << 2
		pos += n
	}
	if !first {
		clean += cleanLengthOffset
	}
	h.clean = clean

	dirty := int(token) & dirtyLowMask
	if token&tokenDirtyContinued != 0 {
		high, n := binary.Uvarint(data[pos:])
		if n <= 0 {
			return header{}, pos, errTruncatedHeader
		}
		if high > maxWordNum {
			return header{}, pos, errLengthOverflow
		}
		dirty |= int(high) << 3
		pos += n
	}
	h.dirty = dirty

	return h, pos, nil
}
