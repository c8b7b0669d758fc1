package conv

import (
	"fmt"
	"math"
)

// Uint64ToInt converts v to int, failing if it does not fit.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// Uint64ToUint32 converts v to uint32, failing if it does not fit.
func Uint64ToUint32(v uint64) (uint32, error) {
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", v)
	}
	return uint32(v), nil
}

// Length converts a decoded length to int and checks it against the number
// of bytes (or entries) that remain to be read.
func Length(v uint64, remaining int) (int, error) {
	n, err := Uint64ToInt(v)
	if err != nil {
		return 0, err
	}
	if n > remaining {
		return 0, fmt.Errorf("length %d exceeds remaining %d", n, remaining)
	}
	return n, nil
}
