package docset

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfOrder is returned when a doc ID or word number is not strictly
	// greater than the previous one.
	ErrOutOfOrder = errors.New("out of order")

	// ErrInvalidIndexInterval is returned for an index interval below MinIndexInterval.
	ErrInvalidIndexInterval = errors.New("invalid index interval")

	// ErrNoSets is returned when intersecting an empty list of sets.
	ErrNoSets = errors.New("at least one set is required")

	// ErrZeroWord is returned when a zero word is added to a WordBuilder.
	ErrZeroWord = errors.New("word must be non-zero")

	// ErrDocIDOutOfRange is returned when adding NoMoreDocs.
	ErrDocIDOutOfRange = errors.New("doc id out of range")

	// ErrBuilderSpent is returned when a builder is used after Build.
	ErrBuilderSpent = errors.New("builder already built")

	// ErrBuilderStarted is returned when the index interval is changed after
	// the first add.
	ErrBuilderStarted = errors.New("builder already has data")

	// ErrInvalidMagic is returned when serialized data does not start with the set magic.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrUnsupportedVersion is returned for an unknown serialization version.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrCorrupt is returned when serialized data fails validation.
	ErrCorrupt = errors.New("corrupt set")
)

// OrderError reports an out-of-order add.
//
// Unwraps to ErrOutOfOrder.
type OrderError struct {
	// Unit is "doc id" or "word".
	Unit string
	Last int64
	Got  int64
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s must be added in order: got %d, last %d", e.Unit, e.Got, e.Last)
}

func (e *OrderError) Unwrap() error { return ErrOutOfOrder }

// IndexIntervalError reports an index interval below MinIndexInterval.
//
// Unwraps to ErrInvalidIndexInterval.
type IndexIntervalError struct {
	IndexInterval int
}

func (e *IndexIntervalError) Error() string {
	return fmt.Sprintf("index interval must be >= %d, got %d", MinIndexInterval, e.IndexInterval)
}

func (e *IndexIntervalError) Unwrap() error { return ErrInvalidIndexInterval }

// CorruptError reports where and why serialized data failed validation.
//
// Unwraps to ErrCorrupt; the underlying cause (if any) is reachable through
// errors.As/errors.Is as well.
type CorruptError struct {
	Offset int
	Reason string
	cause  error
}

func (e *CorruptError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("corrupt set at offset %d: %s: %v", e.Offset, e.Reason, e.cause)
	}
	return fmt.Sprintf("corrupt set at offset %d: %s", e.Offset, e.Reason)
}

func (e *CorruptError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrCorrupt, e.cause}
	}
	return []error{ErrCorrupt}
}

func corruptf(offset int, cause error, format string, args ...any) error {
	return &CorruptError{Offset: offset, Reason: fmt.Sprintf(format, args...), cause: cause}
}

func validateIndexInterval(n int) error {
	if n < MinIndexInterval {
		return &IndexIntervalError{IndexInterval: n}
	}
	return nil
}
