package docset

import (
	"fmt"
	"runtime"

	"github.com/hupe1980/docset/internal/compress"
)

// Compression selects how Marshal and WriteTo compress the sequence bytes.
type Compression uint8

const (
	// CompressionNone stores the sequence bytes verbatim (default).
	CompressionNone = Compression(compress.None)
	// CompressionLZ4 compresses the sequence bytes with LZ4.
	CompressionLZ4 = Compression(compress.LZ4)
	// CompressionZstd compresses the sequence bytes with zstd.
	CompressionZstd = Compression(compress.Zstd)
)

// String returns the name of the compression algorithm.
func (c Compression) String() string {
	return compress.Type(c).String()
}

type options struct {
	indexInterval int
	logger        *Logger
	metrics       MetricsCollector
	compression   Compression
	concurrency   int
}

// Option configures builders, set algebra, serialization and bulk builds.
//
// Options that do not apply to an operation are ignored by it.
type Option func(*options)

// WithIndexInterval sets the number of sequences between two skip index entries.
//
// Smaller values make Iterator.Advance faster on long sets and cost up to
// 8 bytes per entry. Values below MinIndexInterval are rejected.
// Defaults to DefaultIndexInterval.
func WithIndexInterval(n int) Option {
	return func(o *options) {
		o.indexInterval = n
	}
}

// WithLogger configures the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics configures the metrics collector. If nil is passed, metrics are discarded.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithCompression configures compression of the serialized form.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithConcurrency bounds the number of sets BuildAll builds in parallel.
// Values <= 0 select GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func newOptions(opts []Option) (options, error) {
	o := options{
		indexInterval: DefaultIndexInterval,
		logger:        NoopLogger(),
		metrics:       NoopMetricsCollector{},
		compression:   CompressionNone,
	}
	for _, fn := range opts {
		fn(&o)
	}

	if err := validateIndexInterval(o.indexInterval); err != nil {
		return options{}, err
	}
	if !compress.Type(o.compression).Valid() {
		return options{}, fmt.Errorf("%w: %d", compress.ErrUnknownType, uint8(o.compression))
	}
	if o.concurrency <= 0 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	return o, nil
}
