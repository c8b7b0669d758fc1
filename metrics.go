package docset

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after a builder produced a set.
	// sizeBytes is the length of the encoded sequence bytes.
	RecordBuild(cardinality uint64, sizeBytes int, duration time.Duration)

	// RecordIntersect is called after each intersection of inputs sets.
	RecordIntersect(inputs int, cardinality uint64, duration time.Duration)

	// RecordUnion is called after each union of inputs sets.
	RecordUnion(inputs int, cardinality uint64, duration time.Duration)

	// RecordDecode is called after each Unmarshal/ReadFrom.
	// err is nil if successful.
	RecordDecode(sizeBytes int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(uint64, int, time.Duration)     {}
func (NoopMetricsCollector) RecordIntersect(int, uint64, time.Duration) {}
func (NoopMetricsCollector) RecordUnion(int, uint64, time.Duration)     {}
func (NoopMetricsCollector) RecordDecode(int, error)                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildBytes       atomic.Int64
	BuildDocs        atomic.Int64
	BuildTotalNanos  atomic.Int64
	IntersectCount   atomic.Int64
	IntersectInputs  atomic.Int64
	IntersectNanos   atomic.Int64
	UnionCount       atomic.Int64
	UnionInputs      atomic.Int64
	UnionNanos       atomic.Int64
	DecodeCount      atomic.Int64
	DecodeBytes      atomic.Int64
	DecodeErrorCount atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(cardinality uint64, sizeBytes int, duration time.Duration) {
	b.BuildCount.Add(1)
	b.BuildBytes.Add(int64(sizeBytes))
	b.BuildDocs.Add(int64(cardinality))
	b.BuildTotalNanos.Add(duration.Nanoseconds())
}

// RecordIntersect implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIntersect(inputs int, _ uint64, duration time.Duration) {
	b.IntersectCount.Add(1)
	b.IntersectInputs.Add(int64(inputs))
	b.IntersectNanos.Add(duration.Nanoseconds())
}

// RecordUnion implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnion(inputs int, _ uint64, duration time.Duration) {
	b.UnionCount.Add(1)
	b.UnionInputs.Add(int64(inputs))
	b.UnionNanos.Add(duration.Nanoseconds())
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(sizeBytes int, err error) {
	b.DecodeCount.Add(1)
	b.DecodeBytes.Add(int64(sizeBytes))
	if err != nil {
		b.DecodeErrorCount.Add(1)
	}
}

// BitsPerDoc returns the average number of encoded bits per built doc ID.
// Returns 0 if nothing was built yet.
func (b *BasicMetricsCollector) BitsPerDoc() float64 {
	docs := b.BuildDocs.Load()
	if docs == 0 {
		return 0
	}
	return float64(b.BuildBytes.Load()*8) / float64(docs)
}
