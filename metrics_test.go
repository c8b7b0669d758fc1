package docset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/docset"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &docset.BasicMetricsCollector{}

	a := buildSet(t, seq(0, 64), docset.WithMetrics(m))
	b := buildSet(t, []uint32{3, 70}, docset.WithMetrics(m))

	assert.Equal(t, int64(2), m.BuildCount.Load())
	assert.Equal(t, int64(66), m.BuildDocs.Load())
	assert.Positive(t, m.BuildBytes.Load())
	assert.Positive(t, m.BitsPerDoc())

	_, err := docset.Intersect([]*docset.Set{a, b}, docset.DefaultIndexInterval, docset.WithMetrics(m))
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.IntersectCount.Load())
	assert.Equal(t, int64(2), m.IntersectInputs.Load())

	_, err = docset.Union([]*docset.Set{a, b, a}, docset.DefaultIndexInterval, docset.WithMetrics(m))
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.UnionCount.Load())
	assert.Equal(t, int64(3), m.UnionInputs.Load())

	data, err := a.MarshalBinary()
	require.NoError(t, err)
	_, err = docset.Unmarshal(data, docset.WithMetrics(m))
	require.NoError(t, err)
	_, err = docset.Unmarshal(data[:5], docset.WithMetrics(m))
	require.Error(t, err)

	assert.Equal(t, int64(2), m.DecodeCount.Load())
	assert.Equal(t, int64(1), m.DecodeErrorCount.Load())
	assert.Equal(t, int64(len(data)+5), m.DecodeBytes.Load())
}

func TestBasicMetricsCollector_BitsPerDocEmpty(t *testing.T) {
	m := &docset.BasicMetricsCollector{}
	assert.Zero(t, m.BitsPerDoc())
}

func TestNoopMetricsCollector(t *testing.T) {
	var m docset.MetricsCollector = docset.NoopMetricsCollector{}
	buildSet(t, []uint32{1}, docset.WithMetrics(m))
	buildSet(t, []uint32{1}, docset.WithMetrics(nil))
}
