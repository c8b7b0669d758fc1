package docset_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/docset"
	"github.com/hupe1980/docset/testutil"
)

func TestIntersect(t *testing.T) {
	a := buildSet(t, seq(0, 8))
	b := buildSet(t, []uint32{3, 4, 5})

	got, err := docset.Intersect([]*docset.Set{a, b}, docset.DefaultIndexInterval)
	require.NoError(t, err)

	assert.Equal(t, []uint32{3, 4, 5}, collect(got))
	assert.Equal(t, uint64(3), got.Cardinality())
}

func TestIntersect_Edges(t *testing.T) {
	a := buildSet(t, []uint32{1, 2, 3})

	t.Run("no sets", func(t *testing.T) {
		_, err := docset.Intersect(nil, docset.DefaultIndexInterval)
		assert.ErrorIs(t, err, docset.ErrNoSets)
	})

	t.Run("single set", func(t *testing.T) {
		got, err := docset.Intersect([]*docset.Set{a}, docset.DefaultIndexInterval)
		require.NoError(t, err)
		assert.Same(t, a, got)
	})

	t.Run("with empty", func(t *testing.T) {
		got, err := docset.Intersect([]*docset.Set{a, docset.Empty()}, docset.DefaultIndexInterval)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})

	t.Run("disjoint", func(t *testing.T) {
		b := buildSet(t, []uint32{4, 5, 100})
		got, err := docset.Intersect([]*docset.Set{a, b}, docset.DefaultIndexInterval)
		require.NoError(t, err)
		assert.Same(t, docset.Empty(), got)
	})

	t.Run("same word no common bit", func(t *testing.T) {
		b := buildSet(t, []uint32{0, 4, 5, 8})
		c := buildSet(t, []uint32{6, 7, 8})
		got, err := docset.Intersect([]*docset.Set{b, c}, docset.DefaultIndexInterval)
		require.NoError(t, err)
		assert.Equal(t, []uint32{8}, collect(got))
	})

	t.Run("invalid interval", func(t *testing.T) {
		_, err := docset.Intersect([]*docset.Set{a, a}, 4)
		var intervalErr *docset.IndexIntervalError
		require.True(t, errors.As(err, &intervalErr))
		assert.Equal(t, 4, intervalErr.IndexInterval)
	})

	t.Run("result interval", func(t *testing.T) {
		got, err := docset.Intersect([]*docset.Set{a, a}, 40)
		require.NoError(t, err)
		assert.Equal(t, 40, got.IndexInterval())
		assert.Equal(t, []uint32{1, 2, 3}, collect(got))
	})
}

func TestUnion(t *testing.T) {
	a := buildSet(t, []uint32{0, 1})
	b := buildSet(t, []uint32{2, 3})

	got, err := docset.Union([]*docset.Set{a, b}, docset.DefaultIndexInterval)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 1, 2, 3}, collect(got))
	assert.Equal(t, uint64(4), got.Cardinality())
}

func TestUnion_Edges(t *testing.T) {
	a := buildSet(t, []uint32{1, 2, 3})

	t.Run("no sets", func(t *testing.T) {
		got, err := docset.Union(nil, docset.DefaultIndexInterval)
		require.NoError(t, err)
		assert.Same(t, docset.Empty(), got)
	})

	t.Run("single set", func(t *testing.T) {
		got, err := docset.Union([]*docset.Set{a}, docset.DefaultIndexInterval)
		require.NoError(t, err)
		assert.Same(t, a, got)
	})

	t.Run("all empty", func(t *testing.T) {
		got, err := docset.Union([]*docset.Set{docset.Empty(), docset.Empty()}, docset.DefaultIndexInterval)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})

	t.Run("with empty", func(t *testing.T) {
		got, err := docset.Union([]*docset.Set{docset.Empty(), a}, docset.DefaultIndexInterval)
		require.NoError(t, err)
		assert.Equal(t, []uint32{1, 2, 3}, collect(got))
	})

	t.Run("overlapping words become runs", func(t *testing.T) {
		even := make([]uint32, 0, 512)
		odd := make([]uint32, 0, 512)
		for i := uint32(0); i < 1024; i += 2 {
			even = append(even, i)
			odd = append(odd, i+1)
		}
		got, err := docset.Union([]*docset.Set{buildSet(t, even), buildSet(t, odd)}, docset.DefaultIndexInterval)
		require.NoError(t, err)
		assert.Equal(t, seq(0, 1024), collect(got))
	})

	t.Run("inputs end at different words", func(t *testing.T) {
		short := buildSet(t, []uint32{0, 9})
		long := buildSet(t, []uint32{9, 10, 5000, 70000})
		got, err := docset.Union([]*docset.Set{long, short, a}, docset.DefaultIndexInterval)
		require.NoError(t, err)
		assert.Equal(t, []uint32{0, 1, 2, 3, 9, 10, 5000, 70000}, collect(got))
	})

	t.Run("invalid interval", func(t *testing.T) {
		_, err := docset.Union([]*docset.Set{a, a}, 0)
		assert.ErrorIs(t, err, docset.ErrInvalidIndexInterval)
	})
}

func TestAlgebra_MatchesSortedSlices(t *testing.T) {
	rng := testutil.NewRNG(4711)

	cases := []struct {
		name  string
		lists [][]uint32
	}{
		{
			name: "sparse",
			lists: [][]uint32{
				rng.SparseDocIDs(20000, 1<<20),
				rng.SparseDocIDs(20000, 1<<20),
			},
		},
		{
			name: "runs and sparse",
			lists: [][]uint32{
				rng.DenseRuns(100, 500, 2000),
				rng.SparseDocIDs(5000, 1<<18),
				rng.DenseRuns(40, 2000, 500),
			},
		},
		{
			name: "clustered",
			lists: [][]uint32{
				rng.ClusteredDocIDs(100, 200, 300),
				rng.ClusteredDocIDs(100, 200, 300),
				rng.ZipfGapDocIDs(20000, 64, 1.0),
				rng.DenseRuns(100, 300, 300),
			},
		},
		{
			name: "tiny and huge",
			lists: [][]uint32{
				{17, 5000, 250000, 999999},
				rng.DenseRuns(1, 1000000, 0),
			},
		},
	}

	for _, tc := range cases {
		sets := make([]*docset.Set, len(tc.lists))
		for i, ids := range tc.lists {
			sets[i] = buildSet(t, ids)
		}

		for _, interval := range []int{8, docset.DefaultIndexInterval, 1000000} {
			t.Run(fmt.Sprintf("%s/intersect/%d", tc.name, interval), func(t *testing.T) {
				got, err := docset.Intersect(sets, interval)
				require.NoError(t, err)

				want := testutil.IntersectSorted(tc.lists...)
				if len(want) == 0 {
					assert.True(t, got.IsEmpty())
					return
				}
				assert.Equal(t, want, collect(got))
				assert.Equal(t, uint64(len(want)), got.Cardinality())
			})

			t.Run(fmt.Sprintf("%s/union/%d", tc.name, interval), func(t *testing.T) {
				got, err := docset.Union(sets, interval)
				require.NoError(t, err)

				want := testutil.UnionSorted(tc.lists...)
				assert.Equal(t, want, collect(got))
				assert.Equal(t, uint64(len(want)), got.Cardinality())
				assert.Equal(t, interval, got.IndexInterval())
			})
		}
	}
}

func TestAlgebra_InputsUnchanged(t *testing.T) {
	ids := testutil.NewRNG(1).ClusteredDocIDs(20, 40, 64)
	a := buildSet(t, ids)
	b := buildSet(t, seq(0, 4096))

	_, err := docset.Intersect([]*docset.Set{a, b}, docset.DefaultIndexInterval)
	require.NoError(t, err)
	_, err = docset.Union([]*docset.Set{a, b}, docset.DefaultIndexInterval)
	require.NoError(t, err)

	assert.Equal(t, ids, collect(a))
	assert.Equal(t, seq(0, 4096), collect(b))
}
