// Package testutil provides testing utilities for docset.
//
// This package is intended for use in tests and benchmarks only.
// It generates sorted doc ID lists with different shapes and computes
// reference results on plain slices to check encoded sets against.
//
// # Doc ID Generation
//
//	rng := testutil.NewRNG(seed)
//	sparse := rng.SparseDocIDs(10_000, 1<<24)  // uniform, few per word
//	runs := rng.DenseRuns(64, 512, 4096)       // long all-ones runs
//	mixed := rng.ClusteredDocIDs(32, 200, 300) // dense clusters, sparse gaps
//
// # Reference Results
//
//	want := testutil.IntersectSorted(a, b)
//	got := slices.Collect(set.All())
package testutil
