package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint32n returns a pseudo-random uint32 in [0,n).
func (r *RNG) Uint32n(n uint32) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint32(r.rand.Int63n(int64(n)))
}

// SparseDocIDs returns up to n distinct sorted doc IDs drawn uniformly
// from [0, maxDoc). Duplicates are dropped, so fewer may be returned.
func (r *RNG) SparseDocIDs(n int, maxDoc uint32) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = uint32(r.rand.Int63n(int64(maxDoc)))
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// DenseRuns returns runs consecutive blocks of runLen doc IDs separated by
// random gaps of at most maxGap. Long runs encode as all-ones words.
func (r *RNG) DenseRuns(runs, runLen, maxGap int) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uint32, 0, runs*runLen)
	next := uint32(r.rand.Intn(maxGap + 1))
	for range runs {
		for j := range runLen {
			ids = append(ids, next+uint32(j))
		}
		next += uint32(runLen) + 1 + uint32(r.rand.Intn(maxGap+1))
	}
	return ids
}

// ClusteredDocIDs returns clusters of perCluster doc IDs, each drawn from a
// window of spread doc IDs, with random gaps between clusters. The result
// mixes dirty words, clean zero gaps and occasional all-ones words.
func (r *RNG) ClusteredDocIDs(clusters, perCluster, spread int) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uint32, 0, clusters*perCluster)
	base := uint32(0)
	for range clusters {
		base += uint32(r.rand.Intn(64 * spread))
		for range perCluster {
			ids = append(ids, base+uint32(r.rand.Intn(spread)))
		}
		base += uint32(spread)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// MixedWordDocIDs returns the doc IDs of words consecutive words, each of
// which is empty, full or a random partial byte with equal probability.
func (r *RNG) MixedWordDocIDs(words int) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []uint32
	for w := range uint32(words) {
		var word int
		switch r.rand.Intn(3) {
		case 0:
		case 1:
			word = 0xFF
		default:
			word = 1 + r.rand.Intn(0xFE)
		}
		for bit := range uint32(8) {
			if word&(1<<bit) != 0 {
				ids = append(ids, w*8+bit)
			}
		}
	}
	return ids
}

// ZipfGapDocIDs returns n sorted doc IDs whose gaps follow a Zipfian
// distribution over [1, maxGap]: mostly small gaps with a heavy tail.
func (r *RNG) ZipfGapDocIDs(n, maxGap int, s float64) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	weights := zipfWeights(maxGap, s)
	ids := make([]uint32, n)
	next := uint32(0)
	for i := range ids {
		ids[i] = next
		next += uint32(r.zipfLocked(weights)) + 1
	}
	return ids
}

// zipfWeights returns the cumulative weights of P(k) ∝ 1/k^s for k in [1, n].
func zipfWeights(n int, s float64) []float64 {
	cumulative := make([]float64, max(n, 1))
	var sum float64
	for k := range cumulative {
		sum += 1.0 / math.Pow(float64(k+1), s)
		cumulative[k] = sum
	}
	return cumulative
}

// zipfLocked samples an index in [0, len(cumulative)) (caller must hold lock).
func (r *RNG) zipfLocked(cumulative []float64) int {
	u := r.rand.Float64() * cumulative[len(cumulative)-1]
	i, _ := slices.BinarySearch(cumulative, u)
	return min(i, len(cumulative)-1)
}

// IntersectSorted returns the values present in every sorted list.
func IntersectSorted(lists ...[]uint32) []uint32 {
	if len(lists) == 0 {
		return nil
	}
	result := slices.Clone(lists[0])
	for _, list := range lists[1:] {
		out := result[:0]
		i, j := 0, 0
		for i < len(result) && j < len(list) {
			switch {
			case result[i] < list[j]:
				i++
			case result[i] > list[j]:
				j++
			default:
				out = append(out, result[i])
				i++
				j++
			}
		}
		result = out
	}
	return result
}

// UnionSorted returns the distinct values of all sorted lists in order.
func UnionSorted(lists ...[]uint32) []uint32 {
	var all []uint32
	for _, list := range lists {
		all = append(all, list...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

// AdvanceSorted returns the first value >= target in a sorted list and
// whether there is one.
func AdvanceSorted(list []uint32, target uint32) (uint32, bool) {
	i, _ := slices.BinarySearch(list, target)
	if i == len(list) {
		return 0, false
	}
	return list[i], true
}
