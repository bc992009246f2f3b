// Package gen implements the weighted random generation of towns and
// populations. All sampling flows through an injected *rand.Rand so a fixed
// seed reproduces an identical dataset.
package gen

import (
	"fmt"
	"math/rand"
	"time"
)

// NewSeededRand creates a random source from the given seed. A seed of zero
// derives one from the wall clock, which is the only non-reproducible mode.
func NewSeededRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// WeightedIndex picks an index with probability proportional to its weight.
// Non-positive weights are treated as zero.
func WeightedIndex(r *rand.Rand, weights []float64) (int, error) {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0, fmt.Errorf("weighted index: no positive weights among %d entries", len(weights))
	}

	target := r.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		target -= w
		if target < 0 {
			return i, nil
		}
	}
	// Float round-off can leave target at exactly zero; fall back to the
	// last positively weighted entry.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("weighted index: no positive weights among %d entries", len(weights))
}

// WeightedChoice picks one item with probability proportional to its weight.
// The two slices must have equal length.
func WeightedChoice[T any](r *rand.Rand, items []T, weights []float64) (T, error) {
	var zero T
	if len(items) != len(weights) {
		return zero, fmt.Errorf("weighted choice: %d items but %d weights", len(items), len(weights))
	}
	i, err := WeightedIndex(r, weights)
	if err != nil {
		return zero, err
	}
	return items[i], nil
}

// Choice picks one item uniformly.
func Choice[T any](r *rand.Rand, items []T) T {
	return items[r.Intn(len(items))]
}

// Sample draws up to k items without replacement, preserving no particular
// order. Asking for more items than exist returns a shuffled copy of all of
// them rather than an error.
func Sample[T any](r *rand.Rand, items []T, k int) []T {
	if k <= 0 || len(items) == 0 {
		return nil
	}
	if k > len(items) {
		k = len(items)
	}
	picked := make([]T, len(items))
	copy(picked, items)
	// Partial Fisher-Yates: only the first k positions need shuffling.
	for i := 0; i < k; i++ {
		j := i + r.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:k]
}

// IntInRange returns a uniform integer in [lo, hi] inclusive.
func IntInRange(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// FloatInRange returns a uniform float in [lo, hi).
func FloatInRange(r *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Round2 truncates a float to two decimal places, the precision used for
// street lengths, park areas, and town areas in the data files.
func Round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
