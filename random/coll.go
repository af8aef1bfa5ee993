package random

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Nth picks a uniformly random element. Panics on an empty slice; NthOk is
// the lenient twin.
func Nth[T any](r *Rand, xs []T) T {
	if len(xs) == 0 {
		panic("random: Nth of empty slice")
	}
	return xs[r.Intn(len(xs))]
}

// NthOk picks a uniformly random element, reporting false on empty input.
func NthOk[T any](r *Rand, xs []T) (T, bool) {
	if len(xs) == 0 {
		var zero T
		return zero, false
	}
	return xs[r.Intn(len(xs))], true
}

// Shuffle returns a Fisher–Yates permutation of xs as a new slice, leaving
// the input untouched.
func Shuffle[T any](r *Rand, xs []T) []T {
	out := slices.Clone(xs)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NonEmptySubset returns a prefix of a random permutation of xs, length
// uniform over 1..len(xs), or nil for empty input. Duplicates in the input
// may appear in the output; this is a random ordered sequence, not a
// mathematical subset.
func NonEmptySubset[T any](r *Rand, xs []T) []T {
	if len(xs) == 0 {
		return nil
	}
	out := Shuffle(r, xs)
	return out[:1+r.Intn(len(xs))]
}

// Weighted picks a key with probability proportional to its weight,
// reporting false when the weights sum to zero. Keys are visited in sorted
// order so the draw is deterministic under a seeded sampler.
func Weighted[K constraints.Ordered](r *Rand, weights map[K]float64) (K, bool) {
	keys := maps.Keys(weights)
	slices.Sort(keys)
	ws := make([]float64, len(keys))
	for i, k := range keys {
		ws[i] = weights[k]
	}
	i := r.WeightedIndex(ws)
	if i < 0 {
		var zero K
		return zero, false
	}
	return keys[i], true
}
