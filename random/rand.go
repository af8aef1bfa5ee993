// Package random supplies the harness with uniform and derived random
// draws through an explicit, injectable sampler. There is no global
// rebinding: deterministic tests construct a seeded Rand and pass it down,
// concurrent code takes per-goroutine samplers from a Pool.
package random

import "fmt"

// Rand samples distributions from a Source. Not safe for concurrent use;
// each goroutine gets its own (see Pool).
type Rand struct {
	src Source
}

// New returns a sampler seeded from system entropy.
func New() *Rand {
	return NewSeeded(NewSeed())
}

// NewSeeded returns a deterministic sampler: two samplers built from the
// same seed produce identical draw sequences.
func NewSeeded(seed int64) *Rand {
	return &Rand{src: NewSplitMix(seed)}
}

// NewFromSource wraps an alternate entropy backend.
func NewFromSource(src Source) *Rand {
	return &Rand{src: src}
}

// Split derives an independent sampler. For non-splittable backends the
// child is seeded from a draw of the parent.
func (r *Rand) Split() *Rand {
	if s, ok := r.src.(*SplitMix); ok {
		return &Rand{src: s.Split()}
	}
	return NewSeeded(int64(r.src.Uint64()))
}

func (r *Rand) Uint64() uint64 {
	return r.src.Uint64()
}

// Int64 spans the full representable range, negatives included.
func (r *Rand) Int64() int64 {
	return int64(r.src.Uint64())
}

func (r *Rand) Int63() int64 {
	return int64(r.src.Uint64() >> 1)
}

// uint64n returns a uniform value in [0, n), n > 0, by rejection so that
// no residue class is favored.
func (r *Rand) uint64n(n uint64) uint64 {
	if n&(n-1) == 0 {
		return r.src.Uint64() & (n - 1)
	}
	max := ^uint64(0) - ^uint64(0)%n
	v := r.src.Uint64()
	for v >= max {
		v = r.src.Uint64()
	}
	return v % n
}

// Int63n returns a uniform value in [0, upper). Panics if upper <= 0.
func (r *Rand) Int63n(upper int64) int64 {
	if upper <= 0 {
		panic(fmt.Sprintf("random: Int63n upper bound %d out of range", upper))
	}
	return int64(r.uint64n(uint64(upper)))
}

// Int63Range returns a uniform value in [lower, upper). Panics if
// upper <= lower.
func (r *Rand) Int63Range(lower, upper int64) int64 {
	if upper <= lower {
		panic(fmt.Sprintf("random: empty range [%d, %d)", lower, upper))
	}
	return lower + int64(r.uint64n(uint64(upper)-uint64(lower)))
}

func (r *Rand) Intn(n int) int {
	return int(r.Int63n(int64(n)))
}

// Float64 returns a uniform value in [0, 1), built from the top 53 bits so
// every result is exactly representable.
func (r *Rand) Float64() float64 {
	return float64(r.src.Uint64()>>11) / (1 << 53)
}

// Float64n returns a uniform value in [0, upper). Panics if upper <= 0.
func (r *Rand) Float64n(upper float64) float64 {
	if !(upper > 0) {
		panic(fmt.Sprintf("random: Float64n upper bound %v out of range", upper))
	}
	return r.Float64() * upper
}

// Float64Range returns a uniform value in [lower, upper). Panics if
// upper <= lower.
func (r *Rand) Float64Range(lower, upper float64) float64 {
	if !(upper > lower) {
		panic(fmt.Sprintf("random: empty range [%v, %v)", lower, upper))
	}
	return lower + r.Float64()*(upper-lower)
}

// Perm returns a random permutation of 0..n-1.
func (r *Rand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}
