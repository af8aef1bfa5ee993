package random

import (
	"fmt"
	"math"
)

// ExpFloat64 returns an exponential deviate with rate lambda via the
// inverse CDF of a uniform draw. Always positive. Panics if lambda <= 0.
func (r *Rand) ExpFloat64(lambda float64) float64 {
	if !(lambda > 0) {
		panic(fmt.Sprintf("random: ExpFloat64 lambda %v out of range", lambda))
	}
	for {
		u := r.Float64()
		if u > 0 {
			return -math.Log(u) / lambda
		}
	}
}

// Geometric returns the number of Bernoulli failures before the first
// success, for success probability p in (0, 1]. Supported on {0, 1, ...}.
func (r *Rand) Geometric(p float64) int64 {
	if !(p > 0) || p > 1 {
		panic(fmt.Sprintf("random: Geometric p %v out of range", p))
	}
	if p == 1 {
		return 0
	}
	for {
		u := r.Float64()
		if u > 0 {
			return int64(math.Log(u) / math.Log1p(-p))
		}
	}
}

// DefaultZipfSkew sits just above 1.0; the rejection-inversion scheme has
// a singularity at exactly 1.0.
const DefaultZipfSkew = 1.0001

// Zipf returns a Zipfian value in [0, n) with the default skew.
func (r *Rand) Zipf(n int64) int64 {
	return r.ZipfSkew(DefaultZipfSkew, n)
}

// ZipfSkew returns a Zipfian value in [0, n): 0 is the most probable rank,
// with tail mass controlled by skew. Sampling is rejection-inversion
// (Hörmann & Derflinger); exact skew 1.0 is unsupported and panics.
func (r *Rand) ZipfSkew(skew float64, n int64) int64 {
	if skew == 1.0 {
		panic("random: ZipfSkew does not support skew exactly 1.0")
	}
	if !(skew > 0) {
		panic(fmt.Sprintf("random: ZipfSkew skew %v out of range", skew))
	}
	if n < 0 {
		panic(fmt.Sprintf("random: ZipfSkew n %d out of range", n))
	}
	if n <= 1 {
		return 0
	}
	z := zipfSampler{skew: skew, n: float64(n)}
	return z.sample(r) - 1
}

// zipfSampler draws one-indexed ranks in [1, n]; callers shift to zero.
type zipfSampler struct {
	skew float64
	n    float64
}

func (z *zipfSampler) sample(r *Rand) int64 {
	hX1 := z.hIntegral(1.5) - 1
	hN := z.hIntegral(z.n + 0.5)
	s := 2 - z.hIntegralInverse(z.hIntegral(2.5)-z.h(2))
	for {
		u := hN + r.Float64()*(hX1-hN)
		x := z.hIntegralInverse(u)
		k := math.Round(x)
		// The inverse can land just outside [1, n]; clamp, the
		// acceptance test below keeps the distribution intact.
		if k < 1 {
			k = 1
		} else if k > z.n {
			k = z.n
		}
		if k-x <= s || u >= z.hIntegral(k+0.5)-z.h(k) {
			return int64(k)
		}
	}
}

// hIntegral is the antiderivative of h, written with expm1 for stability
// near skew 1.
func (z *zipfSampler) hIntegral(x float64) float64 {
	logX := math.Log(x)
	return helper2((1-z.skew)*logX) * logX
}

func (z *zipfSampler) h(x float64) float64 {
	return math.Exp(-z.skew * math.Log(x))
}

func (z *zipfSampler) hIntegralInverse(x float64) float64 {
	t := x * (1 - z.skew)
	if t < -1 {
		t = -1
	}
	return math.Exp(helper1(t) * x)
}

// helper1 computes log1p(x)/x with the correct limit at zero.
func helper1(x float64) float64 {
	if math.Abs(x) > 1e-8 {
		return math.Log1p(x) / x
	}
	return 1 - x*(0.5-x*(1.0/3.0-x*0.25))
}

// helper2 computes expm1(x)/x with the correct limit at zero.
func helper2(x float64) float64 {
	if math.Abs(x) > 1e-8 {
		return math.Expm1(x) / x
	}
	return 1 + x*0.5*(1+x*(1.0/3.0)*(1+x*0.25))
}

// WeightedIndex picks an index with probability proportional to its
// weight, or -1 when the weights sum to zero. Panics on a negative weight.
func (r *Rand) WeightedIndex(weights []float64) int {
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			panic(fmt.Sprintf("random: negative weight %v at index %d", w, i))
		}
		total += w
	}
	if total == 0 {
		return -1
	}
	x := r.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if x < cum {
			return i
		}
	}
	// Rounding can push x to the very end; take the last usable index.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}
