package random

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/bits"
)

// Source is a stream of uniform 64-bit values. Implementations are not
// required to be safe for concurrent use; use a Pool to hand a private
// source to each goroutine.
type Source interface {
	Uint64() uint64
}

// NewSeed draws a seed from system entropy.
func NewSeed() int64 {
	var seed [8]byte
	crypto_rand.Read(seed[:])
	return int64(binary.LittleEndian.Uint64(seed[:]))
}

// SplitMix is a SplitMix64 generator with a per-instance gamma, so that
// Split can derive statistically independent children (Steele, Lea &
// Flood, "Fast splittable pseudorandom number generators").
type SplitMix struct {
	seed  uint64
	gamma uint64
}

const goldenGamma = 0x9e3779b97f4a7c15

func NewSplitMix(seed int64) *SplitMix {
	return &SplitMix{seed: uint64(seed), gamma: goldenGamma}
}

func (s *SplitMix) next() uint64 {
	s.seed += s.gamma
	return s.seed
}

func (s *SplitMix) Uint64() uint64 {
	return mix64(s.next())
}

// Split returns a child generator whose output stream is uncorrelated with
// the parent's. The parent advances by two draws.
func (s *SplitMix) Split() *SplitMix {
	seed := mix64(s.next())
	return &SplitMix{seed: seed, gamma: mixGamma(s.next())}
}

func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func mixGamma(z uint64) uint64 {
	z = (z ^ (z >> 33)) * 0xff51afd7ed558ccd
	z = (z ^ (z >> 33)) * 0xc4ceb9fe1a85ec53
	z = (z ^ (z >> 33)) | 1
	// Gammas with too few bit transitions weaken the low-order bits.
	if bits.OnesCount64(z^(z>>1)) < 24 {
		z ^= 0xaaaaaaaaaaaaaaaa
	}
	return z
}
