package threads

import "math/bits"

// Set is a bitset over dense thread indices. Sets are plain word slices;
// operations that produce a new Set never alias their input.
type Set []uint64

func NewSet(size int) Set {
	return make(Set, (size+63)/64)
}

func (s Set) Add(i int) {
	s[i>>6] |= 1 << (uint(i) & 63)
}

func (s Set) Remove(i int) {
	s[i>>6] &^= 1 << (uint(i) & 63)
}

func (s Set) Has(i int) bool {
	w := i >> 6
	return w < len(s) && s[w]&(1<<(uint(i)&63)) != 0
}

func (s Set) Count() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

func (s Set) Empty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

func (s Set) Clone() Set {
	c := make(Set, len(s))
	copy(c, s)
	return c
}

// Intersect returns s ∩ other as a new Set sized like s.
func (s Set) Intersect(other Set) Set {
	c := make(Set, len(s))
	for i := range c {
		if i < len(other) {
			c[i] = s[i] & other[i]
		}
	}
	return c
}

func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Next returns the first set bit at or after index from, wrapping around
// to zero, considering only indices below size. Returns -1 if s is empty.
func (s Set) Next(from, size int) int {
	if size <= 0 {
		return -1
	}
	from %= size
	if i := s.scan(from, size); i >= 0 {
		return i
	}
	return s.scan(0, from)
}

// scan returns the first set bit in [from, limit), or -1.
func (s Set) scan(from, limit int) int {
	for from < limit {
		word := s[from>>6] >> (uint(from) & 63)
		if word != 0 {
			if i := from + bits.TrailingZeros64(word); i < limit {
				return i
			}
		}
		from = (from | 63) + 1
	}
	return -1
}
