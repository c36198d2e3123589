// Package sieve implements the segmented bit sieve used by the
// hard-leaves formula, together with the Counters structure that
// answers prefix-popcount queries over the sieve in O(log n).
package sieve

import "math/bits"

// coprime30 marks the residues mod 30 coprime to 2, 3 and 5.
var coprime30 [30]bool

func init() {
	for r := 0; r < 30; r++ {
		coprime30[r] = r%2 != 0 && r%3 != 0 && r%5 != 0
	}
}

// BitSieve is a segment of a sieve of Eratosthenes with one bit per
// integer. Position i represents the integer low + i of the segment
// most recently passed to Fill; a set bit means the integer has not
// been crossed off yet.
type BitSieve struct {
	words []uint64
	size  int64
}

// NewBitSieve allocates a sieve of the given segment size, which must
// be a power of two.
func NewBitSieve(size int64) *BitSieve {
	if size&(size-1) != 0 || size < 64 {
		panic("sieve: NewBitSieve: size must be a power of two >= 64")
	}
	return &BitSieve{
		words: make([]uint64, size/64),
		size:  size,
	}
}

// Size returns the segment size.
func (s *BitSieve) Size() int64 {
	return s.size
}

// Fill initializes the segment for [low, low+size): every position
// whose integer is coprime to 2, 3 and 5 is set, and positions at or
// beyond high are cleared.
func (s *BitSieve) Fill(low, high int64) {
	for w := range s.words {
		var word uint64
		base := low + int64(w)*64
		for b := int64(0); b < 64; b++ {
			n := base + b
			if n >= high {
				break
			}
			if coprime30[n%30] {
				word |= 1 << uint(b)
			}
		}
		s.words[w] = word
	}
}

// Bit reports whether position i is still set.
func (s *BitSieve) Bit(i int64) bool {
	return s.words[i/64]&(1<<(uint(i)%64)) != 0
}

// Unset clears position i.
func (s *BitSieve) Unset(i int64) {
	s.words[i/64] &^= 1 << (uint(i) % 64)
}

// CrossOff clears the odd multiples of prime within [low, high),
// resuming from *next and writing the first multiple >= high back into
// *next for the following segment. Each newly cleared position is
// reported to counters; a nil counters skips the updates (used while
// pre-sieving the first c primes, before the tree is built).
// prime must not be 2, 3 or 5: the even multiples skipped by the
// 2*prime stride were never set by Fill.
func (s *BitSieve) CrossOff(prime, low, high int64, next *int64, counters *Counters) {
	k := *next
	for ; k < high; k += prime * 2 {
		i := k - low
		if s.Bit(i) {
			s.Unset(i)
			if counters != nil {
				counters.Update(i)
			}
		}
	}
	*next = k
}

// popcountTo counts the set positions in [0, i]; used by tests to
// validate Counters against the ground truth.
func (s *BitSieve) popcountTo(i int64) int64 {
	var count int64
	full := (i + 1) / 64
	for w := int64(0); w < full; w++ {
		count += int64(bits.OnesCount64(s.words[w]))
	}
	if rem := (i + 1) % 64; rem != 0 {
		count += int64(bits.OnesCount64(s.words[full] & (1<<uint(rem) - 1)))
	}
	return count
}
