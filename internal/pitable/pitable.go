// Package pitable provides O(1) pi(n) lookups over a mod-240 wheel
// bitset: PiTable holds the whole range [0, limit] in memory, while
// SegmentedPiTable slides a fixed-size window across [0, limit] for
// computations whose lookups arrive in ascending segments.
package pitable

import (
	"fmt"

	pcerrors "github.com/pgujjula/primecount/errors"
	"github.com/pgujjula/primecount/internal/generate"
	"github.com/pgujjula/primecount/internal/imath"
	"github.com/pgujjula/primecount/internal/mem"
	"github.com/pgujjula/primecount/internal/wheel240"
)

// tinyPi[n] = pi(n) for n <= 5, the numbers below the first wheel
// residue that can represent a prime.
var tinyPi = [6]int64{0, 0, 1, 2, 2, 3}

// PiTable supports pi(n) lookups for every n in [0, limit].
//
// bits[i] marks the primes among the wheel residues of window i;
// counts[i] is the number of primes below i*240 (including 2, 3 and 5,
// which the wheel cannot represent). A lookup is one popcount:
//
//	pi(n) = counts[n/240] + popcount(bits[n/240] & UnsetLarger[n%240])
type PiTable struct {
	limit   int64
	bits    []uint64
	counts  []uint64
	release func()
}

// New builds the table for [0, limit] using up to threads workers.
func New(limit int64, threads int) (*PiTable, error) {
	if limit < 0 {
		panic("pitable: New: negative limit")
	}
	words := limit/wheel240.WindowSize + 1
	bits, freeBits, err := mem.Uint64s(words)
	if err != nil {
		return nil, err
	}
	counts, freeCounts, err := mem.Uint64s(words)
	if err != nil {
		freeBits()
		return nil, err
	}

	sievingPrimes := generate.Primes(int64(imath.Isqrt(uint64(limit))))[1:]
	parallelSieve(bits, 0, limit+1, sievingPrimes, threads)

	running := uint64(3) // primes 2, 3, 5
	for i := range counts {
		counts[i] = running
		running += uint64(popcount(bits[i]))
	}

	return &PiTable{
		limit:  limit,
		bits:   bits,
		counts: counts,
		release: func() {
			freeBits()
			freeCounts()
		},
	}, nil
}

// Pi returns pi(n). Looking up n outside [0, limit] is a programming
// error and panics.
func (t *PiTable) Pi(n int64) int64 {
	if n < 0 || n > t.limit {
		panic(fmt.Errorf("%w: pi(%d) outside [0, %d]", pcerrors.ErrContractViolation, n, t.limit))
	}
	if n < int64(len(tinyPi)) {
		return tinyPi[n]
	}
	w := n / wheel240.WindowSize
	return int64(t.counts[w]) + popcount(t.bits[w]&wheel240.UnsetLarger[n%wheel240.WindowSize])
}

// Limit returns the largest n the table can look up.
func (t *PiTable) Limit() int64 {
	return t.limit
}

// Free returns the table's memory to the OS. The table must not be
// used afterwards.
func (t *PiTable) Free() {
	t.bits = nil
	t.counts = nil
	t.release()
}
