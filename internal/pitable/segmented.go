package pitable

import (
	"fmt"

	pcerrors "github.com/pgujjula/primecount/errors"
	"github.com/pgujjula/primecount/internal/generate"
	"github.com/pgujjula/primecount/internal/imath"
	"github.com/pgujjula/primecount/internal/mem"
	"github.com/pgujjula/primecount/internal/wheel240"
)

// SegmentedPiTable provides the same pi(n) lookups as PiTable but over
// a sliding window [low, high) advanced with Next across [0, limit].
// Exactly one window is live at a time; the memory footprint is the
// window size rather than the full range.
//
// counts[j] holds the number of primes below the j-th window's base,
// carried across segments, so lookups work exactly as in PiTable.
type SegmentedPiTable struct {
	limit       int64
	segmentSize int64 // multiple of 240
	low, high   int64
	bits        []uint64
	counts      []uint64
	belowLow    uint64 // prime count below the base of the next window to fill (2, 3, 5 counted from the start)
	sieving     []int64
	threads     int
	release     func()
}

// NewSegmented builds the first window of a table covering [0, limit].
// segmentSize is rounded up to a multiple of 240.
func NewSegmented(limit, segmentSize int64, threads int) (*SegmentedPiTable, error) {
	if limit < 0 {
		panic("pitable: NewSegmented: negative limit")
	}
	if segmentSize < wheel240.WindowSize {
		segmentSize = wheel240.WindowSize
	}
	segmentSize = imath.CeilDiv(segmentSize, wheel240.WindowSize) * wheel240.WindowSize

	words := segmentSize / wheel240.WindowSize
	bits, freeBits, err := mem.Uint64s(words)
	if err != nil {
		return nil, err
	}
	counts, freeCounts, err := mem.Uint64s(words)
	if err != nil {
		freeBits()
		return nil, err
	}

	t := &SegmentedPiTable{
		limit:       limit,
		segmentSize: segmentSize,
		low:         0,
		high:        min(segmentSize, limit+1),
		bits:        bits,
		counts:      counts,
		belowLow:    3, // primes 2, 3, 5 precede every wheel position
		sieving:     generate.Primes(int64(imath.Isqrt(uint64(limit))))[1:],
		threads:     threads,
		release: func() {
			freeBits()
			freeCounts()
		},
	}
	t.fill()
	return t, nil
}

func (t *SegmentedPiTable) fill() {
	words := imath.CeilDiv(t.high-t.low, wheel240.WindowSize)
	parallelSieve(t.bits[:words], t.low, t.high, t.sieving, t.threads)

	running := t.belowLow
	for j := int64(0); j < words; j++ {
		t.counts[j] = running
		running += uint64(popcount(t.bits[j]))
	}
	// running is now the prime count below the next window's base.
	t.belowLow = running
}

// Low returns the inclusive lower bound of the live window.
func (t *SegmentedPiTable) Low() int64 {
	return t.low
}

// High returns the exclusive upper bound of the live window.
func (t *SegmentedPiTable) High() int64 {
	return t.high
}

// Finished reports whether the window has moved past limit.
func (t *SegmentedPiTable) Finished() bool {
	return t.low > t.limit
}

// Next advances the window to the following segment and sieves it.
func (t *SegmentedPiTable) Next() {
	t.low += t.segmentSize
	t.high = min(t.low+t.segmentSize, t.limit+1)
	if !t.Finished() {
		t.fill()
	}
}

// Pi returns pi(n) for n within the live window [low, high).
func (t *SegmentedPiTable) Pi(n int64) int64 {
	if n < t.low || n >= t.high {
		panic(fmt.Errorf("%w: segmented pi(%d) outside window [%d, %d)",
			pcerrors.ErrContractViolation, n, t.low, t.high))
	}
	if n < int64(len(tinyPi)) {
		return tinyPi[n]
	}
	w := (n - t.low) / wheel240.WindowSize
	return int64(t.counts[w]) + popcount(t.bits[w]&wheel240.UnsetLarger[n%wheel240.WindowSize])
}

// Free returns the window's memory to the OS.
func (t *SegmentedPiTable) Free() {
	t.bits = nil
	t.counts = nil
	t.release()
}
