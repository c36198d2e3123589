package pitable

import (
	mathbits "math/bits"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/pgujjula/primecount/internal/imath"
	"github.com/pgujjula/primecount/internal/wheel240"
)

func popcount(x uint64) int64 {
	return int64(mathbits.OnesCount64(x))
}

// chunkWords is the number of 240-number windows sieved per parallel
// task (~3.9M numbers, a few L2-sized bit arrays per task).
const chunkWords = 1 << 14

// sieveChunk marks the primes within [low, high) in words, where
// words[i] covers the numbers [low + i*240, low + (i+1)*240) and low
// is a multiple of 240. Positions outside [low, high) are cleared.
func sieveChunk(words []uint64, low, high int64, sievingPrimes []int64) {
	for i := range words {
		words[i] = ^uint64(0)
	}
	if low == 0 {
		words[0] &= wheel240.UnsetBit[1] // 1 is not prime
	}
	for _, p := range sievingPrimes {
		if p < 7 {
			continue // the wheel already excludes multiples of 2, 3, 5
		}
		if p*p >= high {
			break
		}
		crossOffRange(words, low, high, p)
	}
	for j := range words {
		start := low + int64(j)*wheel240.WindowSize
		switch {
		case start >= high:
			words[j] = 0
		case start+wheel240.WindowSize > high:
			words[j] &= wheel240.UnsetLarger[(high-1)%wheel240.WindowSize]
		}
	}
}

// crossOffRange clears the odd multiples of p within [low, high),
// starting no lower than p*p so that p itself stays marked.
func crossOffRange(words []uint64, low, high, p int64) {
	m := p * p
	if m < low {
		m = p * imath.CeilDiv(low, p)
		if m%2 == 0 {
			m += p
		}
	}
	for ; m < high; m += 2 * p {
		words[(m-low)/wheel240.WindowSize] &= wheel240.UnsetBit[m%wheel240.WindowSize]
	}
}

// parallelSieve fills words for [low, high) using up to threads
// workers. Tasks are 240-aligned chunks drawn from a shared atomic
// counter; chunks touch disjoint words, so workers never synchronize
// beyond the counter itself.
func parallelSieve(words []uint64, low, high int64, sievingPrimes []int64, threads int) {
	numChunks := (len(words) + chunkWords - 1) / chunkWords
	if threads > numChunks {
		threads = numChunks
	}
	if threads <= 1 {
		sieveChunk(words, low, high, sievingPrimes)
		return
	}

	var next atomic.Int64
	var g errgroup.Group
	for t := 0; t < threads; t++ {
		g.Go(func() error {
			for {
				c := int(next.Add(1)) - 1
				if c >= numChunks {
					return nil
				}
				lo := c * chunkWords
				hi := min(lo+chunkWords, len(words))
				chunkLow := low + int64(lo)*wheel240.WindowSize
				chunkHigh := min(low+int64(hi)*wheel240.WindowSize, high)
				sieveChunk(words[lo:hi], chunkLow, chunkHigh, sievingPrimes)
			}
		})
	}
	_ = g.Wait() // workers are infallible
}
