package dr

import (
	mathbits "math/bits"

	"github.com/pgujjula/primecount/internal/generate"
	"github.com/pgujjula/primecount/internal/imath"
)

// P2 computes the prime-pair term
//
//	P2(x, y) = sum over primes y < p <= sqrt(x) of (pi(x/p) - pi(p) + 1)
//
// i.e. the count of n <= x with exactly two prime factors, both > y.
// Iterating p downward makes x/p ascend, so all pi(x/p) values come
// from one forward pass of a segmented sieve over ]sqrt(x), x/(y+1)].
func P2(x, y int64) int64 {
	sqrtx := int64(imath.Isqrt(uint64(x)))
	if y >= sqrtx {
		return 0
	}
	primes := generate.Primes(sqrtx)
	b := int64(len(primes)) - 1 // pi(sqrt(x))

	counter := &rangeCounter{pos: sqrtx, primes: primes}
	count := b // pi(pos)
	var sum int64
	for ; b >= 1 && primes[b] > y; b-- {
		count += counter.advance(x / primes[b])
		sum += count - b + 1
	}
	return sum
}

// rangeCounter counts primes in ascending half-open ranges with a
// segmented odds-only sieve. primes must contain every prime up to
// the square root of the largest position that will be visited.
type rangeCounter struct {
	pos    int64
	primes []int64
	buf    []uint64
}

// counterSpan is the segment length of the counting sieve.
const counterSpan = 1 << 20

// advance returns the number of primes in ]pos, n] and moves pos to n.
func (c *rangeCounter) advance(n int64) int64 {
	var count int64
	for c.pos < n {
		low := c.pos + 1
		high := min(low+counterSpan-1, n)
		count += c.countSegment(low, high)
		c.pos = high
	}
	return count
}

// countSegment counts primes in [low, high], low > 4.
func (c *rangeCounter) countSegment(low, high int64) int64 {
	if low%2 == 0 {
		low++
	}
	if high < low {
		return 0
	}
	numOdds := (high-low)/2 + 1
	words := (numOdds + 63) / 64
	if int64(len(c.buf)) < words {
		c.buf = make([]uint64, words)
	}
	buf := c.buf[:words]
	for i := range buf {
		buf[i] = 0 // set bit = composite
	}
	for _, p := range c.primes[2:] { // odd sieving primes
		if p*p > high {
			break
		}
		m := p * imath.CeilDiv(low, p)
		m = max(m, p*p)
		if m%2 == 0 {
			m += p
		}
		for ; m <= high; m += 2 * p {
			i := (m - low) / 2
			buf[i/64] |= 1 << (uint(i) % 64)
		}
	}
	count := numOdds
	full := numOdds / 64
	for w := int64(0); w < full; w++ {
		count -= int64(mathbits.OnesCount64(buf[w]))
	}
	if rem := numOdds % 64; rem != 0 {
		count -= int64(mathbits.OnesCount64(buf[full] & (1<<uint(rem) - 1)))
	}
	return count
}
