package dr

import (
	"github.com/pgujjula/primecount/internal/imath"
	"github.com/pgujjula/primecount/internal/sieve"
)

// S2Sieve sums the hard special leaves, the pairs n whose
// phi(x / n, b - 1) value only a sieve can produce. A segmented sieve
// of Eratosthenes streams over [1, z]; within the segment [low, high)
// the counters tree turns "surviving integers <= x/n" into an
// O(log n) rank query, and phiAcc[b] carries the count of survivors
// in [1, low) from the previous segments.
//
// progress, when non-nil, is invoked after each segment with the
// number of sieved and total positions.
func S2Sieve(x, y, z, c int64, pi []int32, primes []int64, lpf, mu []int32, progress func(done, total int64)) int64 {
	limit := z + 1
	segmentSize := max(imath.NextPow2(int64(imath.Isqrt(uint64(limit)))), 64)
	piSqrty := int64(pi[imath.Isqrt(uint64(y))])
	piSqrtz := int64(pi[min(int64(imath.Isqrt(uint64(z))), y)])

	bs := sieve.NewBitSieve(segmentSize)
	counters := sieve.NewCounters(segmentSize)
	// Only the first max(c, pi(sqrt(z))) + 1 entries are ever consumed;
	// the historical full-prime-table copy wasted memory for nothing.
	next := append([]int64(nil), primes[:max(c, piSqrtz)+1]...)
	phiAcc := make([]int64, piSqrtz+1)

	var sum int64

segments:
	for low := int64(1); low < limit; low += segmentSize {
		high := min(low+segmentSize, limit)
		if progress != nil && low > 1 {
			progress(low-1, limit-1)
		}

		bs.Fill(low, high)

		// phi(y, b) nodes with b <= c do not contribute to S2; sieve
		// out the multiples of the first c primes without counting.
		for b := int64(2); b <= c; b++ {
			bs.CrossOff(primes[b], low, high, &next[b], nil)
		}
		counters.Init(bs)

		b := c + 1

		// Special leaves n = primes[b] * m with mu(m) != 0 and
		// primes[b] < lpf(m), for c < b <= pi(sqrt(y)).
		for ; b <= piSqrty; b++ {
			p := primes[b]
			minM := min(max(imath.DivProd(x, p, high), y/p), y)
			maxM := min(imath.DivProd(x, p, low), y)
			if p >= maxM {
				// Every remaining b has a larger prime and an even
				// smaller maxM, in this and in all later segments.
				continue segments
			}

			for m := maxM; m > minM; m-- {
				if mu[m] != 0 && p < int64(lpf[m]) {
					xn := x / (p * m)
					phiXn := phiAcc[b] + counters.Query(xn-low)
					sum -= int64(mu[m]) * phiXn
				}
			}

			phiAcc[b] += counters.Query(high - 1 - low)
			bs.CrossOff(p, low, high, &next[b], counters)
		}

		// Hard leaves n = primes[b] * primes[l], for
		// pi(sqrt(y)) < b <= pi(sqrt(z)).
		for ; b <= piSqrtz; b++ {
			p := primes[b]
			l := int64(pi[imath.Min3(imath.DivProd(x, p, low), z/p, y)])
			if p >= primes[l] {
				continue segments
			}
			minHard := imath.Max3(imath.DivProd(x, p, high), y/p, p)

			for ; primes[l] > minHard; l-- {
				xn := x / (p * primes[l])
				sum += phiAcc[b] + counters.Query(xn-low)
			}

			phiAcc[b] += counters.Query(high - 1 - low)
			bs.CrossOff(p, low, high, &next[b], counters)
		}
	}

	if progress != nil {
		progress(limit-1, limit-1)
	}
	return sum
}
