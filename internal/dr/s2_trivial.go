package dr

import "github.com/pgujjula/primecount/internal/imath"

// S2Trivial sums the trivial special leaves: pairs n = primes[b] * q
// with phi(x / n, b - 1) = 1. For each b with sqrt(z) < primes[b] < y
// the qualifying q are the primes in ]max(x / primes[b]^2, primes[b]), y],
// counted with two pi lookups.
func S2Trivial(x, y, z, c int64, pi []int32, primes []int64) int64 {
	piY := int64(pi[y])
	sqrtz := int64(imath.Isqrt(uint64(z)))
	piSqrtz := int64(pi[min(sqrtz, y)])

	var sum int64
	for b := max(c, piSqrtz) + 1; b < piY; b++ {
		p := primes[b]
		sum += piY - int64(pi[max(x/imath.ISquare(p), p)])
	}
	return sum
}
