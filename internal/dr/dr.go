package dr

import (
	"math"

	"github.com/pgujjula/primecount/internal/generate"
	"github.com/pgujjula/primecount/internal/imath"
	"github.com/pgujjula/primecount/internal/phitiny"
)

// Alpha returns the Deléglise-Rivat tuning factor, which should grow
// like log(x)^3, clamped to [1, x^(1/6)]. This is the single source of
// truth for the constant; the historical code carried both /1000 and
// /1500 variants.
func Alpha(x int64) float64 {
	lg := math.Log(float64(x))
	alpha := lg * lg * lg / 1000
	return math.Max(1, math.Min(alpha, float64(imath.Iroot(6, uint64(x)))))
}

// S2 sums the three special-leaf categories.
func S2(x, y, z, c int64, pi []int32, primes []int64, lpf, mu []int32, threads int, progress func(done, total int64)) int64 {
	sum := S2Trivial(x, y, z, c, pi, primes)
	sum += S2Easy(x, y, z, c, pi, primes, threads)
	sum += S2Sieve(x, y, z, c, pi, primes, lpf, mu, progress)
	return sum
}

// Pi computes pi(x) with the Deléglise-Rivat algorithm:
//
//	pi(x) = S1 + S2 + pi(y) - 1 - P2
//
// with y = alpha * x^(1/3) and z = x / y.
// Run time O(x^(2/3) / log(x)^2), space O(x^(1/3) * log(x)^3).
// alpha <= 0 selects the default tuning.
func Pi(x int64, threads int, alpha float64, progress func(done, total int64)) int64 {
	if x < 2 {
		return 0
	}
	if alpha <= 0 {
		alpha = Alpha(x)
	}

	x13 := int64(imath.Iroot(3, uint64(x)))
	sqrtx := int64(imath.Isqrt(uint64(x)))
	y := imath.InBetween(x13, int64(alpha*float64(x13)), sqrtx)
	z := x / y

	p2 := P2(x, y)

	mu := generate.Moebius(y)
	lpf := generate.LeastPrimeFactors(y)
	primes := generate.Primes(y)
	pi := generate.PiDense(y)
	factors := generate.NewFactorTable(y, primes)

	piY := int64(len(primes)) - 1
	c := min(piY, phitiny.MaxA)

	s1 := S1(x, y, c, primes[c], factors)
	s2 := S2(x, y, z, c, pi, primes, lpf, mu, threads, progress)

	return s1 + s2 + piY - 1 - p2
}
