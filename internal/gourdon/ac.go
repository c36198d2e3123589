// Package gourdon implements the merged A + C formulas of Xavier
// Gourdon's variant of the combinatorial prime counting algorithm.
// Both formulas enumerate easy special leaves up to x^(1/2); merging
// them shares one segmented pi(n) table and one pass over its windows.
package gourdon

import (
	"github.com/pgujjula/primecount/internal/generate"
	"github.com/pgujjula/primecount/internal/imath"
	"github.com/pgujjula/primecount/internal/parallel"
	"github.com/pgujjula/primecount/internal/pitable"
)

// XStar returns Gourdon's cutoff x*, the boundary separating the
// C-formula regime from the A-formula regime:
//
//	x* = max(x^(1/4), x / y^2), at least 1.
func XStar(x, y int64) int64 {
	xs := max(int64(imath.Iroot(4, uint64(x))), x/(y*y))
	return max(xs, 1)
}

// AC computes the A + C formulas for the given parameters. The
// segmented pi(n) table advances in windows of segmentSize (z when
// <= 0); the result is independent of the window size chosen.
//
// The leaves with x / (primes[b] * m) <= z are found by the recursive
// square-free descent C1; the remaining leaves, which need pi(n)
// lookups up to x^(1/2), are found segment by segment (C2 and A).
func AC(x, y, z, k int64, threads int, segmentSize int64, progress func(done, total int64)) int64 {
	xStar := XStar(x, y)
	maxCPrime := y
	maxAPrime := int64(imath.Isqrt(uint64(x / xStar)))
	primes := generate.Primes(max(maxAPrime, maxCPrime))

	x13 := int64(imath.Iroot(3, uint64(x)))
	sqrtx := int64(imath.Isqrt(uint64(x)))

	pi, err := pitable.New(max(z, maxAPrime), threads)
	if err != nil {
		panic(err)
	}
	defer pi.Free()

	if segmentSize <= 0 {
		segmentSize = z
	}
	segPi, err := pitable.NewSegmented(sqrtx, segmentSize, threads)
	if err != nil {
		panic(err)
	}
	defer segPi.Free()

	piY := pi.Pi(y)
	piSqrtz := pi.Pi(int64(imath.Isqrt(uint64(z))))
	piXStar := pi.Pi(xStar)
	piRoot3XY := pi.Pi(int64(imath.Iroot(3, uint64(x/y))))
	piRoot3XZ := pi.Pi(int64(imath.Iroot(3, uint64(x/z))))

	// C1: leaves x / (primes[b] * m) <= z, where m is square free,
	// coprime to the first b primes, with largest prime factor <= y.
	firstB := max(k, piRoot3XZ) + 1
	sum := parallel.Sum(firstB, piSqrtz, threads, func(b int64) int64 {
		p := primes[b]
		xp := x / p
		maxM := min(xp/p, z)
		minM := min(max(imath.DivProd(x, p*p, p), z/p), maxM)
		return -c1(xp, b, b, piY, 1, minM, maxM, primes, pi, -1)
	})

	// A and C2: leaves x / (primes[b] * q) <= x^(1/2) with prime q,
	// processed while x / (primes[b] * q) lies in the current window.
	for ; !segPi.Finished(); segPi.Next() {
		low := max(segPi.Low(), 1)
		high := segPi.High()
		xDivLow := x / low
		xDivHigh := x / high

		minPrime1 := min(int64(imath.Isqrt(uint64(low))), primes[piXStar])
		minPrime2 := min(xDivHigh/y, primes[piXStar])
		minB := imath.Max3(k, piSqrtz, piRoot3XY)
		minB = max(minB, pi.Pi(minPrime1))
		minB = max(minB, pi.Pi(minPrime2))

		// primes[b] * primes[b+1] <= x / low bounds the b range.
		sqrtLow := min(int64(imath.Isqrt(uint64(xDivLow))), x13)
		maxB := pi.Pi(sqrtLow)
		if maxB+1 < int64(len(primes)) &&
			primes[maxB]*primes[maxB+1] > xDivLow {
			maxB--
		}

		minB = min(minB, piXStar+1)
		maxB = max(maxB, piXStar)

		// C2 formula: pi(sqrt(z)) < b <= pi(x_star)
		// A  formula: pi(x_star) < b <= pi(x^(1/3))
		sum += parallel.Sum(minB+1, maxB, threads, func(b int64) int64 {
			if b <= piXStar {
				return c2(x, y, b, xDivLow, xDivHigh, primes, pi, segPi)
			}
			return formulaA(x, y, b, maxAPrime, xDivLow, xDivHigh, primes, pi, segPi)
		})

		if progress != nil {
			progress(high-1, sqrtx)
		}
	}

	return sum
}

// c1 recursively iterates over the square free numbers coprime to the
// first b primes, flipping mu at each descent. i indexes the next
// candidate prime factor of m.
func c1(xp, b, i, piY, m, minM, maxM int64, primes []int64, pi *pitable.PiTable, mu int64) int64 {
	var sum int64
	for i++; i <= piY; i++ {
		m2 := m * primes[i]
		if m2 > maxM {
			return sum
		}
		if m2 > minM {
			sum += mu * (pi.Pi(xp/m2) - b + 2)
		}
		sum += c1(xp, b, i, piY, m2, minM, maxM, primes, pi, -mu)
	}
	return sum
}

// c2 computes one b term of the 2nd part of the C formula: clustered
// and sparse easy leaves n = primes[b] * primes[i] with n > z and
// primes[i] <= y, restricted to the current window of segPi.
func c2(x, y, b, xDivLow, xDivHigh int64, primes []int64, pi *pitable.PiTable, segPi *pitable.SegmentedPiTable) int64 {
	p := primes[b]
	xp := x / p

	maxM := imath.Min3(xDivLow/p, xp/p, y)
	minM := min(imath.Max3(xDivHigh/p, imath.DivProd(x, p*p, p), p), maxM)

	i := pi.Pi(maxM)
	piMinM := pi.Pi(minM)
	minClustered := imath.InBetween(minM, int64(imath.Isqrt(uint64(xp))), maxM)
	piMinClustered := pi.Pi(minClustered)

	var sum int64

	// Clustered easy leaves: runs of identical phi(x / n, b - 1)
	// values, batched by jumping straight to the end of each run.
	for i > piMinClustered {
		xpq := xp / primes[i]
		phiXpq := segPi.Pi(xpq) - b + 2
		j := b + phiXpq - 1
		if j >= int64(len(primes)) {
			// The run-terminating prime lies beyond the table;
			// process this leaf alone.
			sum += phiXpq
			i--
			continue
		}
		xpq2 := xp / primes[j]
		i2 := pi.Pi(xpq2)
		sum += phiXpq * (i - i2)
		i = i2
	}

	// Sparse easy leaves: successive leaves differ.
	for ; i > piMinM; i-- {
		xpq := xp / primes[i]
		sum += segPi.Pi(xpq) - b + 2
	}

	return sum
}

// formulaA computes one b term of the A formula: for p = primes[b],
// count pairs p * q with q prime, weighting pi(x / (p*q)) once while
// x / (p*q) >= y and twice below.
func formulaA(x, y, b, maxAPrime, xDivLow, xDivHigh int64, primes []int64, pi *pitable.PiTable, segPi *pitable.SegmentedPiTable) int64 {
	p := primes[b]
	xp := x / p

	min2ndPrime := min(xDivHigh/p, maxAPrime)
	i := max(pi.Pi(min2ndPrime)+1, b+1)
	max2ndPrime := min(xDivLow/p, int64(imath.Isqrt(uint64(xp))))
	maxI := pi.Pi(max2ndPrime)

	var sum int64
	for ; i <= maxI; i++ {
		xpq := xp / primes[i]
		if xpq < y {
			break
		}
		sum += segPi.Pi(xpq)
	}
	for ; i <= maxI; i++ {
		xpq := xp / primes[i]
		sum += segPi.Pi(xpq) * 2
	}
	return sum
}
