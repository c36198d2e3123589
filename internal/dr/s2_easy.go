package dr

import (
	"github.com/pgujjula/primecount/internal/imath"
	"github.com/pgujjula/primecount/internal/parallel"
)

// S2Easy sums the clustered and sparse easy leaves: pairs
// n = primes[b] * primes[l] with z < n and x / n <= y, where
// phi(x / n, b - 1) collapses to pi(x/n) - b + 2. Runs of clustered
// leaves sharing one phi value are batched with a single multiply;
// the sparse tail is summed leaf by leaf.
//
// The b terms are independent and only read the shared tables, so they
// are distributed over threads via a shared task counter.
func S2Easy(x, y, z, c int64, pi []int32, primes []int64, threads int) int64 {
	piSqrty := int64(pi[imath.Isqrt(uint64(y))])
	piX13 := int64(pi[imath.Iroot(3, uint64(x))])

	return parallel.Sum(max(c, piSqrty)+1, piX13, threads, func(b int64) int64 {
		p := primes[b]
		minTrivial := x / imath.ISquare(p)
		minClustered := int64(imath.Isqrt(uint64(x / p)))
		minSparse := z / p
		minHard := max(y/p, p)

		minClustered = max(minClustered, minHard)
		minSparse = max(minSparse, minHard)
		l := int64(pi[min(minTrivial, y)])

		var sum int64

		// Clustered easy leaves: phi(x / n, b - 1) stays constant while
		// n = primes[b] * primes[l] moves between consecutive jumps of
		// pi(x / n); each run contributes phi * run-length at once.
		for primes[l] > minClustered {
			xn := x / (p * primes[l])
			phiXn := int64(pi[xn]) - b + 2
			// The run-terminating prime may lie beyond the table
			// (when pi(x/n) = pi(y)); the largest tabulated prime
			// then gives a shorter but still valid run.
			j := min(b+phiXn-1, int64(len(primes))-1)
			xm := max(x/(p*primes[j]), minClustered)
			l2 := int64(pi[xm])
			sum += phiXn * (l - l2)
			l = l2
		}

		// Sparse easy leaves: each pi(x / n) is distinct.
		for ; primes[l] > minSparse; l-- {
			xn := x / (p * primes[l])
			sum += int64(pi[xn]) - b + 2
		}
		return sum
	})
}
