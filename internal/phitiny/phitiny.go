// Package phitiny computes the partial sieve function phi(x, a) in O(1)
// for a <= MaxA using the periodicity
//
//	phi(x, a) = (x / pp) * totient(pp) + phi(x % pp, a)
//
// where pp is the primorial of the first a primes. The phi(r, a) tables
// over r in [0, pp) are precomputed once at package init.
package phitiny

// MaxA is the largest a for which the closed-form tables are maintained.
const MaxA = 7

// tinyPrimes[i] is the i-th prime, 1-indexed; index 0 is a sentinel.
var tinyPrimes = [MaxA + 1]int64{0, 2, 3, 5, 7, 11, 13, 17}

var (
	primorials [MaxA + 1]int64 // product of the first a primes
	totients   [MaxA + 1]int64 // product of (prime - 1)
	phiTable   [MaxA + 1][]int32
)

func init() {
	primorials[0] = 1
	totients[0] = 1
	for a := 1; a <= MaxA; a++ {
		primorials[a] = primorials[a-1] * tinyPrimes[a]
		totients[a] = totients[a-1] * (tinyPrimes[a] - 1)
	}

	// phiTable[a][r] = phi(r, a) for r in [0, primorials[a]).
	for a := 0; a <= MaxA; a++ {
		pp := primorials[a]
		table := make([]int32, pp)
		sieve := make([]bool, pp)
		for i := 1; i <= a; i++ {
			p := tinyPrimes[i]
			for n := int64(0); n < pp; n += p {
				sieve[n] = true
			}
		}
		count := int32(0)
		for r := int64(0); r < pp; r++ {
			if r > 0 && !sieve[r] {
				count++
			}
			table[r] = count
		}
		phiTable[a] = table
	}
}

// Phi returns phi(x, a) for 0 <= a <= MaxA: the count of integers in
// [1, x] not divisible by any of the first a primes.
func Phi(x, a int64) int64 {
	if x <= 0 {
		return 0
	}
	if a > MaxA {
		panic("phitiny: Phi: a exceeds MaxA")
	}
	pp := primorials[a]
	return (x/pp)*totients[a] + int64(phiTable[a][x%pp])
}

// GetC returns the largest a <= MaxA whose squared primorial does not
// exceed n. It picks the recursion base for the phi cache.
func GetC(n int64) int64 {
	for a := int64(MaxA); a > 0; a-- {
		pp := primorials[a]
		if pp <= n/pp {
			return a
		}
	}
	return 0
}

// Primorial returns the product of the first a primes, a <= MaxA.
func Primorial(a int64) int64 {
	return primorials[a]
}
