// Package dr implements the Deléglise-Rivat decomposition of pi(x):
// the ordinary leaves S1, the special leaves S2 (trivial, easy and
// hard), the prime-pair term P2, and the top-level assembly.
package dr

import (
	"github.com/pgujjula/primecount/internal/generate"
	"github.com/pgujjula/primecount/internal/phitiny"
)

// S1 computes the ordinary leaves sum
//
//	S1(x, y) = sum of mu(n) * phi(x / n, c)
//
// over the squarefree n <= y whose least prime factor exceeds
// primes[c] = pc. The FactorTable enumerates exactly the candidates:
// its single lpf guard rejects squarefull numbers and numbers with a
// small factor in one comparison.
func S1(x, y, c, pc int64, factors *generate.FactorTable) int64 {
	var sum int64
	for i, last := int64(0), factors.ToIndex(y); i <= last; i++ {
		if pc < factors.Lpf(i) {
			n := factors.GetNumber(i)
			sum += factors.Mu(i) * phitiny.Phi(x/n, c)
		}
	}
	return sum
}
