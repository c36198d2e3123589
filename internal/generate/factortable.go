package generate

import (
	"fmt"
	"math"

	pcerrors "github.com/pgujjula/primecount/errors"
)

// FactorTable stores mu(n) and lpf(n) compressed to the numbers coprime
// to 2*3*5*7. The S1 loop that consumes it only accepts m with
// lpf(m) > primes[c], and primes[c] >= 7 whenever y >= 7 (c is
// min(pi(y), 7)), so omitting numbers with a prime factor <= 7 loses
// nothing and shrinks the table to 48/210 of the dense size.
//
// Index i maps to the i-th wheel number: GetNumber(ToIndex(n)) == n for
// every n coprime to 210. Lpf returns 0 for squarefull entries, so a
// single "prime < Lpf(m)" test covers both the mu(m) != 0 and the
// lpf(m) > prime leaf conditions.
type FactorTable struct {
	limit int64
	mu    []int8
	lpf   []int32
}

const wheelModulo = 210

var (
	wheelResidues [48]int64
	// floorIndex[r] is the 0-based position of the largest wheel
	// residue <= r, or -1 when r = 0 (ToIndex then floors into the
	// previous wheel turn).
	floorIndex [wheelModulo]int64
	isWheel    [wheelModulo]bool
)

func init() {
	k := int64(-1)
	for r := int64(0); r < wheelModulo; r++ {
		if r%2 != 0 && r%3 != 0 && r%5 != 0 && r%7 != 0 {
			k++
			wheelResidues[k] = r
			isWheel[r] = true
		}
		floorIndex[r] = k
	}
}

// NewFactorTable builds the table for [1, limit]. primes must contain
// all primes <= limit (1-indexed, as returned by Primes).
func NewFactorTable(limit int64, primes []int64) *FactorTable {
	size := toIndex(limit) + 1
	ft := &FactorTable{
		limit: limit,
		mu:    make([]int8, size),
		lpf:   make([]int32, size),
	}
	for i := range ft.mu {
		ft.mu[i] = 1
	}

	for b := 1; b < len(primes); b++ {
		p := primes[b]
		if p <= 7 {
			continue // wheel numbers have no factor <= 7
		}
		for n := p; n <= limit; n += p {
			if isWheel[n%wheelModulo] {
				i := toIndex(n)
				ft.mu[i] = -ft.mu[i]
				if ft.lpf[i] == 0 {
					ft.lpf[i] = int32(p)
				}
			}
		}
		if p <= limit/p {
			pp := p * p
			for n := pp; n <= limit; n += pp {
				if isWheel[n%wheelModulo] {
					ft.mu[toIndex(n)] = 0
				}
			}
		}
	}

	// The number 1: squarefree with no prime factor.
	ft.lpf[0] = math.MaxInt32
	// Collapse the squarefull entries so Lpf alone rejects them.
	for i, m := range ft.mu {
		if m == 0 {
			ft.lpf[i] = 0
		}
	}
	return ft
}

func toIndex(n int64) int64 {
	return (n/wheelModulo)*48 + floorIndex[n%wheelModulo]
}

// ToIndex returns the index of the largest wheel number <= n, n >= 1.
func (ft *FactorTable) ToIndex(n int64) int64 {
	if n < 1 || n > ft.limit {
		panic(fmt.Errorf("%w: FactorTable.ToIndex(%d) outside [1, %d]",
			pcerrors.ErrContractViolation, n, ft.limit))
	}
	return toIndex(n)
}

// GetNumber returns the wheel number at index i.
func (ft *FactorTable) GetNumber(i int64) int64 {
	return (i/48)*wheelModulo + wheelResidues[i%48]
}

// Mu returns mu of the wheel number at index i. Only meaningful when
// Lpf(i) != 0.
func (ft *FactorTable) Mu(i int64) int64 {
	return int64(ft.mu[i])
}

// Lpf returns the least prime factor of the wheel number at index i,
// 0 when the number is not squarefree, and math.MaxInt32 for 1.
func (ft *FactorTable) Lpf(i int64) int64 {
	return int64(ft.lpf[i])
}

// Limit returns the largest number covered by the table.
func (ft *FactorTable) Limit() int64 {
	return ft.limit
}
