// Package imath provides the integer kernels used throughout primecount:
// exact integer roots, overflow-safe products and quotients built on
// math/bits, and small helpers shared by the sieve and formula packages.
package imath

import (
	"fmt"
	"math"
	"math/bits"

	pcerrors "github.com/pgujjula/primecount/errors"
)

// Isqrt returns the largest r with r*r <= n.
func Isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	r := uint64(math.Sqrt(float64(n)))
	// math.Sqrt is correctly rounded for the double it is given, but n
	// may not be exactly representable; fix up by at most a few steps.
	if r > math.MaxUint32 {
		r = math.MaxUint32
	}
	for r > 0 && r*r > n {
		r--
	}
	for r < math.MaxUint32 && (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// Iroot returns the largest r with r^k <= n, for k in {2, 3, 4, 6}.
func Iroot(k int, n uint64) uint64 {
	switch k {
	case 2:
		return Isqrt(n)
	case 3, 4, 6:
	default:
		panic("imath: Iroot: unsupported root")
	}
	if n == 0 {
		return 0
	}
	r := uint64(math.Pow(float64(n), 1/float64(k)))
	for r > 0 && !powLE(r, k, n) {
		r--
	}
	for powLE(r+1, k, n) {
		r++
	}
	return r
}

// powLE reports whether r^k <= n without overflowing.
func powLE(r uint64, k int, n uint64) bool {
	p := uint64(1)
	for i := 0; i < k; i++ {
		hi, lo := bits.Mul64(p, r)
		if hi != 0 {
			return false
		}
		p = lo
	}
	return p <= n
}

// CeilDiv returns ceil(a / b) for a >= 0, b > 0.
func CeilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// NextPow2 returns the least power of two >= n.
func NextPow2(n int64) int64 {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len64(uint64(n-1))
}

// ISquare returns n*n. The caller is responsible for ensuring the
// product fits in 64 bits; use Mul128 when it may not.
func ISquare(n int64) int64 {
	return n * n
}

// Mul128 returns the 128-bit product a*b as (hi, lo).
func Mul128(a, b uint64) (hi, lo uint64) {
	return bits.Mul64(a, b)
}

// Div128 returns (hi:lo) / d. The quotient must fit in 64 bits,
// i.e. hi < d; violating this is a contract violation and panics.
func Div128(hi, lo, d uint64) uint64 {
	if hi >= d {
		panic(fmt.Errorf("%w: Div128(%d:%d, %d) quotient exceeds 64 bits",
			pcerrors.ErrArithmeticOverflow, hi, lo, d))
	}
	q, _ := bits.Div64(hi, lo, d)
	return q
}

// DivProd returns x / (a * b) where a*b may exceed 64 bits. If the
// product exceeds x the quotient is 0, so overflow of a*b past 2^64
// never affects the result.
func DivProd(x int64, a, b int64) int64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > uint64(x) {
		return 0
	}
	return x / int64(lo)
}

// Min3 returns the smallest of a, b, c.
func Min3(a, b, c int64) int64 {
	return min(a, min(b, c))
}

// Max3 returns the largest of a, b, c.
func Max3(a, b, c int64) int64 {
	return max(a, max(b, c))
}

// InBetween clamps v to [lo, hi].
func InBetween(lo, v, hi int64) int64 {
	return max(lo, min(v, hi))
}
