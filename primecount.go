package primecount

import (
	"fmt"

	pcerrors "github.com/pgujjula/primecount/errors"
	"github.com/pgujjula/primecount/internal/dr"
	"github.com/pgujjula/primecount/internal/generate"
	"github.com/pgujjula/primecount/internal/gourdon"
	"github.com/pgujjula/primecount/internal/phi"
)

// maxX is the largest supported x. The internal arithmetic uses 64-bit
// integers with 128-bit intermediates only where products can exceed
// them; 10^17 keeps every x / (p * q) style quotient comfortably in
// range.
const maxX = 100_000_000_000_000_000

// smallLimit is the threshold below which pi(x) is answered by a plain
// sieve instead of the Deléglise-Rivat machinery.
const smallLimit = 10_000

// MaxX returns the largest x supported by Pi.
func MaxX() uint64 {
	return maxX
}

// Pi returns pi(x), the number of primes <= x, computed exactly with
// the Deléglise-Rivat algorithm. It fails with errors.ErrInputOutOfRange
// when x exceeds MaxX.
func Pi(x uint64, opts ...Option) (uint64, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}
	if x > maxX {
		return 0, fmt.Errorf("%w: x = %d, maximum is %d", pcerrors.ErrInputOutOfRange, x, uint64(maxX))
	}
	if x < smallLimit {
		return uint64(generate.CountPrimes(int64(x))), nil
	}
	return uint64(dr.Pi(int64(x), cfg.threads, cfg.alpha, cfg.progress)), nil
}

// Phi returns phi(x, a), the count of integers in [1, x] not divisible
// by any of the first a primes (the Legendre sum). x must not exceed
// MaxX.
func Phi(x, a int64, opts ...Option) (int64, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}
	if x > maxX {
		return 0, fmt.Errorf("%w: x = %d, maximum is %d", pcerrors.ErrInputOutOfRange, x, int64(maxX))
	}
	pix := func(n int64) int64 {
		count, err := Pi(uint64(n), WithThreads(cfg.threads))
		if err != nil {
			panic(err) // n <= x <= maxX, checked above
		}
		return int64(count)
	}
	return phi.Phi(x, a, cfg.threads, cfg.cacheMB, pix), nil
}

// AC returns the A + C term of Xavier Gourdon's variant of the
// algorithm, for parameters y = alpha_y * x^(1/3), z = alpha_z * y
// (well below sqrt(x), unlike the Deléglise-Rivat z = x / y) and
// recursion base k. The result is independent of the segment size
// chosen for the windowed pi(n) table (see WithSegmentSize).
func AC(x, y, z, k int64, opts ...Option) (int64, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}
	if x > maxX {
		return 0, fmt.Errorf("%w: x = %d, maximum is %d", pcerrors.ErrInputOutOfRange, x, int64(maxX))
	}
	return gourdon.AC(x, y, z, k, cfg.threads, cfg.segment, cfg.progress), nil
}
