package phi

import (
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/pgujjula/primecount/internal/generate"
	"github.com/pgujjula/primecount/internal/imath"
	"github.com/pgujjula/primecount/internal/phitiny"
	"github.com/pgujjula/primecount/internal/pitable"
)

// PiFunc computes pi(n) exactly. Phi takes it as a parameter for the
// large-a regime instead of importing the top-level entry point.
type PiFunc func(x int64) int64

// Phi computes phi(x, a) with up to threads workers, each owning a
// Cache capped at megabytes MiB.
func Phi(x, a int64, threads int, megabytes int64, pix PiFunc) int64 {
	if x < 1 {
		return 0
	}
	if a < 1 {
		return x
	}
	// phi(x, a) = 1 once primes[a] >= x; a > x/2 implies that.
	if a > x/2 {
		return 1
	}
	if a <= phitiny.MaxA {
		return phitiny.Phi(x, a)
	}
	if a >= pixUpper(x) {
		return 1
	}

	sqrtx := int64(imath.Isqrt(uint64(x)))

	// Fast a > pi(sqrt(x)) check with decent accuracy. Storing the
	// first a primes for a huge a would exhaust memory, and a faster
	// closed form exists anyway.
	if a > pixUpper(sqrtx) {
		return phiPix(x, a, pix)
	}

	pi, err := pitable.New(sqrtx, threads)
	if err != nil {
		panic(err)
	}
	defer pi.Free()

	if a > pi.Pi(sqrtx) {
		return phiPix(x, a, pix)
	}

	primes := generate.NPrimes(a)
	c := phitiny.GetC(sqrtx)
	sum := phitiny.Phi(x, c)

	if threads <= 1 || a-c < 32 {
		cache := NewCache(x, a, primes, pi, megabytes)
		for i := c; i < a; i++ {
			sum += cache.Phi(x/primes[i+1], i, -1)
		}
		return sum
	}

	// Tasks are i-values drawn from a shared counter; each worker
	// reduces into its own partial sum with its own cache.
	var next atomic.Int64
	next.Store(c)
	partials := make([]int64, threads)
	var g errgroup.Group
	for t := 0; t < threads; t++ {
		t := t
		g.Go(func() error {
			cache := NewCache(x, a, primes, pi, megabytes)
			var local int64
			for {
				i := next.Add(1) - 1
				if i >= a {
					break
				}
				local += cache.Phi(x/primes[i+1], i, -1)
			}
			partials[t] = local
			return nil
		})
	}
	_ = g.Wait() // workers are infallible
	for _, p := range partials {
		sum += p
	}
	return sum
}

// phiPix computes phi(x, a) for a >= pi(sqrt(x)): the counted integers
// are 1 and the primes in ]primes[a], x].
func phiPix(x, a int64, pix PiFunc) int64 {
	p := pix(x)
	if a <= p {
		return p - a + 1
	}
	return 1
}

// pixUpper bounds pi(x) from above:
// pi(x) <= x / (log(x) - 1.1) for x >= 10, plus a safety buffer.
func pixUpper(x int64) int64 {
	if x <= 10 {
		return 4
	}
	return int64(float64(x)/(math.Log(float64(x))-1.1)) + 10
}
