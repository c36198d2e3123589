// Package phi computes the partial sieve function phi(x, a), the count
// of integers in [1, x] not divisible by any of the first a primes,
// using the recursion
//
//	phi(x, a) = phi(x, a-1) - phi(x / primes[a], a-1)
//
// cut short by four O(1) branches: a closed form for a <= phitiny.MaxA,
// a pi(x) lookup once x < primes[a+1]^2, a bit-packed cache of small
// (x, a) results, and the upfront count of all phi(x, i) = 1 terms.
package phi

import (
	"math"
	mathbits "math/bits"

	"github.com/pgujjula/primecount/internal/imath"
	"github.com/pgujjula/primecount/internal/phitiny"
	"github.com/pgujjula/primecount/internal/pitable"
	"github.com/pgujjula/primecount/internal/wheel240"
)

// window packs one 240-number stretch of a cached sieve level:
// bits marks the integers coprime to the level's primes, count is the
// number of set bits in all preceding windows of the same level.
type window struct {
	bits  uint64
	count uint32
}

const windowBytes = 16 // unsafe.Sizeof(window{}), with padding

// Cache memoizes phi(x, a) for x <= maxX and a <= maxA. It is strictly
// per-worker: each goroutine of the parallel phi sum owns its own
// Cache and no synchronization exists.
type Cache struct {
	primes []int64
	pi     *pitable.PiTable

	maxX       int64
	maxXWords  int64
	maxA       int64
	maxACached int64

	// sieve[a] marks the integers coprime to the first a primes,
	// with per-window cumulative counts once a > phitiny.MaxA.
	sieve [][]window
}

// NewCache sizes a cache for a phi(x, a) computation. megabytes caps
// the cache memory of this worker (16 MiB when <= 0).
func NewCache(x, a int64, primes []int64, pi *pitable.PiTable, megabytes int64) *Cache {
	c := &Cache{primes: primes, pi: pi}

	// maxA = 100 was determined empirically: with the same memory
	// budget, both smaller and larger values slow the computation.
	maxA := int64(100)
	tinyA := int64(phitiny.MaxA)

	// Cache only frequently used levels.
	a -= min(a, 30)
	maxA = min(a, maxA)
	if maxA <= tinyA {
		return c
	}

	// maxX = x^(1/2.3) balances hit rate against construction cost;
	// sqrt(x) wins on few-core machines but does not scale.
	maxX := int64(math.Pow(float64(x), 1/2.3))
	if megabytes <= 0 {
		megabytes = 16
	}
	levels := maxA - tinyA
	bytesPerLevel := (megabytes << 20) / levels
	numbersPerByte := int64(wheel240.WindowSize / windowBytes)
	maxX = min(maxX, bytesPerLevel*numbersPerByte)
	maxXWords := imath.CeilDiv(maxX, wheel240.WindowSize)

	// For tiny computations caching is not worth it.
	if maxXWords < 8 {
		return c
	}

	c.maxX = maxXWords*wheel240.WindowSize - 1
	c.maxXWords = maxXWords
	c.maxA = maxA
	c.sieve = make([][]window, maxA+1)
	return c
}

// Phi returns sign * phi(x, a). sign must be +1 or -1; the recursion
// passes -sign to each subtracted term instead of negating its result.
func (c *Cache) Phi(x, a, sign int64) int64 {
	if x <= c.primes[a] {
		return sign
	}
	if a <= phitiny.MaxA {
		return phitiny.Phi(x, a) * sign
	}
	if c.isPix(x, a) {
		return (c.pi.Pi(x) - a + 1) * sign
	}
	if c.isCached(x, a) {
		return c.phiCache(x, a) * sign
	}

	// Cache all small phi(x, i) results with x <= maxX, i <= min(a, maxA).
	c.sieveCache(x, a)

	sqrtx := int64(imath.Isqrt(uint64(x)))
	base := phitiny.GetC(sqrtx)
	largerC := min(a, c.maxACached)
	var sum int64
	if base >= largerC || !c.isCached(x, largerC) {
		sum = phitiny.Phi(x, base) * sign
	} else {
		base = largerC
		sum = c.phiCache(x, base) * sign
	}

	i := base
	for ; i < a; i++ {
		// If primes[i+1] > sqrt(x) then phi(x / primes[i+1], i) = 1:
		// no prime can lie inside ]primes[i], x / primes[i+1]].
		if c.primes[i+1] > sqrtx {
			break
		}
		xp := x / c.primes[i+1]
		if c.isPix(xp, i) {
			break
		}
		sum += c.Phi(xp, i, -sign)
	}
	for ; i < a; i++ {
		if c.primes[i+1] > sqrtx {
			break
		}
		xp := x / c.primes[i+1]
		sum += (c.pi.Pi(xp) - i + 1) * -sign
	}
	// phi(x / primes[j+1], j) = 1 for all remaining terms.
	sum += (a - i) * -sign
	return sum
}

// isPix reports whether phi(x, a) reduces to pi(x) - a + 1, which
// holds when x < primes[a+1]^2: the integers counted are then 1 and
// the primes in ]primes[a], x].
func (c *Cache) isPix(x, a int64) bool {
	return x <= c.pi.Limit() &&
		x < imath.ISquare(c.primes[a+1])
}

func (c *Cache) isCached(x, a int64) bool {
	return x <= c.maxX && a <= c.maxACached
}

func (c *Cache) phiCache(x, a int64) int64 {
	w := c.sieve[a][x/wheel240.WindowSize]
	masked := w.bits & wheel240.UnsetLarger[x%wheel240.WindowSize]
	return int64(w.count) + int64(mathbits.OnesCount64(masked))
}

// sieveCache extends the cache to level min(a, maxA) by sieving: level
// i is level i-1 with primes[i] and its odd multiples crossed off,
// then re-counted per window. Levels at or below phitiny.MaxA carry no
// counts; they exist only as scaffolding for the next level.
func (c *Cache) sieveCache(x, a int64) {
	a = min(a, c.maxA)
	if x > c.maxX || a <= c.maxACached {
		return
	}

	tinyA := int64(phitiny.MaxA)
	i := max(c.maxACached+1, 3)
	c.maxACached = a

	for ; i <= a; i++ {
		if i == 3 {
			// All-ones bits: the wheel layout already excludes the
			// multiples of the first 3 primes.
			s := make([]window, c.maxXWords)
			for j := range s {
				s[j].bits = ^uint64(0)
			}
			c.sieve[3] = s
			continue
		}

		if i-1 <= tinyA {
			// Level i-1 is never queried; steal its storage.
			c.sieve[i] = c.sieve[i-1]
			c.sieve[i-1] = nil
		} else {
			c.sieve[i] = append([]window(nil), c.sieve[i-1]...)
		}

		s := c.sieve[i]
		p := c.primes[i]
		if p <= c.maxX {
			s[p/wheel240.WindowSize].bits &= wheel240.UnsetBit[p%wheel240.WindowSize]
		}
		for n := p * p; n <= c.maxX; n += p * 2 {
			s[n/wheel240.WindowSize].bits &= wheel240.UnsetBit[n%wheel240.WindowSize]
		}

		if i > tinyA {
			var count uint64
			for j := range s {
				s[j].count = uint32(count)
				count += uint64(mathbits.OnesCount64(s[j].bits))
			}
		}
	}
}
