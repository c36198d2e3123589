// Package generate builds the small lookup tables consumed by the
// Deléglise-Rivat and Gourdon formulas: the prime table, the Möbius
// function, least prime factors, a dense pi(n) table, and the
// wheel-compressed FactorTable.
//
// The prime and pi generators run a single pass over an odds-only bit
// sieve; LeastPrimeFactors sieves least prime factors over all integers
// and Moebius factors each n with that table. All are intended for
// limits up to a few times 10^8 (the tables cover [1, y], with
// y ~ alpha * x^(1/3)).
package generate

import (
	"math"
)

// compositeOdds returns a bitset marking composite odd numbers.
// Bit i corresponds to the number 2i+1; bit 0 (the number 1) is set
// so that surviving bits are exactly the odd primes.
func compositeOdds(limit int64) []uint64 {
	words := (limit/2)/64 + 1
	bits := make([]uint64, words)
	bits[0] = 1 // 1 is not prime
	for i := int64(3); i*i <= limit; i += 2 {
		if bits[i/2/64]&(1<<(uint(i/2)%64)) != 0 {
			continue
		}
		for j := i * i; j <= limit; j += 2 * i {
			bits[j/2/64] |= 1 << (uint(j/2) % 64)
		}
	}
	return bits
}

func isOddPrime(bits []uint64, n int64) bool {
	return bits[n/2/64]&(1<<(uint(n/2)%64)) == 0
}

// Primes returns the ascending primes <= limit, 1-indexed:
// primes[1] = 2 and primes[0] = 0 is an unused sentinel.
func Primes(limit int64) []int64 {
	primes := []int64{0}
	if limit < 2 {
		return primes
	}
	primes = append(primes, 2)
	bits := compositeOdds(limit)
	for n := int64(3); n <= limit; n += 2 {
		if isOddPrime(bits, n) {
			primes = append(primes, n)
		}
	}
	return primes
}

// NPrimes returns the first n primes, 1-indexed with primes[0] = 0.
func NPrimes(n int64) []int64 {
	if n <= 0 {
		return []int64{0}
	}
	// p_n < n (ln n + ln ln n) for n >= 6; pad for smaller n.
	limit := int64(100)
	if n >= 6 {
		f := float64(n)
		limit = int64(f*(math.Log(f)+math.Log(math.Log(f)))) + 10
	}
	for {
		primes := Primes(limit)
		if int64(len(primes)) > n {
			return primes[:n+1]
		}
		limit *= 2
	}
}

// CountPrimes returns pi(limit) by direct sieving.
func CountPrimes(limit int64) int64 {
	if limit < 2 {
		return 0
	}
	count := int64(1) // the prime 2
	bits := compositeOdds(limit)
	for n := int64(3); n <= limit; n += 2 {
		if isOddPrime(bits, n) {
			count++
		}
	}
	return count
}

// PiDense returns pi(n) for every n in [0, limit].
func PiDense(limit int64) []int32 {
	pi := make([]int32, limit+1)
	if limit < 2 {
		return pi
	}
	bits := compositeOdds(limit)
	count := int32(0)
	for n := int64(2); n <= limit; n++ {
		if n == 2 || (n%2 == 1 && isOddPrime(bits, n)) {
			count++
		}
		pi[n] = count
	}
	return pi
}

// lpfInfinity marks numbers with no prime factor (only the number 1).
// It compares greater than every prime, so lpf-based leaf conditions
// of the form "prime < lpf[m]" accept m = 1.
const lpfInfinity = math.MaxInt32

// LeastPrimeFactors returns lpf(n) for n in [0, limit], with
// lpf[1] = math.MaxInt32 and lpf[0] = 0.
func LeastPrimeFactors(limit int64) []int32 {
	lpf := make([]int32, limit+1)
	if limit >= 1 {
		lpf[1] = lpfInfinity
	}
	for i := int64(2); i <= limit; i++ {
		if lpf[i] == 0 {
			for j := i; j <= limit; j += i {
				if lpf[j] == 0 {
					lpf[j] = int32(i)
				}
			}
		}
	}
	return lpf
}

// Moebius returns mu(n) for n in [0, limit]; mu[0] is 0.
func Moebius(limit int64) []int32 {
	mu := make([]int32, limit+1)
	if limit < 1 {
		return mu
	}
	mu[1] = 1
	lpf := LeastPrimeFactors(limit)
	for n := int64(2); n <= limit; n++ {
		m := n
		sign := int32(1)
		for m > 1 {
			p := int64(lpf[m])
			m /= p
			if m%p == 0 {
				sign = 0
				break
			}
			sign = -sign
		}
		mu[n] = sign
	}
	return mu
}
