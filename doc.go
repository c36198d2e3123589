// Package primecount computes pi(x), the number of primes <= x, exactly,
// using the combinatorial method of Deléglise and Rivat with the
// special-leaf optimizations described by Tomás Oliveira e Silva.
//
// # Basic Usage
//
// Counting primes:
//
//	count, err := primecount.Pi(1_000_000_000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("pi(10^9) = %d\n", count)
//
// Computing the partial sieve function (Legendre sum):
//
//	phi, err := primecount.Phi(1000, 5)
//
// Tuning:
//
//	count, err := primecount.Pi(x,
//	    primecount.WithThreads(8),
//	    primecount.WithAlpha(30))
//
// # Package Structure
//
// The implementation is organized as follows:
//
//   - Public API: primecount.go (Pi, Phi, AC, MaxX)
//   - Configuration: options.go (Option, With* functions)
//   - Integer kernels: internal/imath (isqrt, iroot, 128-bit division)
//   - Table generation: internal/generate (primes, Möbius, lpf, FactorTable)
//   - pi(n) lookup tables: internal/pitable (PiTable, SegmentedPiTable)
//   - Segmented sieve: internal/sieve (BitSieve, Counters)
//   - Partial sieve function: internal/phi (PhiCache), internal/phitiny
//   - Deléglise-Rivat formulas: internal/dr (S1, S2, P2)
//   - Gourdon A + C formulas: internal/gourdon
//   - Large allocations: internal/mem (anonymous mmap with heap fallback)
//
// One pi(x) computation runs at a time: the entry points parallelize
// internally across the configured number of threads, but concurrent
// calls from multiple goroutines are not supported.
package primecount
