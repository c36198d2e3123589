// Package parallel provides the dynamic work distribution used by the
// leaf-enumeration formulas: tasks are loop indexes drawn from a shared
// atomic counter feeding per-worker reduction loops.
package parallel

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Sum evaluates fn(b) for every b in [first, last] and returns the sum
// of the results. Workers draw b values from a shared atomic counter:
// the tasks only read shared immutable tables and reduce into
// thread-local partials, so a relaxed fetch-add is the only
// coordination needed, and no ordering across tasks is required (the
// 64-bit sum is exact and order-independent).
func Sum(first, last int64, threads int, fn func(b int64) int64) int64 {
	if last < first {
		return 0
	}
	if threads <= 1 || last-first < 4 {
		var sum int64
		for b := first; b <= last; b++ {
			sum += fn(b)
		}
		return sum
	}

	var next atomic.Int64
	next.Store(first)
	partials := make([]int64, threads)
	var g errgroup.Group
	for t := 0; t < threads; t++ {
		t := t
		g.Go(func() error {
			var local int64
			for {
				b := next.Add(1) - 1
				if b > last {
					break
				}
				local += fn(b)
			}
			partials[t] = local
			return nil
		})
	}
	_ = g.Wait() // workers are infallible
	var sum int64
	for _, p := range partials {
		sum += p
	}
	return sum
}
