// Package errors defines all exported error sentinels for the primecount
// library.
//
// This is the single source of truth for error values. Both the top-level
// primecount package and internal algorithm packages import from here,
// ensuring errors.Is checks work across package boundaries.
package errors

import "errors"

// Input errors
var (
	ErrInputOutOfRange = errors.New("primecount: x exceeds the supported maximum")
	ErrInvalidThreads  = errors.New("primecount: threads must be >= 1")
	ErrInvalidAlpha    = errors.New("primecount: alpha tuning factor out of range")
	ErrInvalidSegment  = errors.New("primecount: segment size must be a power of two")
)

// Internal contract errors. These indicate a bug in the caller or in the
// library itself; the computation cannot continue.
var (
	ErrArithmeticOverflow = errors.New("primecount: internal multiplication overflowed 64 bits")
	ErrContractViolation  = errors.New("primecount: helper precondition violated")
	ErrAllocationFailure  = errors.New("primecount: table allocation failed")
)
