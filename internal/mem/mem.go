// Package mem allocates the large flat arrays backing the pi(n) lookup
// tables. Requests above a threshold are served by anonymous memory
// mappings so that multi-gigabyte tables bypass the Go heap and can be
// returned to the OS the moment a computation finishes; small requests
// fall back to ordinary slices.
package mem

import (
	"fmt"
	"unsafe"

	pcerrors "github.com/pgujjula/primecount/errors"
)

// mmapThreshold is the allocation size in bytes above which an
// anonymous mapping is used instead of the Go heap.
const mmapThreshold = 4 << 20

// Uint64s allocates a zeroed slice of n uint64 words. The returned
// release function must be called exactly once when the slice is no
// longer needed; it is a no-op for heap-backed slices.
func Uint64s(n int64) ([]uint64, func(), error) {
	nbytes := n * 8
	if nbytes < mmapThreshold {
		return make([]uint64, n), func() {}, nil
	}
	raw, release, err := mapAnon(int(nbytes))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %d bytes: %v", pcerrors.ErrAllocationFailure, nbytes, err)
	}
	words := unsafe.Slice((*uint64)(unsafe.Pointer(&raw[0])), n)
	return words, release, nil
}
