//go:build unix

package mem

import "github.com/edsrzf/mmap-go"

// mapAnon creates an anonymous read-write mapping of nbytes bytes.
// The kernel hands back zeroed pages, matching make()'s semantics.
func mapAnon(nbytes int) ([]byte, func(), error) {
	m, err := mmap.MapRegion(nil, nbytes, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, nil, err
	}
	adviseHuge(m)
	return m, func() { _ = m.Unmap() }, nil
}
