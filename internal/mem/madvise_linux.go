//go:build linux

package mem

import "golang.org/x/sys/unix"

// adviseHuge asks the kernel to back the mapping with transparent huge
// pages. The tables are scanned sequentially during construction and
// then probed randomly, so fewer TLB entries help both phases.
// Best-effort: errors (e.g. THP disabled) are ignored.
func adviseHuge(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_HUGEPAGE)
}
