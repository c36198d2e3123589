//go:build !unix

package mem

// mapAnon falls back to the Go heap on platforms without anonymous
// mapping support.
func mapAnon(nbytes int) ([]byte, func(), error) {
	return make([]byte, nbytes), func() {}, nil
}
