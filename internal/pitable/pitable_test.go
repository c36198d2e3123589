package pitable

import (
	"encoding/binary"
	"testing"

	"github.com/cespare/xxhash/v2"

	"github.com/pgujjula/primecount/internal/generate"
)

func TestPiTableAgainstDense(t *testing.T) {
	const limit = 100_000
	pt, err := New(limit, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer pt.Free()

	dense := generate.PiDense(limit)
	for n := int64(0); n <= limit; n++ {
		if got := pt.Pi(n); got != int64(dense[n]) {
			t.Fatalf("Pi(%d) = %d, want %d", n, got, dense[n])
		}
	}
}

func TestPiTableSmallLimits(t *testing.T) {
	for limit := int64(0); limit <= 600; limit++ {
		pt, err := New(limit, 1)
		if err != nil {
			t.Fatal(err)
		}
		want := generate.PiDense(limit)
		for n := int64(0); n <= limit; n++ {
			if got := pt.Pi(n); got != int64(want[n]) {
				t.Fatalf("limit %d: Pi(%d) = %d, want %d", limit, n, got, want[n])
			}
		}
		pt.Free()
	}
}

func TestPiTableLookupOutOfRangePanics(t *testing.T) {
	pt, err := New(1000, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer pt.Free()
	defer func() {
		if recover() == nil {
			t.Fatal("Pi(limit+1) did not panic")
		}
	}()
	pt.Pi(1001)
}

// fingerprint hashes a word slice so bit-level equality across
// configurations can be asserted with one comparison.
func fingerprint(words []uint64) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, w := range words {
		binary.LittleEndian.PutUint64(buf[:], w)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func TestPiTableThreadsBitEqual(t *testing.T) {
	const limit = 2_000_000
	base, err := New(limit, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer base.Free()
	want := fingerprint(base.bits)

	for _, threads := range []int{2, 4, 16} {
		pt, err := New(limit, threads)
		if err != nil {
			t.Fatal(err)
		}
		if got := fingerprint(pt.bits); got != want {
			t.Errorf("threads=%d: bit array fingerprint %#x, want %#x", threads, got, want)
		}
		pt.Free()
	}
}

func TestSegmentedPiMatchesPiTable(t *testing.T) {
	const limit = 50_000
	pt, err := New(limit, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer pt.Free()

	for _, segmentSize := range []int64{240, 1 << 12, 1 << 16} {
		st, err := NewSegmented(limit, segmentSize, 1)
		if err != nil {
			t.Fatal(err)
		}
		visited := int64(0)
		for ; !st.Finished(); st.Next() {
			if st.Low() != visited {
				t.Fatalf("segment=%d: window starts at %d, want %d", segmentSize, st.Low(), visited)
			}
			for n := st.Low(); n < st.High(); n++ {
				if got := st.Pi(n); got != pt.Pi(n) {
					t.Fatalf("segment=%d: Pi(%d) = %d, want %d", segmentSize, n, got, pt.Pi(n))
				}
			}
			visited = st.High()
		}
		if visited != limit+1 {
			t.Fatalf("segment=%d: windows covered [0, %d), want [0, %d)", segmentSize, visited, limit+1)
		}
		st.Free()
	}
}

func TestSegmentedPiThreadsBitEqual(t *testing.T) {
	const limit = 1_000_000
	const segmentSize = 1 << 14

	collect := func(threads int) uint64 {
		st, err := NewSegmented(limit, segmentSize, threads)
		if err != nil {
			t.Fatal(err)
		}
		defer st.Free()
		h := xxhash.New()
		var buf [8]byte
		for ; !st.Finished(); st.Next() {
			words := (st.High() - st.Low() + 239) / 240
			for _, w := range st.bits[:words] {
				binary.LittleEndian.PutUint64(buf[:], w)
				_, _ = h.Write(buf[:])
			}
		}
		return h.Sum64()
	}

	want := collect(1)
	for _, threads := range []int{2, 8} {
		if got := collect(threads); got != want {
			t.Errorf("threads=%d: window fingerprint %#x, want %#x", threads, got, want)
		}
	}
}
