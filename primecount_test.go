package primecount

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/cespare/xxhash/v2"

	pcerrors "github.com/pgujjula/primecount/errors"
	"github.com/pgujjula/primecount/internal/generate"
)

func mustPi(t *testing.T, x uint64, opts ...Option) uint64 {
	t.Helper()
	count, err := Pi(x, opts...)
	if err != nil {
		t.Fatalf("Pi(%d): %v", x, err)
	}
	return count
}

func TestPiScenarios(t *testing.T) {
	cases := []struct {
		x    uint64
		want uint64
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{100, 25},
		{10, 4},
		{1_000, 168},
		{10_000, 1229},
		{100_000, 9592},
		{1_000_000, 78498},
		{10_000_000, 664579},
		{100_000_000, 5761455},
		{1_000_000_000, 50847534},
	}
	for _, c := range cases {
		if got := mustPi(t, c.x, WithThreads(1)); got != c.want {
			t.Errorf("Pi(%d) = %d, want %d", c.x, got, c.want)
		}
	}
}

func TestPiLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 10^10 and 10^12 in short mode")
	}
	if got := mustPi(t, 10_000_000_000, WithThreads(4)); got != 455052511 {
		t.Errorf("Pi(10^10) = %d, want 455052511", got)
	}
	if got := mustPi(t, 1_000_000_000_000, WithThreads(4)); got != 37607912018 {
		t.Errorf("Pi(10^12) = %d, want 37607912018", got)
	}
}

func TestPiMonotonic(t *testing.T) {
	// Contiguous sweep, crossing the sieve/Deléglise-Rivat boundary.
	var prev uint64
	for x := uint64(0); x <= 3000; x++ {
		cur := mustPi(t, x)
		if cur < prev || cur-prev > 1 {
			t.Fatalf("Pi not monotone at x=%d: %d -> %d", x, prev, cur)
		}
		prev = cur
	}
	prev = mustPi(t, 9989)
	for x := uint64(9990); x <= 10_050; x++ {
		cur := mustPi(t, x)
		if cur < prev || cur-prev > 1 {
			t.Fatalf("Pi not monotone at x=%d: %d -> %d", x, prev, cur)
		}
		if want := uint64(generate.CountPrimes(int64(x))); cur != want {
			t.Fatalf("Pi(%d) = %d, want %d", x, cur, want)
		}
		prev = cur
	}
}

func TestPiThreadIndependence(t *testing.T) {
	xs := []uint64{10_000, 123_456, 1_000_000, 50_000_000}

	digest := func(threads int) uint64 {
		h := xxhash.New()
		var buf [8]byte
		for _, x := range xs {
			binary.LittleEndian.PutUint64(buf[:], mustPi(t, x, WithThreads(threads)))
			_, _ = h.Write(buf[:])
		}
		return h.Sum64()
	}

	want := digest(1)
	for _, threads := range []int{2, 4, 16} {
		if got := digest(threads); got != want {
			t.Errorf("threads=%d: result fingerprint %#x, want %#x", threads, got, want)
		}
	}
}

func TestPiOverflowGuard(t *testing.T) {
	_, err := Pi(MaxX() + 1)
	if !errors.Is(err, pcerrors.ErrInputOutOfRange) {
		t.Errorf("Pi(MaxX()+1) error = %v, want ErrInputOutOfRange", err)
	}
}

func TestInvalidOptions(t *testing.T) {
	if _, err := Pi(100, WithThreads(0)); !errors.Is(err, pcerrors.ErrInvalidThreads) {
		t.Errorf("threads=0 error = %v, want ErrInvalidThreads", err)
	}
	if _, err := Pi(100, WithAlpha(-2)); !errors.Is(err, pcerrors.ErrInvalidAlpha) {
		t.Errorf("alpha=-2 error = %v, want ErrInvalidAlpha", err)
	}
	if _, err := AC(1000, 10, 100, 2, WithSegmentSize(-1)); !errors.Is(err, pcerrors.ErrInvalidSegment) {
		t.Errorf("segment=-1 error = %v, want ErrInvalidSegment", err)
	}
}

func TestPhiPublic(t *testing.T) {
	// phi(1000, 5) by direct enumeration: integers <= 1000 coprime to
	// {2, 3, 5, 7, 11}.
	var want int64
	for n := int64(1); n <= 1000; n++ {
		if n%2 != 0 && n%3 != 0 && n%5 != 0 && n%7 != 0 && n%11 != 0 {
			want++
		}
	}
	got, err := Phi(1000, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Phi(1000, 5) = %d, want %d", got, want)
	}

	if v, _ := Phi(424242, 0); v != 424242 {
		t.Errorf("Phi(x, 0) = %d, want x", v)
	}
	if v, _ := Phi(0, 42); v != 0 {
		t.Errorf("Phi(0, a) = %d, want 0", v)
	}
	// a >= pi(x) leaves only the integer 1.
	if v, _ := Phi(1_000_000, 78_498); v != 1 {
		t.Errorf("Phi(10^6, pi(10^6)) = %d, want 1", v)
	}
}

func TestPiProgressOption(t *testing.T) {
	called := false
	_, err := Pi(5_000_000, WithThreads(2), WithProgress(func(done, total int64) {
		called = true
		if done < 0 || done > total {
			t.Errorf("progress out of range: %d / %d", done, total)
		}
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("progress sink never invoked")
	}
}

func TestACPublic(t *testing.T) {
	// AC is independent of the window size of its segmented pi table.
	const x = 10_000_000
	const y = 1000 // alpha_y * x^(1/3)
	const z = 2000 // alpha_z * y, well below sqrt(x)
	want, err := AC(x, y, z, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, seg := range []int64{1 << 12, 1 << 16, 1 << 20} {
		got, err := AC(x, y, z, 2, WithSegmentSize(seg))
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("segment=%d: AC = %d, want %d", seg, got, want)
		}
	}
}
