package primecount

import (
	"fmt"
	"runtime"

	pcerrors "github.com/pgujjula/primecount/errors"
)

// ProgressFunc receives coarse progress updates from the long-running
// phases of a computation. done grows monotonically towards total
// within a phase. The default is silent; the function must be fast and
// may be invoked from the calling goroutine only.
type ProgressFunc func(done, total int64)

// Option is a functional option for configuring a computation.
type Option func(*config)

type config struct {
	threads  int
	alpha    float64
	cacheMB  int64
	segment  int64
	progress ProgressFunc
}

func defaultConfig() *config {
	return &config{
		threads: runtime.NumCPU(),
		cacheMB: 16,
	}
}

func newConfig(opts []Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.threads < 1 {
		return nil, fmt.Errorf("%w: %d", pcerrors.ErrInvalidThreads, cfg.threads)
	}
	if cfg.alpha < 0 {
		return nil, fmt.Errorf("%w: %g", pcerrors.ErrInvalidAlpha, cfg.alpha)
	}
	if cfg.segment < 0 {
		return nil, fmt.Errorf("%w: %d", pcerrors.ErrInvalidSegment, cfg.segment)
	}
	return cfg, nil
}

// WithThreads sets the parallelism degree. The default is the machine's
// logical CPU count.
func WithThreads(n int) Option {
	return func(c *config) {
		c.threads = n
	}
}

// WithAlpha overrides the Deléglise-Rivat tuning factor alpha, which
// sizes y = alpha * x^(1/3). Values outside [1, x^(1/6)] are clamped.
// 0 (the default) selects alpha ~ log(x)^3 / 1000 automatically.
// alpha only affects speed and memory, never the result.
func WithAlpha(alpha float64) Option {
	return func(c *config) {
		c.alpha = alpha
	}
}

// WithPhiCacheMegabytes caps the per-thread phi(x, a) cache.
// The default is 16 MiB per thread.
func WithPhiCacheMegabytes(mb int64) Option {
	return func(c *config) {
		c.cacheMB = mb
	}
}

// WithSegmentSize overrides the window size of the segmented pi(n)
// table used by AC (rounded up to a multiple of 240). 0 (the default)
// selects z. The result is independent of the choice.
func WithSegmentSize(n int64) Option {
	return func(c *config) {
		c.segment = n
	}
}

// WithProgress installs a progress sink for the sieving phases.
func WithProgress(fn ProgressFunc) Option {
	return func(c *config) {
		c.progress = fn
	}
}
