// Package parallel provides loop-level parallelism helpers for compute
// kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// Sequential returns a config that always runs loops inline. Seeded
// backends use it so kernels consume randomness in a fixed order.
func Sequential() Config {
	return Config{Enabled: false}
}

// WithMinChunk returns a copy of the config with a different chunk
// floor. Image kernels lower it because each loop item is a whole
// output plane, not a single element.
func (c Config) WithMinChunk(n int) Config {
	c.MinChunkSize = n
	return c
}

// For executes f(i) for i in [0, n), splitting the range across workers.
// Falls back to sequential execution when parallelism is disabled or n
// is too small to amortize goroutine overhead.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// For2D executes f(i, j) over the [0, outer) x [0, inner) grid. The
// flattened index space is what gets split across workers, matching the
// batch x channel iteration pattern of image kernels.
func For2D(outer, inner int, f func(i, j int), cfg Config) {
	For(outer*inner, func(k int) {
		f(k/inner, k%inner)
	}, cfg)
}
