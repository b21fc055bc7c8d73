package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d calls, got %d", n, counter)
	}
}

func TestFor_Sequential(t *testing.T) {
	// With parallelism disabled, iteration order is deterministic.
	var order []int
	For(10, func(i int) {
		order = append(order, i)
	}, Sequential())

	for i, v := range order {
		if v != i {
			t.Fatalf("Expected in-order execution, got %v", order)
		}
	}
}

func TestFor_SmallN(t *testing.T) {
	// Below MinChunkSize the loop runs inline even when enabled.
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 64}

	var order []int
	For(8, func(i int) {
		order = append(order, i)
	}, cfg)

	if len(order) != 8 {
		t.Fatalf("Expected 8 calls, got %d", len(order))
	}
}

func TestWithMinChunk(t *testing.T) {
	cfg := DefaultConfig().WithMinChunk(1)
	if cfg.MinChunkSize != 1 {
		t.Errorf("expected chunk floor 1, got %d", cfg.MinChunkSize)
	}
	if base := DefaultConfig(); base.MinChunkSize == 1 {
		t.Error("WithMinChunk should not affect defaults")
	}
}

func TestFor2D(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	For2D(16, 8, func(i, j int) {
		if i < 0 || i >= 16 || j < 0 || j >= 8 {
			t.Errorf("Index out of range: (%d, %d)", i, j)
		}
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 128 {
		t.Errorf("Expected 128 calls, got %d", counter)
	}
}
