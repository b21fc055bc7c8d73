package nn

import (
	"testing"

	"github.com/graft-ml/graft/internal/backend/cpu"
	"github.com/graft-ml/graft/internal/tensor"
)

func TestMaxPool2D_ForwardShape(t *testing.T) {
	backend := cpu.New()

	pool := NewMaxPool2D(3, 3, 2, 2, tensor.Same, tensor.NCHW, backend)
	input := tensor.Zeros[float32](tensor.Shape{2, 64, 28, 28}, backend)

	output := pool.Forward(input)

	// SAME, stride 2: 28 -> 14
	if !output.Shape().Equal(tensor.Shape{2, 64, 14, 14}) {
		t.Errorf("Expected shape [2 64 14 14], got %v", output.Shape())
	}

	if len(pool.Parameters()) != 0 {
		t.Error("MaxPool2D must have no parameters")
	}
}

func TestLRN_PreservesShape(t *testing.T) {
	backend := cpu.New()

	norm := NewLRN(DefaultLRNParams(), tensor.NCHW, backend)
	input := tensor.Ones[float32](tensor.Shape{1, 4, 3, 3}, backend)

	output := norm.Forward(input)

	if !output.Shape().Equal(input.Shape()) {
		t.Errorf("Expected shape %v, got %v", input.Shape(), output.Shape())
	}

	// LRN shrinks magnitudes: every output must be strictly below 1
	for i, v := range output.Data() {
		if v <= 0 || v >= 1 {
			t.Errorf("LRN[%d]: expected value in (0, 1), got %v", i, v)
		}
	}
}

func TestDefaultLRNParams(t *testing.T) {
	p := DefaultLRNParams()
	if p.DepthRadius != 5 || p.Bias != 1 || p.Alpha != 1 || p.Beta != 0.5 {
		t.Errorf("Unexpected defaults: %+v", p)
	}
}

func TestDropout_InferenceIsIdentity(t *testing.T) {
	backend := cpu.New()

	drop := NewDropout(0.5, false, backend)
	input, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4}, backend)

	output := drop.Forward(input)
	if output != input {
		t.Error("Expected inference dropout to pass the input through")
	}
}

func TestDropout_TrainMasks(t *testing.T) {
	backend := cpu.NewSeeded(7)

	drop := NewDropout(0.5, true, backend)
	input := tensor.Ones[float32](tensor.Shape{1000}, backend)

	output := drop.Forward(input)

	for i, v := range output.Data() {
		if v != 0 && v != 2 {
			t.Fatalf("Dropout[%d]: expected 0 or 2, got %v", i, v)
		}
	}
}

func TestDropout_InvalidKeepProb(t *testing.T) {
	backend := cpu.New()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for keepProb 0")
		}
	}()
	NewDropout(0, true, backend)
}

func TestReshape_Wildcard(t *testing.T) {
	backend := cpu.New()

	reshape := NewReshape[*cpu.CPUBackend](tensor.Shape{2, -1}, backend)
	input := tensor.Zeros[float32](tensor.Shape{2, 3, 4}, backend)

	output := reshape.Forward(input)

	if !output.Shape().Equal(tensor.Shape{2, 12}) {
		t.Errorf("Expected shape [2 12], got %v", output.Shape())
	}
}

func TestReshape_MultipleWildcards(t *testing.T) {
	backend := cpu.New()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for multiple -1 dimensions")
		}
	}()
	NewReshape[*cpu.CPUBackend](tensor.Shape{-1, -1}, backend)
}

func TestSequential_Forward(t *testing.T) {
	backend := cpu.New()

	seq := NewSequential[*cpu.CPUBackend](
		NewReshape[*cpu.CPUBackend](tensor.Shape{1, -1}, backend),
		NewReLU[*cpu.CPUBackend](),
	)

	input, _ := tensor.FromSlice([]float32{-1, 2, -3, 4}, tensor.Shape{2, 2}, backend)
	output := seq.Forward(input)

	if !output.Shape().Equal(tensor.Shape{1, 4}) {
		t.Fatalf("Expected shape [1 4], got %v", output.Shape())
	}

	expected := []float32{0, 2, 0, 4}
	for i, v := range output.Data() {
		if v != expected[i] {
			t.Errorf("Sequential[%d]: expected %v, got %v", i, expected[i], v)
		}
	}

	if seq.Len() != 2 {
		t.Errorf("Expected 2 modules, got %d", seq.Len())
	}
}
