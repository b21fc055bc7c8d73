package nn

import (
	"testing"

	"github.com/graft-ml/graft/internal/backend/cpu"
	"github.com/graft-ml/graft/internal/tensor"
)

func TestLinear_Creation(t *testing.T) {
	backend := cpu.New()

	fc := NewLinear("fc0", 784, 128, true, backend)

	if fc.InFeatures() != 784 || fc.OutFeatures() != 128 {
		t.Errorf("Expected 784 -> 128, got %d -> %d", fc.InFeatures(), fc.OutFeatures())
	}

	params := fc.Parameters()
	if len(params) != 2 {
		t.Fatalf("Expected 2 parameters, got %d", len(params))
	}
	if params[0].Name() != "fc0.weights" {
		t.Errorf("Expected fc0.weights, got %s", params[0].Name())
	}
	if !params[0].Tensor().Shape().Equal(tensor.Shape{784, 128}) {
		t.Errorf("Unexpected weight shape %v", params[0].Tensor().Shape())
	}
	if !params[1].Tensor().Shape().Equal(tensor.Shape{128}) {
		t.Errorf("Unexpected bias shape %v", params[1].Tensor().Shape())
	}
}

func TestLinear_Forward(t *testing.T) {
	backend := cpu.New()

	fc := NewLinear("fc0", 3, 2, true, backend)

	// Overwrite the random weights with known values:
	// W = [[1, 2], [3, 4], [5, 6]], b stays zero
	w := fc.Parameters()[0].Tensor().Raw().AsFloat32()
	copy(w, []float32{1, 2, 3, 4, 5, 6})

	input, err := tensor.FromSlice([]float32{1, 1, 1}, tensor.Shape{1, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	output := fc.Forward(input)

	if !output.Shape().Equal(tensor.Shape{1, 2}) {
		t.Fatalf("Expected shape [1 2], got %v", output.Shape())
	}

	// [1,1,1] @ W = [1+3+5, 2+4+6] = [9, 12]
	data := output.Data()
	if data[0] != 9 || data[1] != 12 {
		t.Errorf("Expected [9 12], got %v", data)
	}
}

func TestLinear_FeatureMismatch(t *testing.T) {
	backend := cpu.New()

	fc := NewLinear("fc0", 4, 2, true, backend)
	input := tensor.Zeros[float32](tensor.Shape{1, 3}, backend)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for feature mismatch")
		}
	}()
	fc.Forward(input)
}
