package nn

import (
	"testing"

	"github.com/graft-ml/graft/internal/backend/cpu"
	"github.com/graft-ml/graft/internal/tensor"
)

func TestConv2D_Creation(t *testing.T) {
	backend := cpu.New()

	conv := NewConv2D("conv0", 3, 16, 3, 3, 1, 1, tensor.Same, tensor.NCHW, true, backend)

	if conv.InChannels() != 3 {
		t.Errorf("Expected 3 input channels, got %d", conv.InChannels())
	}
	if conv.OutChannels() != 16 {
		t.Errorf("Expected 16 output channels, got %d", conv.OutChannels())
	}

	params := conv.Parameters()
	if len(params) != 2 {
		t.Fatalf("Expected 2 parameters (filter + bias), got %d", len(params))
	}
	if params[0].Name() != "conv0.filter" {
		t.Errorf("Expected filter name conv0.filter, got %s", params[0].Name())
	}
	if params[1].Name() != "conv0.biases" {
		t.Errorf("Expected bias name conv0.biases, got %s", params[1].Name())
	}

	// Filter: [16, 3, 3, 3]
	if !params[0].Tensor().Shape().Equal(tensor.Shape{16, 3, 3, 3}) {
		t.Errorf("Unexpected filter shape %v", params[0].Tensor().Shape())
	}
	// Bias: [16]
	if !params[1].Tensor().Shape().Equal(tensor.Shape{16}) {
		t.Errorf("Unexpected bias shape %v", params[1].Tensor().Shape())
	}
}

func TestConv2D_NoBias(t *testing.T) {
	backend := cpu.New()

	conv := NewConv2D("conv0", 1, 4, 3, 3, 1, 1, tensor.Same, tensor.NCHW, false, backend)

	if len(conv.Parameters()) != 1 {
		t.Errorf("Expected 1 parameter without bias, got %d", len(conv.Parameters()))
	}
}

func TestConv2D_ForwardShape_Same(t *testing.T) {
	backend := cpu.New()

	conv := NewConv2D("conv0", 1, 8, 3, 3, 1, 1, tensor.Same, tensor.NCHW, true, backend)
	input := tensor.Zeros[float32](tensor.Shape{2, 1, 28, 28}, backend)

	output := conv.Forward(input)

	// SAME with stride 1 preserves spatial dims
	if !output.Shape().Equal(tensor.Shape{2, 8, 28, 28}) {
		t.Errorf("Expected shape [2 8 28 28], got %v", output.Shape())
	}
}

func TestConv2D_ForwardShape_Valid(t *testing.T) {
	backend := cpu.New()

	conv := NewConv2D("conv0", 1, 8, 5, 5, 1, 1, tensor.Valid, tensor.NCHW, true, backend)
	input := tensor.Zeros[float32](tensor.Shape{2, 1, 28, 28}, backend)

	output := conv.Forward(input)

	// VALID: 28 - 5 + 1 = 24
	if !output.Shape().Equal(tensor.Shape{2, 8, 24, 24}) {
		t.Errorf("Expected shape [2 8 24 24], got %v", output.Shape())
	}
}

func TestConv2D_ComputeOutputSize(t *testing.T) {
	backend := cpu.New()

	conv := NewConv2D("conv0", 1, 8, 3, 3, 2, 2, tensor.Same, tensor.NCHW, true, backend)

	out := conv.ComputeOutputSize(28, 28)
	if out[0] != 14 || out[1] != 14 {
		t.Errorf("Expected (14, 14), got %v", out)
	}
}

func TestConv2D_InvalidParams(t *testing.T) {
	backend := cpu.New()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for zero output channels")
		}
	}()
	NewConv2D("conv0", 1, 0, 3, 3, 1, 1, tensor.Same, tensor.NCHW, true, backend)
}
