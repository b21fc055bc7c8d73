package cpu

import (
	"testing"

	"github.com/graft-ml/graft/internal/tensor"
)

// TestMaxPool2D_Valid tests max pooling with VALID padding.
func TestMaxPool2D_Valid(t *testing.T) {
	backend := New()

	// Input: [1, 1, 4, 4] with values 0..15
	input, _ := tensor.NewRaw(tensor.Shape{1, 1, 4, 4}, tensor.Float32, tensor.CPU)
	inputData := input.AsFloat32()
	for i := range inputData {
		inputData[i] = float32(i)
	}

	output := backend.MaxPool2D(input, 2, 2, 2, 2, tensor.Valid, tensor.NCHW)

	if !output.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Expected shape [1 1 2 2], got %v", output.Shape())
	}

	// Max of each 2x2 block
	expected := []float32{5, 7, 13, 15}
	for i, exp := range expected {
		if output.AsFloat32()[i] != exp {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, output.AsFloat32()[i])
		}
	}
}

// TestMaxPool2D_Same tests SAME padding; padded positions must not leak
// zeros into the max when all inputs are negative.
func TestMaxPool2D_Same(t *testing.T) {
	backend := New()

	// Input: [1, 1, 3, 3], all values negative
	input, _ := tensor.NewRaw(tensor.Shape{1, 1, 3, 3}, tensor.Float32, tensor.CPU)
	inputData := input.AsFloat32()
	for i := range inputData {
		inputData[i] = float32(-(i + 1))
	}

	output := backend.MaxPool2D(input, 2, 2, 2, 2, tensor.Same, tensor.NCHW)

	// SAME, stride 2: out = ceil(3/2) = 2
	if !output.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Expected shape [1 1 2 2], got %v", output.Shape())
	}

	// Input:
	// -1 -2 -3
	// -4 -5 -6
	// -7 -8 -9
	// Windows start at rows/cols {0, 2}; out-of-bounds cells are ignored:
	// max(-1,-2,-4,-5)=-1  max(-3,-6)=-3
	// max(-7,-8)=-7        max(-9)=-9
	expected := []float32{-1, -3, -7, -9}
	for i, exp := range expected {
		if output.AsFloat32()[i] != exp {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, output.AsFloat32()[i])
		}
	}
}

// TestMaxPool2D_Overlapping tests a 3x3 window with stride 2.
func TestMaxPool2D_Overlapping(t *testing.T) {
	backend := New()

	// Input: [1, 1, 5, 5] with values 0..24
	input, _ := tensor.NewRaw(tensor.Shape{1, 1, 5, 5}, tensor.Float32, tensor.CPU)
	inputData := input.AsFloat32()
	for i := range inputData {
		inputData[i] = float32(i)
	}

	output := backend.MaxPool2D(input, 3, 3, 2, 2, tensor.Valid, tensor.NCHW)

	// VALID: out = (5-3)/2 + 1 = 2
	if !output.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Expected shape [1 1 2 2], got %v", output.Shape())
	}

	// Bottom-right corner of each 3x3 window
	expected := []float32{12, 14, 22, 24}
	for i, exp := range expected {
		if output.AsFloat32()[i] != exp {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, output.AsFloat32()[i])
		}
	}
}

// TestMaxPool2D_NHWC verifies channels-last max pooling.
func TestMaxPool2D_NHWC(t *testing.T) {
	backend := New()

	// Input: [1, 2, 2, 2] NHWC - two channels interleaved
	input, _ := tensor.NewRaw(tensor.Shape{1, 2, 2, 2}, tensor.Float32, tensor.CPU)
	inputData := input.AsFloat32()
	// (h,w,c): channel 0 gets 1..4, channel 1 gets 10..40
	values := []float32{1, 10, 2, 20, 3, 30, 4, 40}
	copy(inputData, values)

	output := backend.MaxPool2D(input, 2, 2, 2, 2, tensor.Valid, tensor.NHWC)

	if !output.Shape().Equal(tensor.Shape{1, 1, 1, 2}) {
		t.Fatalf("Expected shape [1 1 1 2], got %v", output.Shape())
	}

	outputData := output.AsFloat32()
	if outputData[0] != 4 || outputData[1] != 40 {
		t.Errorf("Expected [4 40], got %v", outputData)
	}
}
