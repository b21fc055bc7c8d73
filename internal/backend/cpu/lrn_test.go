package cpu

import (
	"math"
	"testing"

	"github.com/graft-ml/graft/internal/tensor"
)

// TestLRN_AcrossChannels verifies normalization over the channel window.
func TestLRN_AcrossChannels(t *testing.T) {
	backend := New()

	// Input: [1, 2, 1, 1] - two channels with values 3 and 4
	input, _ := tensor.NewRaw(tensor.Shape{1, 2, 1, 1}, tensor.Float32, tensor.CPU)
	inputData := input.AsFloat32()
	inputData[0] = 3.0
	inputData[1] = 4.0

	// radius 1 covers both channels: sqrSum = 9 + 16 = 25
	output := backend.LRN(input, 1, 1.0, 1.0, 0.5, tensor.NCHW)

	// out = in / sqrt(1 + 25) = in / sqrt(26)
	norm := float32(math.Sqrt(26.0))
	expected := []float32{3.0 / norm, 4.0 / norm}

	outputData := output.AsFloat32()
	for i, exp := range expected {
		if math.Abs(float64(outputData[i]-exp)) > 1e-6 {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, outputData[i])
		}
	}
}

// TestLRN_WindowClamping verifies the radius window clamps at channel
// boundaries rather than wrapping.
func TestLRN_WindowClamping(t *testing.T) {
	backend := New()

	// Input: [1, 3, 1, 1] with channels [1, 2, 3], radius 1
	input, _ := tensor.NewRaw(tensor.Shape{1, 3, 1, 1}, tensor.Float32, tensor.CPU)
	inputData := input.AsFloat32()
	inputData[0] = 1.0
	inputData[1] = 2.0
	inputData[2] = 3.0

	output := backend.LRN(input, 1, 1.0, 1.0, 0.5, tensor.NCHW)

	// Channel 0 window: {0,1} -> sqrSum = 1+4 = 5
	// Channel 1 window: {0,1,2} -> sqrSum = 1+4+9 = 14
	// Channel 2 window: {1,2} -> sqrSum = 4+9 = 13
	expected := []float32{
		1.0 / float32(math.Sqrt(6.0)),
		2.0 / float32(math.Sqrt(15.0)),
		3.0 / float32(math.Sqrt(14.0)),
	}

	outputData := output.AsFloat32()
	for i, exp := range expected {
		if math.Abs(float64(outputData[i]-exp)) > 1e-6 {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, outputData[i])
		}
	}
}

// TestLRN_SingleChannel verifies the degenerate one-channel case:
// out = x / (bias + alpha*x^2)^beta.
func TestLRN_SingleChannel(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{1, 1, 1, 2}, tensor.Float32, tensor.CPU)
	inputData := input.AsFloat32()
	inputData[0] = 2.0
	inputData[1] = -2.0

	output := backend.LRN(input, 5, 1.0, 1.0, 0.5, tensor.NCHW)

	// out = value / sqrt(1 + 4) = value / sqrt(5)
	norm := float32(math.Sqrt(5.0))
	expected := []float32{2.0 / norm, -2.0 / norm}

	outputData := output.AsFloat32()
	for i, exp := range expected {
		if math.Abs(float64(outputData[i]-exp)) > 1e-6 {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, outputData[i])
		}
	}
}

// TestLRN_NHWC verifies channels-last normalization matches NCHW.
func TestLRN_NHWC(t *testing.T) {
	backend := New()

	// Same two-channel values as the NCHW test, channels-last layout.
	input, _ := tensor.NewRaw(tensor.Shape{1, 1, 1, 2}, tensor.Float32, tensor.CPU)
	inputData := input.AsFloat32()
	inputData[0] = 3.0
	inputData[1] = 4.0

	output := backend.LRN(input, 1, 1.0, 1.0, 0.5, tensor.NHWC)

	norm := float32(math.Sqrt(26.0))
	expected := []float32{3.0 / norm, 4.0 / norm}

	outputData := output.AsFloat32()
	for i, exp := range expected {
		if math.Abs(float64(outputData[i]-exp)) > 1e-6 {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, outputData[i])
		}
	}
}
