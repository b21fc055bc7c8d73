package nn

import (
	"fmt"

	"github.com/graft-ml/graft/internal/tensor"
)

// MaxPool2D is a 2D max pooling layer.
//
// Max pooling reduces spatial dimensions by taking the maximum value in
// each pooling window. Unlike Conv2D, MaxPool2D has no learnable
// parameters.
//
// Common configurations:
//   - 2x2 window, strides 2x2: halves spatial dimensions (most common)
//   - 3x3 window, strides 2x2: overlapping pooling (AlexNet style)
type MaxPool2D[B tensor.Backend] struct {
	window  [2]int
	strides [2]int
	padding tensor.Padding
	format  tensor.DataFormat
	backend B
}

// NewMaxPool2D creates a new 2D max pooling layer.
func NewMaxPool2D[B tensor.Backend](
	windowH, windowW int,
	strideH, strideW int,
	padding tensor.Padding,
	format tensor.DataFormat,
	backend B,
) *MaxPool2D[B] {
	if windowH <= 0 || windowW <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid window size %dx%d", windowH, windowW))
	}
	if strideH <= 0 || strideW <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid strides %dx%d", strideH, strideW))
	}

	return &MaxPool2D[B]{
		window:  [2]int{windowH, windowW},
		strides: [2]int{strideH, strideW},
		padding: padding,
		format:  format,
		backend: backend,
	}
}

// Forward performs the forward pass.
func (m *MaxPool2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("maxpool2d: expected 4D input, got %dD", len(inputShape)))
	}

	outputRaw := m.backend.MaxPool2D(
		input.Raw(),
		m.window[0], m.window[1],
		m.strides[0], m.strides[1],
		m.padding,
		m.format,
	)

	return tensor.New[float32, B](outputRaw, m.backend)
}

// Parameters returns all trainable parameters (empty for MaxPool2D).
func (m *MaxPool2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (m *MaxPool2D[B]) String() string {
	return fmt.Sprintf("MaxPool2D(window=(%d, %d), strides=(%d, %d), padding=%s)",
		m.window[0], m.window[1], m.strides[0], m.strides[1], m.padding)
}

// ComputeOutputSize computes output spatial dimensions for a given input size.
//
// Returns: [out_height, out_width].
func (m *MaxPool2D[B]) ComputeOutputSize(inputH, inputW int) [2]int {
	outH, _ := m.padding.OutputDim(inputH, m.window[0], m.strides[0])
	outW, _ := m.padding.OutputDim(inputW, m.window[1], m.strides[1])
	return [2]int{outH, outW}
}
