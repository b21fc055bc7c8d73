package nn

import (
	"fmt"

	"github.com/graft-ml/graft/internal/tensor"
)

// LRNParams holds local response normalization hyperparameters.
//
// The zero value is not useful; call DefaultLRNParams for the standard
// configuration.
type LRNParams struct {
	// DepthRadius is the half-width of the normalization window along
	// the channel axis. Each activation is normalized over channels
	// [c-DepthRadius, c+DepthRadius], clamped to valid range.
	DepthRadius int

	// Bias is the additive offset inside the normalizer (usually >= 1
	// to avoid dividing by tiny sums).
	Bias float32

	// Alpha scales the sum of squares.
	Alpha float32

	// Beta is the exponent of the normalizer.
	Beta float32
}

// DefaultLRNParams returns the standard LRN configuration:
// depth radius 5, bias 1, alpha 1, beta 0.5.
func DefaultLRNParams() LRNParams {
	return LRNParams{
		DepthRadius: 5,
		Bias:        1.0,
		Alpha:       1.0,
		Beta:        0.5,
	}
}

// LRN is a local response normalization layer.
//
// Each activation is divided by (bias + alpha * sum(x^2))^beta where the
// sum runs over nearby channels at the same spatial position. LRN has no
// learnable parameters.
type LRN[B tensor.Backend] struct {
	params  LRNParams
	format  tensor.DataFormat
	backend B
}

// NewLRN creates a new local response normalization layer.
func NewLRN[B tensor.Backend](params LRNParams, format tensor.DataFormat, backend B) *LRN[B] {
	if params.DepthRadius < 0 {
		panic(fmt.Sprintf("lrn: invalid depth radius %d", params.DepthRadius))
	}
	if params.Beta <= 0 {
		panic(fmt.Sprintf("lrn: invalid beta %v", params.Beta))
	}

	return &LRN[B]{
		params:  params,
		format:  format,
		backend: backend,
	}
}

// Forward performs the forward pass.
func (l *LRN[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("lrn: expected 4D input, got %dD", len(inputShape)))
	}

	outputRaw := l.backend.LRN(
		input.Raw(),
		l.params.DepthRadius,
		l.params.Bias,
		l.params.Alpha,
		l.params.Beta,
		l.format,
	)

	return tensor.New[float32, B](outputRaw, l.backend)
}

// Parameters returns all trainable parameters (empty for LRN).
func (l *LRN[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (l *LRN[B]) String() string {
	return fmt.Sprintf("LRN(depth_radius=%d, bias=%v, alpha=%v, beta=%v)",
		l.params.DepthRadius, l.params.Bias, l.params.Alpha, l.params.Beta)
}
