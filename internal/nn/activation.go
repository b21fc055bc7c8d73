package nn

import (
	"fmt"

	"github.com/graft-ml/graft/internal/tensor"
)

// ReLUBackend is an interface for backends that support ReLU activation.
type ReLUBackend interface {
	ReLU(*tensor.RawTensor) *tensor.RawTensor
}

// SigmoidBackend is an interface for backends that support Sigmoid activation.
type SigmoidBackend interface {
	Sigmoid(*tensor.RawTensor) *tensor.RawTensor
}

// TanhBackend is an interface for backends that support Tanh activation.
type TanhBackend interface {
	Tanh(*tensor.RawTensor) *tensor.RawTensor
}

// ActivationByName resolves an activation module from its configuration
// name.
//
// Recognized names: "linear" (also the default for an empty name),
// "relu", "sigmoid", "softmax", "tanh". Unknown names are an error.
func ActivationByName[B tensor.Backend](name string) (Module[B], error) {
	switch name {
	case "", "linear":
		return NewIdentity[B](), nil
	case "relu":
		return NewReLU[B](), nil
	case "sigmoid":
		return NewSigmoid[B](), nil
	case "softmax":
		return NewSoftmax[B](-1), nil
	case "tanh":
		return NewTanh[B](), nil
	default:
		return nil, fmt.Errorf("nn: unknown activation %q", name)
	}
}

// Identity passes its input through unchanged. It stands in for a
// "linear" activation so call sites can treat every activation uniformly.
type Identity[B tensor.Backend] struct{}

// NewIdentity creates a new Identity module.
func NewIdentity[B tensor.Backend]() *Identity[B] {
	return &Identity[B]{}
}

// Forward returns the input unchanged.
func (id *Identity[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input
}

// Parameters returns an empty slice (Identity has no trainable parameters).
func (id *Identity[B]) Parameters() []*Parameter[B] {
	return nil
}

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()

	if reluBackend, ok := any(backend).(ReLUBackend); ok {
		resultRaw := reluBackend.ReLU(input.Raw())
		return tensor.New[float32, B](resultRaw, backend)
	}

	panic("ReLU: backend must implement the ReLU operation")
}

// Parameters returns an empty slice (ReLU has no trainable parameters).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// Sigmoid is a sigmoid activation module.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies Sigmoid activation: σ(x) = 1 / (1 + exp(-x)).
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()

	if sigmoidBackend, ok := any(backend).(SigmoidBackend); ok {
		resultRaw := sigmoidBackend.Sigmoid(input.Raw())
		return tensor.New[float32, B](resultRaw, backend)
	}

	panic("Sigmoid: backend must implement the Sigmoid operation")
}

// Parameters returns an empty slice (Sigmoid has no trainable parameters).
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return nil
}

// Softmax normalizes activations to a probability distribution along a
// dimension (the last dimension by default).
type Softmax[B tensor.Backend] struct {
	dim int
}

// NewSoftmax creates a new Softmax activation module along dim.
func NewSoftmax[B tensor.Backend](dim int) *Softmax[B] {
	return &Softmax[B]{dim: dim}
}

// Forward applies softmax along the configured dimension.
func (s *Softmax[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.Softmax(s.dim)
}

// Parameters returns an empty slice (Softmax has no trainable parameters).
func (s *Softmax[B]) Parameters() []*Parameter[B] {
	return nil
}

// Tanh is a hyperbolic tangent activation module.
//
// Tanh squashes values to the range (-1, 1), making it zero-centered
// which can help with training.
type Tanh[B tensor.Backend] struct{}

// NewTanh creates a new Tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return &Tanh[B]{}
}

// Forward applies Tanh activation.
func (t *Tanh[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()

	if tanhBackend, ok := any(backend).(TanhBackend); ok {
		resultRaw := tanhBackend.Tanh(input.Raw())
		return tensor.New[float32, B](resultRaw, backend)
	}

	panic("Tanh: backend must implement the Tanh operation")
}

// Parameters returns an empty slice (Tanh has no trainable parameters).
func (t *Tanh[B]) Parameters() []*Parameter[B] {
	return nil
}
