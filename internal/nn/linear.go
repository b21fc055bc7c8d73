package nn

import (
	"fmt"

	"github.com/graft-ml/graft/internal/tensor"
)

// Linear is a fully connected (dense) layer.
//
// Applies a linear transformation: y = x @ W + b where W has shape
// [in_features, out_features] and b has shape [out_features].
type Linear[B tensor.Backend] struct {
	name        string
	inFeatures  int
	outFeatures int
	useBias     bool

	weight *Parameter[B]
	bias   *Parameter[B]

	backend B
}

// NewLinear creates a new fully connected layer.
//
// Weights are initialized with Xavier uniform and biases with zeros.
func NewLinear[B tensor.Backend](name string, inFeatures, outFeatures int, useBias bool, backend B) *Linear[B] {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("linear: invalid dimensions in=%d out=%d", inFeatures, outFeatures))
	}

	weight := Xavier[B](inFeatures, outFeatures, tensor.Shape{inFeatures, outFeatures}, backend)

	l := &Linear[B]{
		name:        name,
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		useBias:     useBias,
		weight:      NewParameter(name+".weights", weight),
		backend:     backend,
	}

	if useBias {
		bias := Zeros[B](tensor.Shape{outFeatures}, backend)
		l.bias = NewParameter(name+".biases", bias)
	}

	return l
}

// Forward performs the forward pass.
//
// Input shape: [batch, in_features]. Output shape: [batch, out_features].
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("linear: expected 2D input, got %dD", len(inputShape)))
	}
	if inputShape[1] != l.inFeatures {
		panic(fmt.Sprintf("linear: expected %d input features, got %d", l.inFeatures, inputShape[1]))
	}

	output := input.MatMul(l.weight.Tensor())

	if l.useBias {
		outputRaw := l.backend.BiasAdd(output.Raw(), l.bias.Tensor().Raw(), tensor.NCHW)
		output = tensor.New[float32, B](outputRaw, l.backend)
	}

	return output
}

// Parameters returns all trainable parameters.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	params := []*Parameter[B]{l.weight}
	if l.useBias {
		params = append(params, l.bias)
	}
	return params
}

// String returns a string representation of the layer.
func (l *Linear[B]) String() string {
	return fmt.Sprintf("Linear(in=%d, out=%d, bias=%v)", l.inFeatures, l.outFeatures, l.useBias)
}

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int { return l.outFeatures }

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int { return l.inFeatures }
