// Copyright 2025 Graft. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers for Graft.
//
// Layers implement the Module interface: a Forward pass over float32
// tensors plus access to trainable parameters. Layers are constructed
// with New* functions that panic on structurally invalid arguments;
// name-based lookups (activations, initializers) return errors instead.
package nn

import (
	"github.com/graft-ml/graft/internal/nn"
	"github.com/graft-ml/graft/internal/tensor"
)

// Module defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new fully connected layer with Xavier
// initialization.
func NewLinear[B tensor.Backend](name string, inFeatures, outFeatures int, useBias bool, backend B) *Linear[B] {
	return nn.NewLinear(name, inFeatures, outFeatures, useBias, backend)
}

// Conv2D represents a 2D convolutional layer.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer.
func NewConv2D[B tensor.Backend](
	name string,
	inChannels, outChannels int,
	kernelH, kernelW int,
	strideH, strideW int,
	padding tensor.Padding,
	format tensor.DataFormat,
	useBias bool,
	backend B,
) *Conv2D[B] {
	return nn.NewConv2D(name, inChannels, outChannels, kernelH, kernelW,
		strideH, strideW, padding, format, useBias, backend)
}

// MaxPool2D represents a 2D max pooling layer.
type MaxPool2D[B tensor.Backend] = nn.MaxPool2D[B]

// NewMaxPool2D creates a new 2D max pooling layer.
func NewMaxPool2D[B tensor.Backend](
	windowH, windowW int,
	strideH, strideW int,
	padding tensor.Padding,
	format tensor.DataFormat,
	backend B,
) *MaxPool2D[B] {
	return nn.NewMaxPool2D(windowH, windowW, strideH, strideW, padding, format, backend)
}

// LRN represents a local response normalization layer.
type LRN[B tensor.Backend] = nn.LRN[B]

// LRNParams holds local response normalization hyperparameters.
type LRNParams = nn.LRNParams

// DefaultLRNParams returns the standard LRN configuration.
func DefaultLRNParams() LRNParams {
	return nn.DefaultLRNParams()
}

// NewLRN creates a new local response normalization layer.
func NewLRN[B tensor.Backend](params LRNParams, format tensor.DataFormat, backend B) *LRN[B] {
	return nn.NewLRN(params, format, backend)
}

// Dropout represents an inverted dropout layer.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a new dropout layer.
func NewDropout[B tensor.Backend](keepProb float32, train bool, backend B) *Dropout[B] {
	return nn.NewDropout(keepProb, train, backend)
}

// Reshape represents a reshape layer. A single -1 dimension is inferred
// from the element count.
type Reshape[B tensor.Backend] = nn.Reshape[B]

// NewReshape creates a new reshape layer.
func NewReshape[B tensor.Backend](shape tensor.Shape, backend B) *Reshape[B] {
	return nn.NewReshape(shape, backend)
}

// Sequential chains modules together, applying them in order.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a sequential container from the given modules.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Activations

// Identity passes its input through unchanged.
type Identity[B tensor.Backend] = nn.Identity[B]

// NewIdentity creates a new Identity module.
func NewIdentity[B tensor.Backend]() *Identity[B] {
	return nn.NewIdentity[B]()
}

// ReLU applies the rectified linear unit element-wise.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Sigmoid applies the logistic function element-wise.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a new Sigmoid activation.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// Tanh applies the hyperbolic tangent element-wise.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a new Tanh activation.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return nn.NewTanh[B]()
}

// Softmax normalizes along a dimension into a probability distribution.
type Softmax[B tensor.Backend] = nn.Softmax[B]

// NewSoftmax creates a new Softmax activation over the given dimension.
func NewSoftmax[B tensor.Backend](dim int) *Softmax[B] {
	return nn.NewSoftmax[B](dim)
}

// ActivationByName resolves an activation module from its configuration
// name: "linear" (or ""), "relu", "sigmoid", "softmax", "tanh".
// Unknown names are an error.
func ActivationByName[B tensor.Backend](name string) (Module[B], error) {
	return nn.ActivationByName[B](name)
}

// Initializers

// Initializer fills a freshly created weight tensor of the given shape.
type Initializer[B tensor.Backend] = nn.Initializer[B]

// InitializerByName resolves an initializer from its configuration name:
// "glorot_uniform" (or "") or "zeros". Unknown names are an error.
func InitializerByName[B tensor.Backend](name string) (Initializer[B], error) {
	return nn.InitializerByName[B](name)
}
