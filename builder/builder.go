// Copyright 2025 Graft. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package builder provides the public API for layer-by-layer network
// construction.
//
// A Builder keeps a cursor over the network under construction (the
// current top tensor and its channel count) and advances it as layer
// methods are called:
//
//	backend := cpu.New()
//	input := tensor.Zeros[float32](tensor.Shape{32, 1, 28, 28}, backend)
//
//	b := builder.New(input, 1, false, backend)
//	b.Convolution(64, 3, 3, 1, 1, "relu")
//	b.MaxPooling(2, 2, 2, 2)
//	b.Reshape(tensor.Shape{32, -1})
//	logits, channels, err := b.FullyConnected(10, "linear")
package builder

import (
	"github.com/graft-ml/graft/internal/builder"
	"github.com/graft-ml/graft/internal/nn"
	"github.com/graft-ml/graft/internal/tensor"
)

// Builder accumulates layers into a network, tracking the current top
// tensor and its channel count between calls.
type Builder[B tensor.Backend] = builder.Builder[B]

// BuilderOption configures a Builder.
type BuilderOption = builder.BuilderOption

// WithPadding sets the padding mode applied to convolution and pooling
// layers. Defaults to Same.
func WithPadding(p tensor.Padding) BuilderOption {
	return builder.WithPadding(p)
}

// WithDataFormat sets the image data format. Defaults to NCHW.
func WithDataFormat(f tensor.DataFormat) BuilderOption {
	return builder.WithDataFormat(f)
}

// WithDataType sets the dtype used for variables created by the builder.
// Defaults to Float32.
func WithDataType(dt tensor.DataType) BuilderOption {
	return builder.WithDataType(dt)
}

// New creates a Builder positioned on the given input tensor with the
// given channel count. trainPhase selects training-mode behavior for
// layers that differ between training and inference.
func New[B tensor.Backend](
	input *tensor.Tensor[float32, B],
	numInputChannels int,
	trainPhase bool,
	backend B,
	opts ...BuilderOption,
) *Builder[B] {
	return builder.New(input, numInputChannels, trainPhase, backend, opts...)
}

// Variable creates a named trainable parameter of the given shape,
// filled by the initializer resolved from initMethod. Variables must use
// a floating point dtype.
func Variable[B tensor.Backend](
	name string,
	shape tensor.Shape,
	initMethod string,
	dtype tensor.DataType,
	backend B,
) (*nn.Parameter[B], error) {
	return builder.Variable(name, shape, initMethod, dtype, backend)
}
