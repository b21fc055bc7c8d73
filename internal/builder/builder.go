// Package builder provides a stateful helper for assembling convolutional
// networks layer by layer.
//
// A Builder keeps a cursor over the network under construction: the
// current top tensor and its channel count. Each layer method appends a
// layer, runs it against the current top, advances the cursor, and
// returns the new top tensor together with its channel count so call
// sites can interleave hand-built layers via AddLayer.
package builder

import (
	"fmt"

	"github.com/graft-ml/graft/internal/nn"
	"github.com/graft-ml/graft/internal/tensor"
)

// Builder accumulates layers into a network, tracking the current top
// tensor and its channel count between calls.
//
// Builder is not safe for concurrent use.
type Builder[B tensor.Backend] struct {
	top         *tensor.Tensor[float32, B]
	topChannels int
	trainPhase  bool
	padding     tensor.Padding
	format      tensor.DataFormat
	dtype       tensor.DataType

	// layerCounts tracks how many layers of each prefix have been
	// created, so generated names are unique ("conv0", "conv1", ...).
	layerCounts map[string]int

	modules []nn.Module[B]
	params  []*nn.Parameter[B]

	backend B
}

// BuilderOption configures a Builder.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	padding tensor.Padding
	format  tensor.DataFormat
	dtype   tensor.DataType
}

// WithPadding sets the padding mode applied to convolution and pooling
// layers. Defaults to Same.
func WithPadding(p tensor.Padding) BuilderOption {
	return func(o *builderOptions) {
		o.padding = p
	}
}

// WithDataFormat sets the image data format. Defaults to NCHW.
func WithDataFormat(f tensor.DataFormat) BuilderOption {
	return func(o *builderOptions) {
		o.format = f
	}
}

// WithDataType sets the dtype used for variables created by the builder.
// Defaults to Float32.
func WithDataType(dt tensor.DataType) BuilderOption {
	return func(o *builderOptions) {
		o.dtype = dt
	}
}

// New creates a Builder positioned on the given input tensor.
//
// numInputChannels is the channel count of the input. trainPhase selects
// training-mode behavior for layers that differ between training and
// inference (currently dropout).
func New[B tensor.Backend](
	input *tensor.Tensor[float32, B],
	numInputChannels int,
	trainPhase bool,
	backend B,
	opts ...BuilderOption,
) *Builder[B] {
	if input == nil {
		panic("builder: nil input tensor")
	}
	if numInputChannels <= 0 {
		panic(fmt.Sprintf("builder: invalid input channel count %d", numInputChannels))
	}

	options := &builderOptions{
		padding: tensor.Same,
		format:  tensor.NCHW,
		dtype:   tensor.Float32,
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Builder[B]{
		top:         input,
		topChannels: numInputChannels,
		trainPhase:  trainPhase,
		padding:     options.padding,
		format:      options.format,
		dtype:       options.dtype,
		layerCounts: make(map[string]int),
		backend:     backend,
	}
}

// getName builds a unique layer name from a prefix and advances the
// per-prefix counter.
func (b *Builder[B]) getName(prefix string) string {
	name := fmt.Sprintf("%s%d", prefix, b.layerCounts[prefix])
	b.layerCounts[prefix]++
	return name
}

// advance moves the cursor to a new top tensor and channel count.
func (b *Builder[B]) advance(top *tensor.Tensor[float32, B], channels int) (*tensor.Tensor[float32, B], int) {
	b.top = top
	b.topChannels = channels
	return b.top, b.topChannels
}

// Top returns the current top tensor.
func (b *Builder[B]) Top() *tensor.Tensor[float32, B] { return b.top }

// TopChannels returns the channel count of the current top tensor.
func (b *Builder[B]) TopChannels() int { return b.topChannels }

// TrainPhase reports whether the builder is in training mode.
func (b *Builder[B]) TrainPhase() bool { return b.trainPhase }

// Modules returns the layers appended so far, in order.
func (b *Builder[B]) Modules() []nn.Module[B] { return b.modules }

// Parameters returns the trainable parameters of all layers appended so
// far, in order of creation.
func (b *Builder[B]) Parameters() []*nn.Parameter[B] { return b.params }

// AddLayer records an externally constructed layer output as the new top
// of the network.
//
// Layers built outside the Builder must be registered through AddLayer
// so the cursor stays consistent with the tensors actually produced.
func (b *Builder[B]) AddLayer(layer *tensor.Tensor[float32, B], numChannels int) (*tensor.Tensor[float32, B], int) {
	if layer == nil {
		panic("builder: nil layer tensor")
	}
	if numChannels <= 0 {
		panic(fmt.Sprintf("builder: invalid layer channel count %d", numChannels))
	}
	return b.advance(layer, numChannels)
}

// Convolution appends a 2D convolution with bias and activation.
//
// The filter spans filterHeight x filterWidth over the current channel
// count and produces numOutChannels feature maps. activationMethod is
// resolved by name ("relu", "sigmoid", "softmax", "tanh", or "linear" /
// "" for none); an unknown name is an error.
func (b *Builder[B]) Convolution(
	numOutChannels int,
	filterHeight, filterWidth int,
	verticalStride, horizontalStride int,
	activationMethod string,
) (*tensor.Tensor[float32, B], int, error) {
	name := b.getName("conv")

	activation, err := nn.ActivationByName[B](activationMethod)
	if err != nil {
		return nil, 0, err
	}

	conv := nn.NewConv2D(
		name,
		b.topChannels, numOutChannels,
		filterHeight, filterWidth,
		verticalStride, horizontalStride,
		b.padding, b.format,
		true,
		b.backend,
	)

	output := activation.Forward(conv.Forward(b.top))

	b.modules = append(b.modules, conv)
	b.params = append(b.params, conv.Parameters()...)

	top, channels := b.advance(output, numOutChannels)
	return top, channels, nil
}

// MaxPooling appends a maximum pooling layer.
func (b *Builder[B]) MaxPooling(
	poolHeight, poolWidth int,
	verticalStride, horizontalStride int,
) (*tensor.Tensor[float32, B], int) {
	_ = b.getName("mpool")

	pool := nn.NewMaxPool2D(
		poolHeight, poolWidth,
		verticalStride, horizontalStride,
		b.padding, b.format,
		b.backend,
	)

	output := pool.Forward(b.top)
	b.modules = append(b.modules, pool)

	top, channels := b.advance(output, b.topChannels)
	return top, channels
}

// Normalization appends a local response normalization layer with the
// given parameters. Pass nn.DefaultLRNParams() for the standard
// configuration.
func (b *Builder[B]) Normalization(params nn.LRNParams) (*tensor.Tensor[float32, B], int) {
	_ = b.getName("norm")

	norm := nn.NewLRN(params, b.format, b.backend)

	output := norm.Forward(b.top)
	b.modules = append(b.modules, norm)

	top, channels := b.advance(output, b.topChannels)
	return top, channels
}

// Dropout appends a dropout layer. The layer only has an effect in the
// training phase; in inference the top passes through unchanged.
func (b *Builder[B]) Dropout(keepProb float32) (*tensor.Tensor[float32, B], int) {
	_ = b.getName("dropout")

	drop := nn.NewDropout(keepProb, b.trainPhase, b.backend)

	output := drop.Forward(b.top)
	b.modules = append(b.modules, drop)

	top, channels := b.advance(output, b.topChannels)
	return top, channels
}

// FullyConnected appends a dense layer with bias and activation.
//
// The current top must be 2D [batch, features] with features equal to
// the current channel count; use Reshape to flatten convolutional
// outputs first. activationMethod follows the same lookup rules as
// Convolution.
func (b *Builder[B]) FullyConnected(
	numOutChannels int,
	activationMethod string,
) (*tensor.Tensor[float32, B], int, error) {
	name := b.getName("fc")

	activation, err := nn.ActivationByName[B](activationMethod)
	if err != nil {
		return nil, 0, err
	}

	fc := nn.NewLinear(name, b.topChannels, numOutChannels, true, b.backend)

	output := activation.Forward(fc.Forward(b.top))

	b.modules = append(b.modules, fc)
	b.params = append(b.params, fc.Parameters()...)

	top, channels := b.advance(output, numOutChannels)
	return top, channels, nil
}

// Reshape changes the shape of the current top tensor. A single -1
// dimension is inferred from the element count. The new channel count is
// taken from the last dimension of the resolved shape.
func (b *Builder[B]) Reshape(shape tensor.Shape) (*tensor.Tensor[float32, B], int) {
	_ = b.getName("reshape")

	reshape := nn.NewReshape(shape, b.backend)

	output := reshape.Forward(b.top)
	b.modules = append(b.modules, reshape)

	outShape := output.Shape()
	top, channels := b.advance(output, outShape[len(outShape)-1])
	return top, channels
}
