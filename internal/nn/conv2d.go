package nn

import (
	"fmt"

	"github.com/graft-ml/graft/internal/tensor"
)

// Conv2D is a 2D convolutional layer.
//
// Performs convolution: output = Conv2D(input, filter) + bias
//
// Input shape:  [batch, in_channels, height, width] (NCHW) or
// [batch, height, width, in_channels] (NHWC).
// Filter shape: [out_channels, in_channels, kernel_h, kernel_w]
// Bias shape:   [out_channels]
//
// Output spatial size depends on the padding mode:
//
//	SAME:  out = ceil(in / stride)
//	VALID: out = (in - kernel) / stride + 1
type Conv2D[B tensor.Backend] struct {
	name        string
	inChannels  int
	outChannels int
	kernelSize  [2]int
	strides     [2]int
	padding     tensor.Padding
	format      tensor.DataFormat
	useBias     bool

	filter *Parameter[B] // [out_channels, in_channels, kernel_h, kernel_w]
	bias   *Parameter[B] // [out_channels] or nil

	backend B
}

// NewConv2D creates a new 2D convolutional layer.
//
// Filters use Xavier/Glorot uniform initialization with
// fan_in = in_channels*kernel_h*kernel_w and
// fan_out = out_channels*kernel_h*kernel_w; biases start at zero.
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
	if inChannels <= 0 || outChannels <= 0 {
		panic(fmt.Sprintf("conv2d: invalid channels in=%d, out=%d", inChannels, outChannels))
	}
	if kernelH <= 0 || kernelW <= 0 {
		panic(fmt.Sprintf("conv2d: invalid kernel size h=%d, w=%d", kernelH, kernelW))
	}
	if strideH <= 0 || strideW <= 0 {
		panic(fmt.Sprintf("conv2d: invalid strides %dx%d", strideH, strideW))
	}

	filterShape := tensor.Shape{outChannels, inChannels, kernelH, kernelW}

	fanIn := inChannels * kernelH * kernelW
	fanOut := outChannels * kernelH * kernelW
	filter := Xavier(fanIn, fanOut, filterShape, backend)
	filterParam := NewParameter(name+".filter", filter)

	var biasParam *Parameter[B]
	if useBias {
		bias := Zeros(tensor.Shape{outChannels}, backend)
		biasParam = NewParameter(name+".biases", bias)
	}

	return &Conv2D[B]{
		name:        name,
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  [2]int{kernelH, kernelW},
		strides:     [2]int{strideH, strideW},
		padding:     padding,
		format:      format,
		useBias:     useBias,
		filter:      filterParam,
		bias:        biasParam,
		backend:     backend,
	}
}

// Forward performs the forward pass.
func (c *Conv2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: expected 4D input, got %dD", len(inputShape)))
	}
	if got := inputShape[c.format.ChannelAxis()]; got != c.inChannels {
		panic(fmt.Sprintf("conv2d: input channels %d != expected %d", got, c.inChannels))
	}

	outputRaw := c.backend.Conv2D(
		input.Raw(),
		c.filter.Tensor().Raw(),
		c.strides[0], c.strides[1],
		c.padding,
		c.format,
	)

	if c.useBias {
		outputRaw = c.backend.BiasAdd(outputRaw, c.bias.Tensor().Raw(), c.format)
	}

	return tensor.New[float32, B](outputRaw, c.backend)
}

// Parameters returns all trainable parameters.
func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	if c.useBias {
		return []*Parameter[B]{c.filter, c.bias}
	}
	return []*Parameter[B]{c.filter}
}

// String returns a string representation of the layer.
func (c *Conv2D[B]) String() string {
	return fmt.Sprintf("Conv2D(%s: in_channels=%d, out_channels=%d, kernel_size=(%d, %d), strides=(%d, %d), padding=%s, bias=%v)",
		c.name, c.inChannels, c.outChannels,
		c.kernelSize[0], c.kernelSize[1],
		c.strides[0], c.strides[1],
		c.padding, c.useBias)
}

// OutChannels returns the number of output channels.
func (c *Conv2D[B]) OutChannels() int {
	return c.outChannels
}

// InChannels returns the number of input channels.
func (c *Conv2D[B]) InChannels() int {
	return c.inChannels
}

// KernelSize returns the kernel size [height, width].
func (c *Conv2D[B]) KernelSize() [2]int {
	return c.kernelSize
}

// ComputeOutputSize computes output spatial dimensions for a given input size.
//
// Returns: [out_height, out_width].
func (c *Conv2D[B]) ComputeOutputSize(inputH, inputW int) [2]int {
	outH, _ := c.padding.OutputDim(inputH, c.kernelSize[0], c.strides[0])
	outW, _ := c.padding.OutputDim(inputW, c.kernelSize[1], c.strides[1])
	return [2]int{outH, outW}
}
