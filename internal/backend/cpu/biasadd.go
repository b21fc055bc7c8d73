package cpu

import (
	"fmt"

	"github.com/graft-ml/graft/internal/tensor"
)

// BiasAdd adds a 1D bias along the channel axis of the data format.
//
// Input may be 2D [batch, features] (bias added per feature) or 4D in
// the given format (bias added per channel plane).
func (cpu *CPUBackend) BiasAdd(input, bias *tensor.RawTensor, format tensor.DataFormat) *tensor.RawTensor {
	inputShape := input.Shape()
	biasShape := bias.Shape()

	if len(biasShape) != 1 {
		panic(fmt.Sprintf("biasadd: bias must be 1D, got %dD", len(biasShape)))
	}

	var channelAxis int
	switch len(inputShape) {
	case 2:
		channelAxis = 1
	case 4:
		channelAxis = format.ChannelAxis()
	default:
		panic(fmt.Sprintf("biasadd: expected 2D or 4D input, got %dD", len(inputShape)))
	}

	if inputShape[channelAxis] != biasShape[0] {
		panic(fmt.Sprintf("biasadd: bias length %d != channel dimension %d", biasShape[0], inputShape[channelAxis]))
	}

	result, err := tensor.NewRaw(inputShape, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("biasadd: failed to create result tensor: %v", err))
	}

	// Stride of the channel axis and size of one channel step determine
	// which bias element applies to each flat index.
	strides := inputShape.ComputeStrides()
	channelStride := strides[channelAxis]
	channels := inputShape[channelAxis]

	switch input.DType() {
	case tensor.Float32:
		src := input.AsFloat32()
		b := bias.AsFloat32()
		dst := result.AsFloat32()
		for i := range src {
			dst[i] = src[i] + b[(i/channelStride)%channels]
		}
	case tensor.Float64:
		src := input.AsFloat64()
		b := bias.AsFloat64()
		dst := result.AsFloat64()
		for i := range src {
			dst[i] = src[i] + b[(i/channelStride)%channels]
		}
	default:
		panic(fmt.Sprintf("biasadd: unsupported dtype %s", input.DType()))
	}

	return result
}
