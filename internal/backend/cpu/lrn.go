package cpu

import (
	"fmt"
	"math"

	"github.com/graft-ml/graft/internal/parallel"
	"github.com/graft-ml/graft/internal/tensor"
)

// LRN performs local response normalization across channels.
//
// For each element, the squared activations of the depthRadius channels
// on either side are summed and the input is divided by
// (bias + alpha*sqrSum)^beta:
//
//	out[n,c,h,w] = in[n,c,h,w] / (bias + alpha * sum(in[n,c',h,w]^2))^beta
//
// where c' ranges over [c-depthRadius, c+depthRadius] clamped to the
// channel axis. This is the normalization used between convolutional
// blocks in AlexNet-era image classifiers.
func (cpu *CPUBackend) LRN(
	input *tensor.RawTensor,
	depthRadius int,
	bias, alpha, beta float32,
	format tensor.DataFormat,
) *tensor.RawTensor {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("lrn: expected 4D input, got %dD", len(inputShape)))
	}
	if depthRadius < 0 {
		panic(fmt.Sprintf("lrn: invalid depth radius %d", depthRadius))
	}

	n := inputShape[0]
	c := inputShape[format.ChannelAxis()]
	h, w := format.SpatialDims(inputShape)

	output, err := tensor.NewRaw(inputShape, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("lrn: failed to create output: %v", err))
	}

	switch input.DType() {
	case tensor.Float32:
		lrnImpl(output.AsFloat32(), input.AsFloat32(), n, c, h, w, depthRadius, bias, alpha, beta, format, cpu.par)
	case tensor.Float64:
		lrnImpl(output.AsFloat64(), input.AsFloat64(), n, c, h, w, depthRadius,
			float64(bias), float64(alpha), float64(beta), format, cpu.par)
	default:
		panic(fmt.Sprintf("lrn: unsupported dtype %s", input.DType()))
	}

	return output
}

func lrnImpl[F floatType](output, input []F, n, channels, h, w, radius int, bias, alpha, beta F, format tensor.DataFormat, cfg parallel.Config) {
	parallel.For2D(n, h, func(bi, y int) {
		for x := 0; x < w; x++ {
			for c := 0; c < channels; c++ {
				lo := c - radius
				if lo < 0 {
					lo = 0
				}
				hi := c + radius
				if hi >= channels {
					hi = channels - 1
				}

				var sqrSum F
				for cc := lo; cc <= hi; cc++ {
					v := input[imageIndex(format, bi, cc, y, x, channels, h, w)]
					sqrSum += v * v
				}

				idx := imageIndex(format, bi, c, y, x, channels, h, w)
				denom := F(math.Pow(float64(bias+alpha*sqrSum), float64(beta)))
				output[idx] = input[idx] / denom
			}
		}
	}, cfg.WithMinChunk(1))
}
