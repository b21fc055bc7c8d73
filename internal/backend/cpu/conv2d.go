package cpu

import (
	"fmt"

	"github.com/graft-ml/graft/internal/parallel"
	"github.com/graft-ml/graft/internal/tensor"
)

// floatType constrains kernels shared between the float32 and float64 paths.
type floatType interface {
	~float32 | ~float64
}

// Conv2D performs 2D convolution with zero padding.
//
// Input shape:  [N, C_in, H, W] (NCHW) or [N, H, W, C_in] (NHWC)
// Kernel shape: [C_out, C_in, K_h, K_w] regardless of data format
// Output shape: matches the input data format
//
// The padding mode determines output spatial size:
//
//	SAME:  out = ceil(in / stride), input zero-padded as needed
//	VALID: out = (in - kernel) / stride + 1, no padding
func (cpu *CPUBackend) Conv2D(
	input, kernel *tensor.RawTensor,
	strideH, strideW int,
	padding tensor.Padding,
	format tensor.DataFormat,
) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D, got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}
	if strideH <= 0 || strideW <= 0 {
		panic(fmt.Sprintf("conv2d: invalid strides %dx%d", strideH, strideW))
	}

	n := inputShape[0]
	cIn := inputShape[format.ChannelAxis()]
	h, w := format.SpatialDims(inputShape)

	cOut := kernelShape[0]
	kH := kernelShape[2]
	kW := kernelShape[3]

	if cIn != kernelShape[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", cIn, kernelShape[1]))
	}

	hOut, padTop := padding.OutputDim(h, kH, strideH)
	wOut, padLeft := padding.OutputDim(w, kW, strideW)
	if hOut <= 0 || wOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions %dx%d (kernel=%dx%d, stride=%dx%d, input=%dx%d)",
			hOut, wOut, kH, kW, strideH, strideW, h, w))
	}

	var outShape tensor.Shape
	if format == tensor.NHWC {
		outShape = tensor.Shape{n, hOut, wOut, cOut}
	} else {
		outShape = tensor.Shape{n, cOut, hOut, wOut}
	}

	output, err := tensor.NewRaw(outShape, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d: failed to create output tensor: %v", err))
	}

	args := convArgs{
		n: n, cIn: cIn, h: h, w: w,
		cOut: cOut, kH: kH, kW: kW,
		hOut: hOut, wOut: wOut,
		strideH: strideH, strideW: strideW,
		padTop: padTop, padLeft: padLeft,
		format: format,
	}

	switch input.DType() {
	case tensor.Float32:
		conv2dImpl(output.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(), args, cpu.par)
	case tensor.Float64:
		conv2dImpl(output.AsFloat64(), input.AsFloat64(), kernel.AsFloat64(), args, cpu.par)
	default:
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}

	return output
}

type convArgs struct {
	n, cIn, h, w     int
	cOut, kH, kW     int
	hOut, wOut       int
	strideH, strideW int
	padTop, padLeft  int
	format           tensor.DataFormat
}

// conv2dImpl performs direct convolution for one float type, splitting
// the batch x output-channel grid across workers. Each grid item writes
// a disjoint output plane, so the result does not depend on scheduling.
//
// Direct loops keep the asymmetric-padding and dual-layout indexing
// explicit; spatial sizes here are small (classification workloads).
func conv2dImpl[F floatType](output, input, kernel []F, a convArgs, cfg parallel.Config) {
	parallel.For2D(a.n, a.cOut, func(n, co int) {
		kernelBase := co * a.cIn * a.kH * a.kW
		for oh := 0; oh < a.hOut; oh++ {
			hStart := oh*a.strideH - a.padTop
			for ow := 0; ow < a.wOut; ow++ {
				wStart := ow*a.strideW - a.padLeft

				var sum F
				for ci := 0; ci < a.cIn; ci++ {
					kBase := kernelBase + ci*a.kH*a.kW
					for kh := 0; kh < a.kH; kh++ {
						ih := hStart + kh
						if ih < 0 || ih >= a.h {
							continue
						}
						for kw := 0; kw < a.kW; kw++ {
							iw := wStart + kw
							if iw < 0 || iw >= a.w {
								continue
							}
							sum += input[imageIndex(a.format, n, ci, ih, iw, a.cIn, a.h, a.w)] *
								kernel[kBase+kh*a.kW+kw]
						}
					}
				}
				output[imageIndex(a.format, n, co, oh, ow, a.cOut, a.hOut, a.wOut)] = sum
			}
		}
	}, cfg.WithMinChunk(1))
}

// imageIndex computes the flat index of element (n, c, h, w) in a 4D
// tensor stored in the given data format.
func imageIndex(format tensor.DataFormat, n, c, h, w, channels, height, width int) int {
	if format == tensor.NHWC {
		return ((n*height+h)*width+w)*channels + c
	}
	return ((n*channels+c)*height+h)*width + w
}
