package cpu

import (
	"fmt"
	"math"

	"github.com/graft-ml/graft/internal/parallel"
	"github.com/graft-ml/graft/internal/tensor"
)

// MaxPool2D performs 2D max pooling over a rectangular window.
//
// Input shape:  [N, C, H, W] (NCHW) or [N, H, W, C] (NHWC)
// Output shape: matches the input data format
//
// With SAME padding, out-of-bounds window positions are ignored (they
// never win the max), so padding does not leak zeros into the output.
func (cpu *CPUBackend) MaxPool2D(
	input *tensor.RawTensor,
	windowH, windowW, strideH, strideW int,
	padding tensor.Padding,
	format tensor.DataFormat,
) *tensor.RawTensor {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("maxpool2d: expected 4D input, got %dD", len(inputShape)))
	}

	if windowH <= 0 || windowW <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid window size %dx%d", windowH, windowW))
	}
	if strideH <= 0 || strideW <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid strides %dx%d", strideH, strideW))
	}

	n := inputShape[0]
	c := inputShape[format.ChannelAxis()]
	h, w := format.SpatialDims(inputShape)

	if padding == tensor.Valid && (windowH > h || windowW > w) {
		panic(fmt.Sprintf("maxpool2d: window %dx%d too large for input %dx%d", windowH, windowW, h, w))
	}

	hOut, padTop := padding.OutputDim(h, windowH, strideH)
	wOut, padLeft := padding.OutputDim(w, windowW, strideW)
	if hOut <= 0 || wOut <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid output dimensions %dx%d (window=%dx%d, stride=%dx%d, input=%dx%d)",
			hOut, wOut, windowH, windowW, strideH, strideW, h, w))
	}

	var outShape tensor.Shape
	if format == tensor.NHWC {
		outShape = tensor.Shape{n, hOut, wOut, c}
	} else {
		outShape = tensor.Shape{n, c, hOut, wOut}
	}

	output, err := tensor.NewRaw(outShape, input.DType(), cpu.Device())
	if err != nil {
		panic(fmt.Sprintf("maxpool2d: failed to create output: %v", err))
	}

	args := poolArgs{
		n: n, c: c, h: h, w: w,
		windowH: windowH, windowW: windowW,
		strideH: strideH, strideW: strideW,
		padTop: padTop, padLeft: padLeft,
		hOut: hOut, wOut: wOut,
		format: format,
	}

	switch input.DType() {
	case tensor.Float32:
		maxpool2dImpl(output.AsFloat32(), input.AsFloat32(), args, float32(math.Inf(-1)), cpu.par)
	case tensor.Float64:
		maxpool2dImpl(output.AsFloat64(), input.AsFloat64(), args, math.Inf(-1), cpu.par)
	default:
		panic(fmt.Sprintf("maxpool2d: unsupported dtype %s", input.DType()))
	}

	return output
}

type poolArgs struct {
	n, c, h, w       int
	windowH, windowW int
	strideH, strideW int
	padTop, padLeft  int
	hOut, wOut       int
	format           tensor.DataFormat
}

func maxpool2dImpl[F floatType](output, input []F, a poolArgs, negInf F, cfg parallel.Config) {
	parallel.For2D(a.n, a.c, func(n, c int) {
		for oh := 0; oh < a.hOut; oh++ {
			hStart := oh*a.strideH - a.padTop
			for ow := 0; ow < a.wOut; ow++ {
				wStart := ow*a.strideW - a.padLeft

				maxVal := negInf
				for kh := 0; kh < a.windowH; kh++ {
					ih := hStart + kh
					if ih < 0 || ih >= a.h {
						continue
					}
					for kw := 0; kw < a.windowW; kw++ {
						iw := wStart + kw
						if iw < 0 || iw >= a.w {
							continue
						}
						val := input[imageIndex(a.format, n, c, ih, iw, a.c, a.h, a.w)]
						if val > maxVal {
							maxVal = val
						}
					}
				}
				output[imageIndex(a.format, n, c, oh, ow, a.c, a.hOut, a.wOut)] = maxVal
			}
		}
	}, cfg.WithMinChunk(1))
}
