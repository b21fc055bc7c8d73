package cpu

import (
	"fmt"

	"github.com/graft-ml/graft/internal/tensor"
)

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// binaryOp applies an element-wise binary operation with broadcasting.
func (cpu *CPUBackend) binaryOp(
	name string,
	a, b *tensor.RawTensor,
	op32 func(x, y float32) float32,
	op64 func(x, y float64) float64,
) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		if !needsBroadcast {
			dst, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
			for i := range dst {
				dst[i] = op32(x[i], y[i])
			}
		} else {
			broadcastFloat32(result, a, b, outShape, op32)
		}
	case tensor.Float64:
		if !needsBroadcast {
			dst, x, y := result.AsFloat64(), a.AsFloat64(), b.AsFloat64()
			for i := range dst {
				dst[i] = op64(x[i], y[i])
			}
		} else {
			broadcastFloat64(result, a, b, outShape, op64)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return result
}

// broadcastStrides computes the effective strides of a tensor when
// broadcast to outShape. Dimensions of size 1 get stride 0.
func broadcastStrides(s tensor.Shape, outShape tensor.Shape) []int {
	strides := s.ComputeStrides()
	out := make([]int, len(outShape))
	offset := len(outShape) - len(s)
	for i := range outShape {
		if i < offset || s[i-offset] == 1 {
			out[i] = 0
		} else {
			out[i] = strides[i-offset]
		}
	}
	return out
}

func broadcastFloat32(result, a, b *tensor.RawTensor, outShape tensor.Shape, op func(x, y float32) float32) {
	dst := result.AsFloat32()
	x := a.AsFloat32()
	y := b.AsFloat32()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)

	coords := make([]int, len(outShape))
	for i := range dst {
		aIdx, bIdx := 0, 0
		for d := range coords {
			aIdx += coords[d] * aStrides[d]
			bIdx += coords[d] * bStrides[d]
		}
		dst[i] = op(x[aIdx], y[bIdx])
		incrementCoords(coords, outShape)
	}
}

func broadcastFloat64(result, a, b *tensor.RawTensor, outShape tensor.Shape, op func(x, y float64) float64) {
	dst := result.AsFloat64()
	x := a.AsFloat64()
	y := b.AsFloat64()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)

	coords := make([]int, len(outShape))
	for i := range dst {
		aIdx, bIdx := 0, 0
		for d := range coords {
			aIdx += coords[d] * aStrides[d]
			bIdx += coords[d] * bStrides[d]
		}
		dst[i] = op(x[aIdx], y[bIdx])
		incrementCoords(coords, outShape)
	}
}
