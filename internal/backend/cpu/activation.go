package cpu

import (
	"fmt"
	"math"

	"github.com/graft-ml/graft/internal/tensor"
)

// ReLU applies the rectified linear unit element-wise: f(x) = max(0, x).
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryOp("relu", x,
		func(v float32) float32 {
			if v < 0 {
				return 0
			}
			return v
		},
		func(v float64) float64 {
			if v < 0 {
				return 0
			}
			return v
		})
}

// Sigmoid applies the logistic function element-wise: f(x) = 1/(1+exp(-x)).
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryOp("sigmoid", x,
		func(v float32) float32 { return float32(1 / (1 + math.Exp(float64(-v)))) },
		func(v float64) float64 { return 1 / (1 + math.Exp(-v)) })
}

// Tanh applies the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryOp("tanh", x,
		func(v float32) float32 { return float32(math.Tanh(float64(v))) },
		func(v float64) float64 { return math.Tanh(v) })
}

func (cpu *CPUBackend) unaryOp(
	name string,
	x *tensor.RawTensor,
	op32 func(v float32) float32,
	op64 func(v float64) float64,
) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i := range src {
			dst[i] = op32(src[i])
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i := range src {
			dst[i] = op64(src[i])
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}

	return result
}

// Softmax computes softmax along the specified dimension.
// Softmax(x_i) = exp(x_i) / sum(exp(x_j)) for all j in dimension.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	// Normalize dimension
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("softmax: dimension %d out of range for tensor of rank %d", dim, ndim))
	}

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("softmax: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		softmaxImpl(result.AsFloat32(), x.AsFloat32(), shape, dim)
	case tensor.Float64:
		softmaxImpl(result.AsFloat64(), x.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("softmax: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

func softmaxImpl[F floatType](dst, src []F, shape tensor.Shape, dim int) {
	strides := shape.ComputeStrides()
	dimSize := shape[dim]
	dimStride := strides[dim]

	// Number of "rows" (groups of elements that share one softmax)
	numRows := 1
	for i := range shape {
		if i != dim {
			numRows *= shape[i]
		}
	}

	for row := 0; row < numRows; row++ {
		// Compute base index for this row
		baseIdx := 0
		remaining := row
		for i := 0; i < len(shape); i++ {
			if i == dim {
				continue
			}
			coord := remaining % shape[i]
			remaining /= shape[i]
			baseIdx += coord * strides[i]
		}

		// Find max for numerical stability
		maxVal := src[baseIdx]
		for i := 1; i < dimSize; i++ {
			idx := baseIdx + i*dimStride
			if src[idx] > maxVal {
				maxVal = src[idx]
			}
		}

		// Compute exp(x - max) and sum
		var sum F
		for i := 0; i < dimSize; i++ {
			idx := baseIdx + i*dimStride
			expVal := F(math.Exp(float64(src[idx] - maxVal)))
			dst[idx] = expVal
			sum += expVal
		}

		// Normalize
		for i := 0; i < dimSize; i++ {
			idx := baseIdx + i*dimStride
			dst[idx] /= sum
		}
	}
}
