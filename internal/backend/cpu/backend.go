// Package cpu implements the pure-Go CPU backend for the Graft framework.
package cpu

import (
	"fmt"
	"math/rand"

	"github.com/graft-ml/graft/internal/parallel"
	"github.com/graft-ml/graft/internal/tensor"
)

// CPUBackend implements tensor operations on the CPU.
type CPUBackend struct {
	device tensor.Device
	rng    *rand.Rand
	par    parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		//nolint:gosec // G404: dropout sampling, not security-critical
		rng: rand.New(rand.NewSource(rand.Int63())),
		par: parallel.DefaultConfig(),
	}
}

// NewSeeded creates a CPU backend with a deterministic dropout source.
// Useful for reproducible runs and tests. Seeded backends run kernels
// sequentially so results do not depend on goroutine scheduling.
func NewSeeded(seed int64) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		//nolint:gosec // G404: dropout sampling, not security-critical
		rng: rand.New(rand.NewSource(seed)),
		par: parallel.Sequential(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Reshape returns a tensor with the same data but different shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}

	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}

	result, err := tensor.NewRaw(newShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}

	copy(result.Data(), t.Data())
	return result
}

// Transpose transposes the tensor by permuting its dimensions.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	transposeData(result, t, axes)

	return result
}

// transposeData copies src into dst applying the axis permutation.
func transposeData(dst, src *tensor.RawTensor, axes []int) {
	srcShape := src.Shape()
	srcStrides := srcShape.ComputeStrides()
	dstShape := dst.Shape()
	ndim := len(srcShape)

	coords := make([]int, ndim)
	n := src.NumElements()

	switch src.DType() {
	case tensor.Float32:
		srcData := src.AsFloat32()
		dstData := dst.AsFloat32()
		for i := 0; i < n; i++ {
			srcIdx := 0
			for d := 0; d < ndim; d++ {
				srcIdx += coords[d] * srcStrides[axes[d]]
			}
			dstData[i] = srcData[srcIdx]
			incrementCoords(coords, dstShape)
		}
	case tensor.Float64:
		srcData := src.AsFloat64()
		dstData := dst.AsFloat64()
		for i := 0; i < n; i++ {
			srcIdx := 0
			for d := 0; d < ndim; d++ {
				srcIdx += coords[d] * srcStrides[axes[d]]
			}
			dstData[i] = srcData[srcIdx]
			incrementCoords(coords, dstShape)
		}
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", src.DType()))
	}
}

// incrementCoords advances a multi-dimensional counter in row-major order.
func incrementCoords(coords []int, shape tensor.Shape) {
	for d := len(coords) - 1; d >= 0; d-- {
		coords[d]++
		if coords[d] < shape[d] {
			return
		}
		coords[d] = 0
	}
}
