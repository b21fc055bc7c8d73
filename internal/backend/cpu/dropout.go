package cpu

import (
	"fmt"

	"github.com/graft-ml/graft/internal/tensor"
)

// Dropout keeps each element with probability keepProb and scales kept
// elements by 1/keepProb (inverted dropout). With keepProb == 1 the
// result is a plain copy of the input.
func (cpu *CPUBackend) Dropout(input *tensor.RawTensor, keepProb float32) *tensor.RawTensor {
	if keepProb <= 0 || keepProb > 1 {
		panic(fmt.Sprintf("dropout: keep probability must be in (0, 1], got %g", keepProb))
	}

	result, err := tensor.NewRaw(input.Shape(), input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("dropout: failed to create result tensor: %v", err))
	}

	if keepProb == 1 {
		copy(result.Data(), input.Data())
		return result
	}

	switch input.DType() {
	case tensor.Float32:
		src := input.AsFloat32()
		dst := result.AsFloat32()
		scale := 1 / keepProb
		for i := range src {
			if cpu.rng.Float32() < keepProb {
				dst[i] = src[i] * scale
			}
		}
	case tensor.Float64:
		src := input.AsFloat64()
		dst := result.AsFloat64()
		scale := 1 / float64(keepProb)
		for i := range src {
			if cpu.rng.Float64() < float64(keepProb) {
				dst[i] = src[i] * scale
			}
		}
	default:
		panic(fmt.Sprintf("dropout: unsupported dtype %s", input.DType()))
	}

	return result
}
