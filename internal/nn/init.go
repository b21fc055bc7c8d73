package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/graft-ml/graft/internal/tensor"
)

// Initializer fills a freshly created weight tensor of the given shape.
type Initializer[B tensor.Backend] func(shape tensor.Shape, backend B) *tensor.Tensor[float32, B]

// InitializerByName resolves an initializer from its configuration name.
//
// Recognized names:
//   - "glorot_uniform" (also the default for an empty name)
//   - "zeros"
//
// Unknown names are an error.
func InitializerByName[B tensor.Backend](name string) (Initializer[B], error) {
	switch name {
	case "", "glorot_uniform":
		return func(shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
			fanIn, fanOut := Fans(shape)
			return Xavier(fanIn, fanOut, shape, backend)
		}, nil
	case "zeros":
		return func(shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
			return Zeros(shape, backend)
		}, nil
	default:
		return nil, fmt.Errorf("nn: unknown initializer %q", name)
	}
}

// Fans derives (fanIn, fanOut) from a weight shape.
//
// The trailing two dimensions are treated as [in, out]; any leading
// dimensions (e.g. kernel height/width) multiply into both fans. A 1D
// shape uses its single dimension for both.
func Fans(shape tensor.Shape) (fanIn, fanOut int) {
	n := len(shape)
	if n == 0 {
		return 1, 1
	}
	fanOut = shape[n-1]
	if n > 1 {
		fanIn = shape[n-2]
	} else {
		fanIn = shape[n-1]
	}
	for _, dim := range shape[:max(n-2, 0)] {
		fanIn *= dim
		fanOut *= dim
	}
	return fanIn, fanOut
}

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	// Xavier/Glorot bound: sqrt(6 / (fan_in + fan_out))
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t, err := tensor.NewRaw(shape, tensor.Float32, backend.Device())
	if err != nil {
		panic(err)
	}

	data := t.AsFloat32()
	for i := range data {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		data[i] = float32((rand.Float64()*2.0 - 1.0) * bound)
	}

	return tensor.New[float32, B](t, backend)
}

// Zeros creates a tensor filled with zeros.
//
// This is commonly used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}

// Randn creates a tensor with random values from a standard normal
// distribution.
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Randn[float32](shape, backend)
}
