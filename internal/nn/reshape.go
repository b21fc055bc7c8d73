package nn

import (
	"fmt"

	"github.com/graft-ml/graft/internal/tensor"
)

// Reshape is a layer that changes the tensor view without copying
// semantics. A single dimension may be -1, in which case it is inferred
// from the element count.
type Reshape[B tensor.Backend] struct {
	shape   tensor.Shape
	backend B
}

// NewReshape creates a new reshape layer.
func NewReshape[B tensor.Backend](shape tensor.Shape, backend B) *Reshape[B] {
	if len(shape) == 0 {
		panic("reshape: empty target shape")
	}

	wildcards := 0
	for _, dim := range shape {
		if dim == -1 {
			wildcards++
		} else if dim <= 0 {
			panic(fmt.Sprintf("reshape: invalid dimension %d in %v", dim, shape))
		}
	}
	if wildcards > 1 {
		panic(fmt.Sprintf("reshape: at most one -1 dimension allowed, got %v", shape))
	}

	return &Reshape[B]{
		shape:   shape.Clone(),
		backend: backend,
	}
}

// Forward performs the forward pass.
func (r *Reshape[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	resolved, err := r.shape.ResolveWildcard(input.NumElements())
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return input.Reshape(resolved...)
}

// Parameters returns all trainable parameters (empty for Reshape).
func (r *Reshape[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (r *Reshape[B]) String() string {
	return fmt.Sprintf("Reshape(shape=%v)", r.shape)
}
