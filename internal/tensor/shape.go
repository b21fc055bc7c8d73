package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// ResolveWildcard resolves a shape containing at most one -1 dimension
// against a known element count. The -1 dimension is inferred so that the
// resolved shape has exactly numElements elements.
//
// Example:
//
//	Shape{32, -1}.ResolveWildcard(32 * 256) // Shape{32, 256}
func (s Shape) ResolveWildcard(numElements int) (Shape, error) {
	wildcard := -1
	known := 1
	for i, dim := range s {
		switch {
		case dim == -1:
			if wildcard >= 0 {
				return nil, fmt.Errorf("shape %v has more than one -1 dimension", s)
			}
			wildcard = i
		case dim > 0:
			known *= dim
		default:
			return nil, fmt.Errorf("invalid dimension at index %d: %d", i, dim)
		}
	}

	resolved := s.Clone()
	if wildcard < 0 {
		if known != numElements {
			return nil, fmt.Errorf("shape %v requires %d elements, have %d", s, known, numElements)
		}
		return resolved, nil
	}

	if known == 0 || numElements%known != 0 {
		return nil, fmt.Errorf("cannot infer -1 in shape %v for %d elements", s, numElements)
	}
	resolved[wildcard] = numElements / known
	return resolved, nil
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Shapes are compared element-wise from right to left; dimensions are
// compatible when they are equal or one of them is 1. Missing dimensions
// are treated as 1.
//
// Returns the broadcasted shape, a flag indicating if broadcasting is
// needed, and an error if the shapes are incompatible.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	needsBroadcast := false

	for i := 0; i < maxLen; i++ {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i

		aDim := 1
		if aIdx >= 0 {
			aDim = a[aIdx]
		}

		bDim := 1
		if bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
			needsBroadcast = true
		case bDim == 1:
			result[maxLen-1-i] = aDim
			needsBroadcast = true
		default:
			return nil, false, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, needsBroadcast, nil
}
