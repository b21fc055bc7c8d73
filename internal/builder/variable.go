package builder

import (
	"fmt"

	"github.com/graft-ml/graft/internal/nn"
	"github.com/graft-ml/graft/internal/tensor"
)

// Variable creates a named trainable parameter of the given shape,
// filled by the initializer resolved from initMethod ("glorot_uniform",
// "zeros", or "" for glorot_uniform).
//
// Variables must use a floating point dtype; anything else is an error,
// as is an unknown initializer name.
func Variable[B tensor.Backend](
	name string,
	shape tensor.Shape,
	initMethod string,
	dtype tensor.DataType,
	backend B,
) (*nn.Parameter[B], error) {
	if !dtype.IsFloating() {
		return nil, fmt.Errorf("builder: variable %q must be floating point, got %s", name, dtype)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("builder: variable %q: %w", name, err)
	}

	init, err := nn.InitializerByName[B](initMethod)
	if err != nil {
		return nil, err
	}

	return nn.NewParameter(name, init(shape, backend)), nil
}

// Variable creates a named trainable parameter using the builder's
// configured dtype and registers it with the builder.
func (b *Builder[B]) Variable(name string, shape tensor.Shape, initMethod string) (*nn.Parameter[B], error) {
	param, err := Variable(name, shape, initMethod, b.dtype, b.backend)
	if err != nil {
		return nil, err
	}
	b.params = append(b.params, param)
	return param, nil
}
