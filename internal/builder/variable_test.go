package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graft-ml/graft/internal/backend/cpu"
	"github.com/graft-ml/graft/internal/tensor"
)

func TestVariable_GlorotUniform(t *testing.T) {
	backend := cpu.New()

	p, err := Variable("conv0.filter", tensor.Shape{3, 3, 8, 16}, "glorot_uniform", tensor.Float32, backend)
	require.NoError(t, err)

	assert.Equal(t, "conv0.filter", p.Name())
	assert.Equal(t, tensor.Shape{3, 3, 8, 16}, p.Tensor().Shape())
}

func TestVariable_Zeros(t *testing.T) {
	backend := cpu.New()

	p, err := Variable("conv0.biases", tensor.Shape{16}, "zeros", tensor.Float32, backend)
	require.NoError(t, err)

	for _, v := range p.Tensor().Data() {
		assert.Zero(t, v)
	}
}

func TestVariable_NonFloatingDtype(t *testing.T) {
	backend := cpu.New()

	_, err := Variable("idx", tensor.Shape{4}, "zeros", tensor.Int32, backend)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floating point")
}

func TestVariable_UnknownInitializer(t *testing.T) {
	backend := cpu.New()

	_, err := Variable("w", tensor.Shape{4}, "he_normal", tensor.Float32, backend)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown initializer")
}

func TestBuilderVariable_UsesConfiguredDtype(t *testing.T) {
	b := newBuilder(t, 1, 1, 4, false, WithDataType(tensor.Int64))

	_, err := b.Variable("w", tensor.Shape{4}, "zeros")
	require.Error(t, err, "non-floating builder dtype must be rejected")
}

func TestBuilderVariable_Registers(t *testing.T) {
	b := newBuilder(t, 1, 1, 4, false)

	p, err := b.Variable("extra.weights", tensor.Shape{4, 2}, "")
	require.NoError(t, err)

	require.Len(t, b.Parameters(), 1)
	assert.Same(t, p, b.Parameters()[0])
}
