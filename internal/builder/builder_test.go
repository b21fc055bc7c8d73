package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graft-ml/graft/internal/backend/cpu"
	"github.com/graft-ml/graft/internal/nn"
	"github.com/graft-ml/graft/internal/tensor"
)

func newBuilder(t *testing.T, batch, channels, size int, train bool, opts ...BuilderOption) *Builder[*cpu.CPUBackend] {
	t.Helper()
	backend := cpu.NewSeeded(1)
	input := tensor.Zeros[float32](tensor.Shape{batch, channels, size, size}, backend)
	return New(input, channels, train, backend, opts...)
}

func TestNew_Defaults(t *testing.T) {
	b := newBuilder(t, 2, 1, 28, false)

	assert.Equal(t, 1, b.TopChannels())
	assert.False(t, b.TrainPhase())
	assert.NotNil(t, b.Top())
	assert.Empty(t, b.Modules())
}

func TestConvolution_AdvancesCursor(t *testing.T) {
	b := newBuilder(t, 2, 1, 8, false)

	top, channels, err := b.Convolution(16, 3, 3, 1, 1, "relu")
	require.NoError(t, err)

	assert.Equal(t, 16, channels)
	assert.Equal(t, 16, b.TopChannels())
	assert.Same(t, top, b.Top())
	// SAME padding with stride 1 preserves spatial size
	assert.Equal(t, tensor.Shape{2, 16, 8, 8}, top.Shape())

	// filter + biases registered
	assert.Len(t, b.Parameters(), 2)
}

func TestConvolution_UnknownActivation(t *testing.T) {
	b := newBuilder(t, 2, 1, 8, false)

	_, _, err := b.Convolution(16, 3, 3, 1, 1, "swish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown activation")

	// Cursor must not move on failure
	assert.Equal(t, 1, b.TopChannels())
}

func TestLayerNaming_PerPrefixCounters(t *testing.T) {
	b := newBuilder(t, 2, 1, 8, false)

	_, _, err := b.Convolution(4, 3, 3, 1, 1, "relu")
	require.NoError(t, err)
	b.MaxPooling(2, 2, 2, 2)
	_, _, err = b.Convolution(8, 3, 3, 1, 1, "relu")
	require.NoError(t, err)

	// Each prefix counts independently: conv0, conv1, mpool0
	names := make([]string, 0, len(b.Parameters()))
	for _, p := range b.Parameters() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{
		"conv0.filter", "conv0.biases",
		"conv1.filter", "conv1.biases",
	}, names)
}

func TestMaxPooling(t *testing.T) {
	b := newBuilder(t, 2, 3, 8, false)

	top, channels := b.MaxPooling(2, 2, 2, 2)

	// Pooling never changes channel count
	assert.Equal(t, 3, channels)
	assert.Equal(t, tensor.Shape{2, 3, 4, 4}, top.Shape())
}

func TestNormalization(t *testing.T) {
	b := newBuilder(t, 1, 4, 4, false)

	top, channels := b.Normalization(nn.DefaultLRNParams())

	assert.Equal(t, 4, channels)
	assert.Equal(t, tensor.Shape{1, 4, 4, 4}, top.Shape())
}

func TestDropout_TrainVsInference(t *testing.T) {
	// Inference: dropout is a pass-through
	b := newBuilder(t, 1, 2, 4, false)
	before := b.Top()
	top, channels := b.Dropout(0.5)
	assert.Same(t, before, top)
	assert.Equal(t, 2, channels)

	// Training: a new tensor is produced
	b = newBuilder(t, 1, 2, 4, true)
	before = b.Top()
	top, _ = b.Dropout(0.5)
	assert.NotSame(t, before, top)
}

func TestFullyConnected(t *testing.T) {
	b := newBuilder(t, 2, 1, 4, false)

	// Flatten first: [2, 1*4*4] = [2, 16]
	_, channels := b.Reshape(tensor.Shape{2, -1})
	assert.Equal(t, 16, channels)

	top, channels, err := b.FullyConnected(10, "linear")
	require.NoError(t, err)

	assert.Equal(t, 10, channels)
	assert.Equal(t, tensor.Shape{2, 10}, top.Shape())

	names := []string{}
	for _, p := range b.Parameters() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"fc0.weights", "fc0.biases"}, names)
}

func TestFullyConnected_UnknownActivation(t *testing.T) {
	b := newBuilder(t, 2, 1, 4, false)
	b.Reshape(tensor.Shape{2, -1})

	_, _, err := b.FullyConnected(10, "gelu")
	require.Error(t, err)
}

func TestReshape_ChannelCountFromLastDim(t *testing.T) {
	b := newBuilder(t, 2, 3, 4, false)

	top, channels := b.Reshape(tensor.Shape{2, -1})

	assert.Equal(t, 48, channels)
	assert.Equal(t, tensor.Shape{2, 48}, top.Shape())
}

func TestAddLayer(t *testing.T) {
	b := newBuilder(t, 2, 1, 4, false)

	backend := b.Top().Backend()
	custom := tensor.Ones[float32](tensor.Shape{2, 7}, backend)

	top, channels := b.AddLayer(custom, 7)

	assert.Same(t, custom, top)
	assert.Equal(t, 7, channels)
	assert.Equal(t, 7, b.TopChannels())
}

func TestWithPadding_Valid(t *testing.T) {
	b := newBuilder(t, 1, 1, 8, false, WithPadding(tensor.Valid))

	top, _, err := b.Convolution(4, 3, 3, 1, 1, "relu")
	require.NoError(t, err)

	// VALID: 8 - 3 + 1 = 6
	assert.Equal(t, tensor.Shape{1, 4, 6, 6}, top.Shape())
}

func TestWithDataFormat_NHWC(t *testing.T) {
	backend := cpu.NewSeeded(1)
	input := tensor.Zeros[float32](tensor.Shape{1, 8, 8, 3}, backend)
	b := New(input, 3, false, backend, WithDataFormat(tensor.NHWC))

	top, _, err := b.Convolution(4, 3, 3, 1, 1, "relu")
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{1, 8, 8, 4}, top.Shape())
}
