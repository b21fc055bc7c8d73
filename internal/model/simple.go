package model

import (
	"github.com/graft-ml/graft/internal/builder"
	"github.com/graft-ml/graft/internal/nn"
	"github.com/graft-ml/graft/internal/tensor"
)

// SimpleNet is a small convolutional network for classifying small
// images such as MNIST or CIFAR-10.
//
// Architecture: two 3x3 conv blocks at 64 channels, LRN, 3x3 max
// pooling, a 5x5 conv block at 128 channels, LRN, 3x3 max pooling, then
// three fully connected layers (512, 256, classes).
type SimpleNet[B tensor.Backend] struct {
	Base
}

// NewSimpleNet creates a SimpleNet configuration.
func NewSimpleNet[B tensor.Backend](batchSize, numClasses int) *SimpleNet[B] {
	return &SimpleNet[B]{
		Base: NewBase("simple", batchSize, numClasses),
	}
}

// Inference appends the SimpleNet layer sequence to b.
func (m *SimpleNet[B]) Inference(b *builder.Builder[B]) (*tensor.Tensor[float32, B], int, error) {
	if _, _, err := b.Convolution(64, 3, 3, 1, 1, "relu"); err != nil {
		return nil, 0, err
	}
	if _, _, err := b.Convolution(64, 3, 3, 1, 1, "relu"); err != nil {
		return nil, 0, err
	}
	b.Normalization(nn.DefaultLRNParams())
	b.MaxPooling(3, 3, 2, 2)
	if _, _, err := b.Convolution(128, 5, 5, 1, 1, "relu"); err != nil {
		return nil, 0, err
	}
	b.Normalization(nn.DefaultLRNParams())
	b.MaxPooling(3, 3, 2, 2)
	b.Reshape(tensor.Shape{m.BatchSize(), -1})
	if _, _, err := b.FullyConnected(512, "relu"); err != nil {
		return nil, 0, err
	}
	if _, _, err := b.FullyConnected(256, "relu"); err != nil {
		return nil, 0, err
	}

	return b.FullyConnected(m.NumClasses(), "relu")
}
