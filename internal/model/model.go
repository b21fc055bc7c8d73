// Package model defines the interface for network architectures built on
// top of the layer builder, plus concrete model definitions.
package model

import (
	"fmt"

	"github.com/graft-ml/graft/internal/builder"
	"github.com/graft-ml/graft/internal/tensor"
)

// Model describes a network architecture. Inference appends the model's
// layer sequence to the given builder and returns the resulting logits
// tensor together with its channel count.
type Model[B tensor.Backend] interface {
	// Name returns the model's identifier.
	Name() string

	// BatchSize returns the batch size the model was configured for.
	BatchSize() int

	// NumClasses returns the number of output classes.
	NumClasses() int

	// Inference builds the model's layers onto b and returns the final
	// top tensor and its channel count.
	Inference(b *builder.Builder[B]) (*tensor.Tensor[float32, B], int, error)
}

// Base holds the configuration shared by all models. Concrete models
// embed Base and implement Inference.
type Base struct {
	name       string
	batchSize  int
	numClasses int
}

// NewBase creates the shared model configuration.
func NewBase(name string, batchSize, numClasses int) Base {
	if name == "" {
		panic("model: empty model name")
	}
	if batchSize <= 0 {
		panic(fmt.Sprintf("model: invalid batch size %d", batchSize))
	}
	if numClasses <= 0 {
		panic(fmt.Sprintf("model: invalid class count %d", numClasses))
	}

	return Base{
		name:       name,
		batchSize:  batchSize,
		numClasses: numClasses,
	}
}

// Name returns the model's identifier.
func (b Base) Name() string { return b.name }

// BatchSize returns the configured batch size.
func (b Base) BatchSize() int { return b.batchSize }

// NumClasses returns the number of output classes.
func (b Base) NumClasses() int { return b.numClasses }

// String returns a short description of the model configuration.
func (b Base) String() string {
	return fmt.Sprintf("%s(batch_size=%d, num_classes=%d)", b.name, b.batchSize, b.numClasses)
}
