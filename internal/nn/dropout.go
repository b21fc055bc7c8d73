package nn

import (
	"fmt"

	"github.com/graft-ml/graft/internal/tensor"
)

// Dropout is an inverted dropout layer.
//
// In training mode each element is zeroed with probability 1-keepProb and
// survivors are scaled by 1/keepProb, so the expected activation is
// unchanged. In inference mode dropout is the identity.
type Dropout[B tensor.Backend] struct {
	keepProb float32
	train    bool
	backend  B
}

// NewDropout creates a new dropout layer.
//
// keepProb is the probability of keeping each element and must be in
// (0, 1]. train selects training-mode behavior; when false, Forward is a
// no-op.
func NewDropout[B tensor.Backend](keepProb float32, train bool, backend B) *Dropout[B] {
	if keepProb <= 0 || keepProb > 1 {
		panic(fmt.Sprintf("dropout: keep probability must be in (0, 1], got %v", keepProb))
	}

	return &Dropout[B]{
		keepProb: keepProb,
		train:    train,
		backend:  backend,
	}
}

// Forward performs the forward pass.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.train || d.keepProb == 1 {
		return input
	}

	outputRaw := d.backend.Dropout(input.Raw(), d.keepProb)
	return tensor.New[float32, B](outputRaw, d.backend)
}

// Parameters returns all trainable parameters (empty for Dropout).
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// String returns a string representation of the layer.
func (d *Dropout[B]) String() string {
	return fmt.Sprintf("Dropout(keep_prob=%v, train=%v)", d.keepProb, d.train)
}
