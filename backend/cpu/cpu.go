// Copyright 2025 Graft. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU compute backend.
package cpu

import (
	internalcpu "github.com/graft-ml/graft/internal/backend/cpu"
	"github.com/graft-ml/graft/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of all tensor operations.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func New() *Backend {
	return internalcpu.New()
}

// NewSeeded creates a new CPU backend with a deterministic random
// number generator, for reproducible dropout and initialization.
func NewSeeded(seed int64) *Backend {
	return internalcpu.NewSeeded(seed)
}
