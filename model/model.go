// Copyright 2025 Graft. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model provides the public API for Graft model definitions.
package model

import (
	"github.com/graft-ml/graft/internal/model"
	"github.com/graft-ml/graft/internal/tensor"
)

// Model describes a network architecture built on top of the layer
// builder.
type Model[B tensor.Backend] = model.Model[B]

// Base holds the configuration shared by all models. Concrete models
// embed Base and implement Inference.
type Base = model.Base

// NewBase creates the shared model configuration.
func NewBase(name string, batchSize, numClasses int) Base {
	return model.NewBase(name, batchSize, numClasses)
}

// SimpleNet is a small convolutional network for classifying small
// images such as MNIST or CIFAR-10.
type SimpleNet[B tensor.Backend] = model.SimpleNet[B]

// NewSimpleNet creates a SimpleNet configuration.
func NewSimpleNet[B tensor.Backend](batchSize, numClasses int) *SimpleNet[B] {
	return model.NewSimpleNet[B](batchSize, numClasses)
}
