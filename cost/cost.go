// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cost

import (
	"github.com/born-ml/costs/internal/cost"
	"github.com/born-ml/costs/tensor"
)

// Cost is a differentiable cost function.
type Cost[T tensor.Float, B tensor.Backend] = cost.Cost[T, B]

// Options selects cost parameters when building a cost by name.
type Options = cost.Options

// BinaryConfig configures CrossEntropyBinary.
type BinaryConfig = cost.BinaryConfig

// MultiConfig configures CrossEntropyMulti.
type MultiConfig = cost.MultiConfig

// Cost implementations.
type (
	CrossEntropyBinary[T tensor.Float, B tensor.Backend] = cost.CrossEntropyBinary[T, B]
	CrossEntropyMulti[T tensor.Float, B tensor.Backend]  = cost.CrossEntropyMulti[T, B]
	SumSquared[T tensor.Float, B tensor.Backend]         = cost.SumSquared[T, B]
	MeanSquared[T tensor.Float, B tensor.Backend]        = cost.MeanSquared[T, B]
)

// Registered cost names.
const (
	NameCrossEntropyBinary = cost.NameCrossEntropyBinary
	NameCrossEntropyMulti  = cost.NameCrossEntropyMulti
	NameSumSquared         = cost.NameSumSquared
	NameMeanSquared        = cost.NameMeanSquared
)

// ErrUnknownCost is returned by New for an unregistered name.
var ErrUnknownCost = cost.ErrUnknownCost

// New builds a cost by name: cross_entropy_binary, cross_entropy_multi,
// sum_squared or mean_squared.
func New[T tensor.Float, B tensor.Backend](name string, opts Options, backend B) (Cost[T, B], error) {
	return cost.New[T, B](name, opts, backend)
}

// NewCrossEntropyBinary creates binary cross-entropy.
func NewCrossEntropyBinary[T tensor.Float, B tensor.Backend](backend B, cfg BinaryConfig) *CrossEntropyBinary[T, B] {
	return cost.NewCrossEntropyBinary[T](backend, cfg)
}

// NewCrossEntropyMulti creates multi-class cross-entropy.
func NewCrossEntropyMulti[T tensor.Float, B tensor.Backend](backend B, cfg MultiConfig) *CrossEntropyMulti[T, B] {
	return cost.NewCrossEntropyMulti[T](backend, cfg)
}

// NewSumSquared creates the sum-of-squares cost.
func NewSumSquared[T tensor.Float, B tensor.Backend](backend B) *SumSquared[T, B] {
	return cost.NewSumSquared[T](backend)
}

// NewMeanSquared creates the mean-squared cost.
func NewMeanSquared[T tensor.Float, B tensor.Backend](backend B) *MeanSquared[T, B] {
	return cost.NewMeanSquared[T](backend)
}

// BatchMean returns the mean of a per-example loss over the batch.
func BatchMean[T tensor.Float, B tensor.Backend](loss *tensor.Tensor[T, B]) float64 {
	return cost.BatchMean(loss)
}
