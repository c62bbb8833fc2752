// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gonum provides a tensor backend built on gonum dense matrices.
//
// It supports float64 tensors of at most two dimensions, which covers every
// cost and metric in this module. Float32 input panics.
package gonum

import (
	internalgonum "github.com/born-ml/costs/internal/backend/gonum"
	"github.com/born-ml/costs/tensor"
)

// Backend is the gonum-backed implementation of tensor.Backend.
type Backend = internalgonum.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a gonum backend with the given minibatch width.
// A non-positive batchSize selects the default of 128.
func New(batchSize int) *Backend {
	return internalgonum.New(batchSize)
}
