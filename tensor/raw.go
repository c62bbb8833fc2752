// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/costs/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Typed access to storage via AsFloat32(), AsFloat64(), AsInt32(), AsBool()
//   - Row views sharing storage via Row(i), and CopyFrom for dtype-converting writes
//
// Most users should use the typed Tensor[T, B] instead. Metric output buffers
// are raw tensors.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	raw.Row(1).CopyFrom(src) // src holds 3 elements of any dtype
type RawTensor = tensor.RawTensor

// NewRaw creates a zeroed RawTensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}
