// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/costs/internal/tensor"
)

// Float is the constraint for typed tensor elements: float32 or float64.
type Float = tensor.Float

// DataType identifies the element type of a RawTensor.
type DataType = tensor.DataType

// Supported data types.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Bool    DataType = tensor.Bool
)

// Device identifies where tensor storage lives.
type Device = tensor.Device

// CPU is the only device.
const CPU Device = tensor.CPU

// Shape is a tensor's dimensions, outermost first.
type Shape = tensor.Shape

// Tensor is a typed tensor bound to a backend.
type Tensor[T Float, B Backend] = tensor.Tensor[T, B]

// DataTypeOf returns the DataType of T.
func DataTypeOf[T Float]() DataType {
	return tensor.DataTypeOf[T]()
}

// New wraps a RawTensor. It panics if raw's dtype does not match T.
func New[T Float, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// FromSlice creates a tensor from data laid out row-major in shape.
func FromSlice[T Float, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// Zeros creates a zero-filled tensor.
func Zeros[T Float, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Full creates a tensor filled with value.
func Full[T Float, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}
