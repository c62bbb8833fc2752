// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor types that costs and metrics operate on.
//
// # Overview
//
// Tensors hold minibatches laid out as [features, batch]: axis 0 indexes
// classes or output units and axis 1 indexes examples. Per-example reductions
// run along axis 0 and produce [1, batch] rows.
//
// The package provides:
//   - Generic typed tensors (Tensor[T, B]) over float32 and float64
//   - Byte-backed RawTensor buffers with row views and dtype-converting copies
//   - The Backend capability interface implemented by backend/cpu and backend/gonum
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/costs/backend/cpu"
//	    "github.com/born-ml/costs/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    y, _ := tensor.FromSlice([]float64{0.7, 0.3}, tensor.Shape{2, 1}, backend)
//	    fmt.Println(y.Shape()) // [2 1]
//	}
//
// # Supported Data Types
//
// Typed tensors use float32 or float64 (the Float constraint). Raw tensors
// additionally carry int32 (arg-max indices) and bool (comparison masks).
package tensor
