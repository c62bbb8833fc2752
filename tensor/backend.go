// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/costs/internal/tensor"

// Backend defines the operations costs and metrics are computed with.
//
// Implementations:
//   - backend/cpu: pure Go, optionally parallel across columns
//   - backend/gonum: gonum/mat dense matrices, float64 only
//
// Binary operations broadcast NumPy-style, comparisons return Bool tensors,
// Argmax returns Int32 indices, and shape violations panic with "op: detail".
type Backend = tensor.Backend
