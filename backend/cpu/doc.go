// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for cost and metric computation.
//
// # Overview
//
// This package implements tensor.Backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support (comparisons and arg-max also take Int32)
//   - NumPy-compatible broadcasting
//   - Column-parallel loops via golang.org/x/sync/errgroup
//
// # Basic Usage
//
//	backend := cpu.NewWithConfig(cpu.Config{
//	    BatchSize: 64,
//	    Parallel:  cpu.Sequential(),
//	})
//	out := backend.IOBuf(3, tensor.Float32) // [3, 64]
package cpu
