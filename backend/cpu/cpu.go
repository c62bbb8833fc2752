// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/costs/internal/backend/cpu"
	"github.com/born-ml/costs/internal/parallel"
	"github.com/born-ml/costs/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend is pure Go. Element-wise loops and per-column reductions
// are split across goroutines once a tensor is large enough.
type Backend = internalcpu.CPUBackend

// Config configures batch size and parallelism.
type Config = internalcpu.Config

// ParallelConfig controls how work is split across goroutines.
type ParallelConfig = parallel.Config

// DefaultBatchSize is the minibatch width used by New.
const DefaultBatchSize = internalcpu.DefaultBatchSize

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend with the default batch size and CPU-count parallelism.
//
// Example:
//
//	import (
//	    "github.com/born-ml/costs/backend/cpu"
//	    "github.com/born-ml/costs/cost"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    ce := cost.NewCrossEntropyMulti[float32](backend, cost.MultiConfig{})
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend from cfg.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return internalcpu.DefaultConfig()
}

// Sequential returns a parallel config that keeps all work on the calling goroutine.
func Sequential() ParallelConfig {
	return parallel.Sequential()
}
