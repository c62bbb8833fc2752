// Package cpu implements the tensor backend in pure Go.
package cpu

import (
	"fmt"

	"github.com/born-ml/costs/internal/parallel"
	"github.com/born-ml/costs/internal/tensor"
)

// DefaultBatchSize is the minibatch width used by New.
const DefaultBatchSize = 128

// Config configures a CPU backend.
type Config struct {
	BatchSize int             // Minibatch width returned by BatchSize and used by IOBuf.
	Parallel  parallel.Config // Parallelism for element-wise loops and per-lane reductions.
}

// DefaultConfig returns a config with DefaultBatchSize and CPU-count parallelism.
func DefaultConfig() Config {
	return Config{
		BatchSize: DefaultBatchSize,
		Parallel:  parallel.DefaultConfig(),
	}
}

// CPUBackend implements tensor.Backend on the CPU.
// It holds no mutable state and is safe for concurrent use.
type CPUBackend struct {
	device    tensor.Device
	batchSize int
	par       parallel.Config
}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a CPU backend with DefaultConfig.
func New() *CPUBackend {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a CPU backend from cfg.
// A non-positive BatchSize falls back to DefaultBatchSize.
func NewWithConfig(cfg Config) *CPUBackend {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &CPUBackend{
		device:    tensor.CPU,
		batchSize: cfg.BatchSize,
		par:       cfg.Parallel,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// BatchSize returns the configured minibatch width.
func (cpu *CPUBackend) BatchSize() int {
	return cpu.batchSize
}

// IOBuf allocates a zeroed [rows, BatchSize()] tensor.
func (cpu *CPUBackend) IOBuf(rows int, dtype tensor.DataType) *tensor.RawTensor {
	return cpu.alloc("iobuf", tensor.Shape{rows, cpu.batchSize}, dtype)
}

// alloc creates a result tensor, panicking with the operation name on failure.
func (cpu *CPUBackend) alloc(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}
