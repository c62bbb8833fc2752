// Package gonum implements the tensor backend on top of gonum dense matrices.
//
// Only float64 arithmetic is supported, and tensors may have at most two
// dimensions. A 1D tensor of length n is handled as a 1×n matrix.
package gonum

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/costs/internal/tensor"
)

// DefaultBatchSize is the minibatch width used when New is given a non-positive size.
const DefaultBatchSize = 128

// Backend implements tensor.Backend with gonum.org/v1/gonum/mat.
// It holds no mutable state and is safe for concurrent use.
type Backend struct {
	batchSize int
}

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a gonum backend with the given minibatch width.
func New(batchSize int) *Backend {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Backend{batchSize: batchSize}
}

// Name returns the backend name.
func (g *Backend) Name() string {
	return "gonum"
}

// Device returns the compute device.
func (g *Backend) Device() tensor.Device {
	return tensor.CPU
}

// BatchSize returns the configured minibatch width.
func (g *Backend) BatchSize() int {
	return g.batchSize
}

// IOBuf allocates a zeroed [rows, BatchSize()] tensor.
func (g *Backend) IOBuf(rows int, dtype tensor.DataType) *tensor.RawTensor {
	r, err := tensor.NewRaw(tensor.Shape{rows, g.batchSize}, dtype, tensor.CPU)
	if err != nil {
		panic(fmt.Sprintf("iobuf: %v", err))
	}
	return r
}

// dims maps a tensor shape onto matrix dimensions.
func dims(op string, shape tensor.Shape) (rows, cols int) {
	switch len(shape) {
	case 0:
		return 1, 1
	case 1:
		return 1, shape[0]
	case 2:
		return shape[0], shape[1]
	default:
		panic(fmt.Sprintf("%s: gonum backend supports up to 2D tensors, got %dD", op, len(shape)))
	}
}

// dense views a float64 tensor as a matrix sharing its storage.
func dense(op string, x *tensor.RawTensor) *mat.Dense {
	if x.DType() != tensor.Float64 {
		panic(fmt.Sprintf("%s: unsupported dtype %s (gonum backend supports float64 only)", op, x.DType()))
	}
	r, c := dims(op, x.Shape())
	return mat.NewDense(r, c, x.AsFloat64())
}

// values copies any-dtype tensor data into a matrix.
// Used by comparisons and argmax, which also accept int32 and bool inputs.
func values(op string, x *tensor.RawTensor) *mat.Dense {
	r, c := dims(op, x.Shape())
	return mat.NewDense(r, c, x.Float64s())
}

// wrap copies a matrix into a new float64 tensor of the given shape.
func wrap(op string, m mat.Matrix, shape tensor.Shape) *tensor.RawTensor {
	r, c := m.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		data = append(data, mat.Row(nil, i, m)...)
	}
	out, err := tensor.FromFloat64s(data, shape, tensor.Float64, tensor.CPU)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return out
}

// broadcast returns m expanded to r×c by repeating size-1 dimensions.
func broadcast(m *mat.Dense, r, c int) *mat.Dense {
	mr, mc := m.Dims()
	if mr == r && mc == c {
		return m
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(min(i, mr-1), min(j, mc-1)))
		}
	}
	return out
}

// operands broadcasts a and b to a common shape.
func operands(op string, a, b *tensor.RawTensor, load func(string, *tensor.RawTensor) *mat.Dense) (am, bm *mat.Dense, outShape tensor.Shape) {
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	r, c := dims(op, outShape)
	return broadcast(load(op, a), r, c), broadcast(load(op, b), r, c), outShape
}
