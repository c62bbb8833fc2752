package cpu

import (
	"fmt"

	"github.com/born-ml/costs/internal/tensor"
)

// lanes describes the 1D slices of a tensor along one dimension.
// For a [classes, batch] tensor reduced along dim 0 there is one lane per
// example, with stride batch.
type lanes struct {
	outer  int // product of dimensions before dim
	size   int // length of dim
	stride int // product of dimensions after dim
}

func (cpu *CPUBackend) lanesOf(op string, shape tensor.Shape, dim int) lanes {
	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	l := lanes{outer: 1, size: shape[dim], stride: 1}
	for i := 0; i < dim; i++ {
		l.outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		l.stride *= shape[i]
	}
	return l
}

// count is the number of lanes, which is also the element count of the reduced tensor.
func (l lanes) count() int {
	return l.outer * l.stride
}

// base returns the flat index of the first element of lane.
// Lanes are numbered in the row-major order of the reduced tensor.
func (l lanes) base(lane int) int {
	o, in := lane/l.stride, lane%l.stride
	return o*l.size*l.stride + in
}
