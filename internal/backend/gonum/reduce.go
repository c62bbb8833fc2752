package gonum

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/costs/internal/tensor"
)

// axis maps a tensor dimension onto a matrix axis (0 = rows, 1 = columns).
// The single dimension of a 1D tensor is the column axis of its 1×n matrix.
func axis(shape tensor.Shape, op string, dim int) int {
	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	if len(shape) == 1 {
		return 1
	}
	return dim
}

// SumDim sums tensor elements along the specified dimension.
func (g *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return reduce("sumdim", x, dim, keepDim, dense, floats.Sum)
}

// MeanDim computes the mean of tensor elements along the specified dimension.
func (g *Backend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return reduce("meandim", x, dim, keepDim, dense, func(v []float64) float64 {
		return floats.Sum(v) / float64(len(v))
	})
}

// MaxDim returns the maximum of tensor elements along the specified dimension.
func (g *Backend) MaxDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return reduce("maxdim", x, dim, keepDim, dense, floats.Max)
}

// Argmax returns the index of the maximum value along the specified dimension.
// Ties resolve to the lowest index.
func (g *Backend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	idx := reduce("argmax", x, dim, false, values, func(v []float64) float64 {
		return float64(floats.MaxIdx(v))
	})
	return g.Cast(idx, tensor.Int32)
}

func reduce(
	op string,
	x *tensor.RawTensor,
	dim int,
	keepDim bool,
	load func(string, *tensor.RawTensor) *mat.Dense,
	f func([]float64) float64,
) *tensor.RawTensor {
	shape := x.Shape()
	ax := axis(shape, op, dim)
	dim, _ = shape.NormalizeDim(dim)

	m := load(op, x)
	r, c := m.Dims()

	var out []float64
	if ax == 0 {
		out = make([]float64, c)
		for j := range out {
			out[j] = f(mat.Col(nil, j, m))
		}
	} else {
		out = make([]float64, r)
		for i := range out {
			out[i] = f(mat.Row(nil, i, m))
		}
	}

	result, err := tensor.FromFloat64s(out, shape.Reduce(dim, keepDim), tensor.Float64, tensor.CPU)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return result
}
