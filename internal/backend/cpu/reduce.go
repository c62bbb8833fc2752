package cpu

import (
	"fmt"

	"github.com/born-ml/costs/internal/parallel"
	"github.com/born-ml/costs/internal/tensor"
)

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	x := ... // shape [10, 128]
//	y := backend.SumDim(x, 0, true)  // shape: [1, 128]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.reduce("sumdim", x, dim, keepDim, sumLane[float32], sumLane[float64])
}

// MeanDim computes the mean of tensor elements along the specified dimension.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.reduce("meandim", x, dim, keepDim, meanLane[float32], meanLane[float64])
}

// MaxDim returns the maximum of tensor elements along the specified dimension.
func (cpu *CPUBackend) MaxDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.reduce("maxdim", x, dim, keepDim, maxLane[float32], maxLane[float64])
}

// Argmax returns the index of the maximum value along the specified dimension.
// The reduced dimension is removed. Ties resolve to the lowest index.
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	l := cpu.lanesOf("argmax", shape, dim)
	dim, _ = shape.NormalizeDim(dim)

	result := cpu.alloc("argmax", shape.Reduce(dim, false), tensor.Int32)
	out := result.AsInt32()

	switch x.DType() {
	case tensor.Float32:
		argmaxLanes(out, x.AsFloat32(), l, cpu.par)
	case tensor.Float64:
		argmaxLanes(out, x.AsFloat64(), l, cpu.par)
	case tensor.Int32:
		argmaxLanes(out, x.AsInt32(), l, cpu.par)
	default:
		panic(fmt.Sprintf("argmax: unsupported dtype %s", x.DType()))
	}

	return result
}

func (cpu *CPUBackend) reduce(
	op string,
	x *tensor.RawTensor,
	dim int,
	keepDim bool,
	f32 func(data []float32, base, n, stride int) float32,
	f64 func(data []float64, base, n, stride int) float64,
) *tensor.RawTensor {
	shape := x.Shape()
	l := cpu.lanesOf(op, shape, dim)
	dim, _ = shape.NormalizeDim(dim)

	result := cpu.alloc(op, shape.Reduce(dim, keepDim), x.DType())

	switch x.DType() {
	case tensor.Float32:
		reduceLanes(result.AsFloat32(), x.AsFloat32(), l, f32, cpu.par)
	case tensor.Float64:
		reduceLanes(result.AsFloat64(), x.AsFloat64(), l, f64, cpu.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, x.DType()))
	}

	return result
}

func reduceLanes[T float](out, data []T, l lanes, f func(data []T, base, n, stride int) T, cfg parallel.Config) {
	parallel.For(l.count(), func(lane int) {
		out[lane] = f(data, l.base(lane), l.size, l.stride)
	}, cfg)
}

func sumLane[T float](data []T, base, n, stride int) T {
	var sum T
	for i := 0; i < n; i++ {
		sum += data[base+i*stride]
	}
	return sum
}

func meanLane[T float](data []T, base, n, stride int) T {
	return sumLane(data, base, n, stride) / T(n)
}

func maxLane[T float](data []T, base, n, stride int) T {
	m := data[base]
	for i := 1; i < n; i++ {
		m = max(m, data[base+i*stride])
	}
	return m
}

func argmaxLanes[T number](out []int32, data []T, l lanes, cfg parallel.Config) {
	parallel.For(l.count(), func(lane int) {
		base := l.base(lane)
		maxVal := data[base]
		maxIdx := int32(0)
		for i := 1; i < l.size; i++ {
			if v := data[base+i*l.stride]; v > maxVal {
				maxVal = v
				//nolint:gosec // G115: dimension size < 2^31
				maxIdx = int32(i)
			}
		}
		out[lane] = maxIdx
	}, cfg)
}
