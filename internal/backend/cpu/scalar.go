package cpu

import (
	"fmt"

	"github.com/born-ml/costs/internal/parallel"
	"github.com/born-ml/costs/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("addScalar", x, scalar, add[float32], add[float64])
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("subScalar", x, scalar, sub[float32], sub[float64])
}

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("mulScalar", x, scalar, mul[float32], mul[float64])
}

// DivScalar divides each element of the tensor by a scalar value.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("divScalar", x, scalar, div[float32], div[float64])
}

// RSubScalar computes scalar - x for each element of the tensor.
func (cpu *CPUBackend) RSubScalar(scalar any, x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.scalarOp("rsubScalar", x, scalar,
		func(v, s float32) float32 { return s - v },
		func(v, s float64) float64 { return s - v },
	)
}

func (cpu *CPUBackend) scalarOp(
	op string,
	x *tensor.RawTensor,
	scalar any,
	op32 func(v, s float32) float32,
	op64 func(v, s float64) float64,
) *tensor.RawTensor {
	s := tensor.ScalarValue(op, scalar)
	result := cpu.alloc(op, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		applyScalar(result.AsFloat32(), x.AsFloat32(), float32(s), op32, cpu.par)
	case tensor.Float64:
		applyScalar(result.AsFloat64(), x.AsFloat64(), s, op64, cpu.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, x.DType()))
	}

	return result
}

func applyScalar[T float](dst, src []T, s T, op func(v, s T) T, cfg parallel.Config) {
	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = op(src[i], s)
		}
	}, cfg)
}
