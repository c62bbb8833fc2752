package cpu

import (
	"fmt"

	"github.com/born-ml/costs/internal/tensor"
)

// Comparison operations - return bool tensors.

// Greater returns a > b element-wise.
func (cpu *CPUBackend) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("greater", a, b, greater[float32], greater[float64], greater[int32])
}

// LowerEqual returns a <= b element-wise.
func (cpu *CPUBackend) LowerEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("lowerEqual", a, b, lowerEqual[float32], lowerEqual[float64], lowerEqual[int32])
}

// Equal returns a == b element-wise.
func (cpu *CPUBackend) Equal(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("equal", a, b, equal[float32], equal[float64], equal[int32])
}

// NotEqual returns a != b element-wise.
func (cpu *CPUBackend) NotEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("notEqual", a, b, notEqual[float32], notEqual[float64], notEqual[int32])
}

func greater[T number](x, y T) bool    { return x > y }
func lowerEqual[T number](x, y T) bool { return x <= y }
func equal[T number](x, y T) bool      { return x == y }
func notEqual[T number](x, y T) bool   { return x != y }

func (cpu *CPUBackend) compare(
	op string,
	a, b *tensor.RawTensor,
	f32 func(x, y float32) bool,
	f64 func(x, y float64) bool,
	i32 func(x, y int32) bool,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result := cpu.alloc(op, outShape, tensor.Bool)
	out := result.AsBool()

	switch a.DType() {
	case tensor.Float32:
		elementwise(out, a.AsFloat32(), b.AsFloat32(), outShape, a.Shape(), b.Shape(), f32, cpu.par)
	case tensor.Float64:
		elementwise(out, a.AsFloat64(), b.AsFloat64(), outShape, a.Shape(), b.Shape(), f64, cpu.par)
	case tensor.Int32:
		elementwise(out, a.AsInt32(), b.AsInt32(), outShape, a.Shape(), b.Shape(), i32, cpu.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}

	return result
}
