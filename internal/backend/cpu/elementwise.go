package cpu

import (
	"fmt"

	"github.com/born-ml/costs/internal/parallel"
	"github.com/born-ml/costs/internal/tensor"
)

type float interface {
	~float32 | ~float64
}

type number interface {
	~float32 | ~float64 | ~int32
}

func add[T float](x, y T) T { return x + y }
func sub[T float](x, y T) T { return x - y }
func mul[T float](x, y T) T { return x * y }
func div[T float](x, y T) T { return x / y }

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, add[float32], add[float64])
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, sub[float32], sub[float64])
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, mul[float32], mul[float64])
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE-754 (±Inf or NaN).
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, div[float32], div[float64])
}

func (cpu *CPUBackend) binary(
	op string,
	a, b *tensor.RawTensor,
	op32 func(x, y float32) float32,
	op64 func(x, y float64) float64,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result := cpu.alloc(op, outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		elementwise(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), outShape, a.Shape(), b.Shape(), op32, cpu.par)
	case tensor.Float64:
		elementwise(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), outShape, a.Shape(), b.Shape(), op64, cpu.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, a.DType()))
	}

	return result
}

// elementwise writes op(a, b) into out, broadcasting a and b to outShape.
func elementwise[T, R any](
	out []R, a, b []T,
	outShape, aShape, bShape tensor.Shape,
	op func(x, y T) R,
	cfg parallel.Config,
) {
	if aShape.Equal(outShape) && bShape.Equal(outShape) {
		parallel.ForRange(len(out), func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = op(a[i], b[i])
			}
		}, cfg)
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := tensor.BroadcastStrides(aShape, outShape)
	bStrides := tensor.BroadcastStrides(bShape, outShape)

	parallel.ForRange(len(out), func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = op(
				a[tensor.FlatIndex(i, outStrides, aStrides)],
				b[tensor.FlatIndex(i, outStrides, bStrides)],
			)
		}
	}, cfg)
}
