package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/costs/internal/parallel"
	"github.com/born-ml/costs/internal/tensor"
)

// Square computes element-wise x².
func (cpu *CPUBackend) Square(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("square", x, func(v float64) float64 { return v * v })
}

// Exp computes element-wise exponential: exp(x).
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("exp", x, math.Exp)
}

// SafeLog computes log(max(x, tensor.SafeLogFloor)) element-wise.
// Zero and negative inputs map to -50 instead of -Inf or NaN.
func (cpu *CPUBackend) SafeLog(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("safelog", x, func(v float64) float64 {
		return math.Log(math.Max(v, tensor.SafeLogFloor))
	})
}

// Sigmoid computes 1 / (1 + exp(-x)) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sigmoid", x, func(v float64) float64 {
		return 1 / (1 + math.Exp(-v))
	})
}

// unary applies f element-wise, computing in float64 for both float dtypes.
func (cpu *CPUBackend) unary(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := cpu.alloc(op, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		parallel.ForRange(len(dst), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = float32(f(float64(src[i])))
			}
		}, cpu.par)
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		parallel.ForRange(len(dst), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = f(src[i])
			}
		}, cpu.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, x.DType()))
	}

	return result
}

// Softmax computes softmax along dim using the max-subtraction trick.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	l := cpu.lanesOf("softmax", x.Shape(), dim)
	result := cpu.alloc("softmax", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		softmaxLanes(result.AsFloat32(), x.AsFloat32(), l, cpu.par)
	case tensor.Float64:
		softmaxLanes(result.AsFloat64(), x.AsFloat64(), l, cpu.par)
	default:
		panic(fmt.Sprintf("softmax: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

func softmaxLanes[T float](dst, src []T, l lanes, cfg parallel.Config) {
	parallel.For(l.count(), func(lane int) {
		base := l.base(lane)

		maxVal := src[base]
		for i := 1; i < l.size; i++ {
			maxVal = max(maxVal, src[base+i*l.stride])
		}

		var sum float64
		for i := 0; i < l.size; i++ {
			idx := base + i*l.stride
			e := math.Exp(float64(src[idx] - maxVal))
			dst[idx] = T(e)
			sum += e
		}
		for i := 0; i < l.size; i++ {
			dst[base+i*l.stride] = T(float64(dst[base+i*l.stride]) / sum)
		}
	}, cfg)
}
