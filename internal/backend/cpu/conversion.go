package cpu

import (
	"github.com/born-ml/costs/internal/tensor"
)

// Cast converts x to dtype. Bool converts to 0/1, and values convert to Bool as v != 0.
// Casting to the same dtype returns a copy.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.Clone()
	}
	result := cpu.alloc("cast", x.Shape(), dtype)
	result.CopyFrom(x)
	return result
}
