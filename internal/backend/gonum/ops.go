package gonum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/costs/internal/tensor"
)

// Add performs element-wise addition with broadcasting.
func (g *Backend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	am, bm, shape := operands("add", a, b, dense)
	var out mat.Dense
	out.Add(am, bm)
	return wrap("add", &out, shape)
}

// Sub performs element-wise subtraction with broadcasting.
func (g *Backend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	am, bm, shape := operands("sub", a, b, dense)
	var out mat.Dense
	out.Sub(am, bm)
	return wrap("sub", &out, shape)
}

// Mul performs element-wise multiplication with broadcasting.
func (g *Backend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	am, bm, shape := operands("mul", a, b, dense)
	var out mat.Dense
	out.MulElem(am, bm)
	return wrap("mul", &out, shape)
}

// Div performs element-wise division with broadcasting.
func (g *Backend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	am, bm, shape := operands("div", a, b, dense)
	var out mat.Dense
	out.DivElem(am, bm)
	return wrap("div", &out, shape)
}

// AddScalar adds a scalar value to each element of the tensor.
func (g *Backend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := tensor.ScalarValue("addScalar", scalar)
	return g.apply("addScalar", x, func(v float64) float64 { return v + s })
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (g *Backend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := tensor.ScalarValue("subScalar", scalar)
	return g.apply("subScalar", x, func(v float64) float64 { return v - s })
}

// MulScalar multiplies each element of the tensor by a scalar value.
func (g *Backend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := tensor.ScalarValue("mulScalar", scalar)
	var out mat.Dense
	out.Scale(s, dense("mulScalar", x))
	return wrap("mulScalar", &out, x.Shape())
}

// DivScalar divides each element of the tensor by a scalar value.
func (g *Backend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := tensor.ScalarValue("divScalar", scalar)
	return g.apply("divScalar", x, func(v float64) float64 { return v / s })
}

// RSubScalar computes scalar - x for each element of the tensor.
func (g *Backend) RSubScalar(scalar any, x *tensor.RawTensor) *tensor.RawTensor {
	s := tensor.ScalarValue("rsubScalar", scalar)
	return g.apply("rsubScalar", x, func(v float64) float64 { return s - v })
}

// Square computes element-wise x².
func (g *Backend) Square(x *tensor.RawTensor) *tensor.RawTensor {
	m := dense("square", x)
	var out mat.Dense
	out.MulElem(m, m)
	return wrap("square", &out, x.Shape())
}

// Exp computes element-wise exponential.
func (g *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return g.apply("exp", x, math.Exp)
}

// SafeLog computes log(max(x, tensor.SafeLogFloor)) element-wise.
func (g *Backend) SafeLog(x *tensor.RawTensor) *tensor.RawTensor {
	return g.apply("safelog", x, func(v float64) float64 {
		return math.Log(math.Max(v, tensor.SafeLogFloor))
	})
}

// Sigmoid computes 1 / (1 + exp(-x)) element-wise.
func (g *Backend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return g.apply("sigmoid", x, func(v float64) float64 {
		return 1 / (1 + math.Exp(-v))
	})
}

// Softmax computes softmax along dim using the max-subtraction trick.
func (g *Backend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	m := dense("softmax", x)
	out := mat.DenseCopyOf(m)

	softmax := func(v []float64) []float64 {
		floats.AddConst(-floats.Max(v), v)
		for i := range v {
			v[i] = math.Exp(v[i])
		}
		floats.Scale(1/floats.Sum(v), v)
		return v
	}

	r, c := m.Dims()
	if axis(x.Shape(), "softmax", dim) == 0 {
		for j := 0; j < c; j++ {
			out.SetCol(j, softmax(mat.Col(nil, j, m)))
		}
	} else {
		for i := 0; i < r; i++ {
			out.SetRow(i, softmax(mat.Row(nil, i, m)))
		}
	}
	return wrap("softmax", out, x.Shape())
}

func (g *Backend) apply(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return f(v) }, dense(op, x))
	return wrap(op, &out, x.Shape())
}

// Greater returns a > b element-wise.
func (g *Backend) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	return compare("greater", a, b, func(x, y float64) bool { return x > y })
}

// LowerEqual returns a <= b element-wise.
func (g *Backend) LowerEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return compare("lowerEqual", a, b, func(x, y float64) bool { return x <= y })
}

// Equal returns a == b element-wise.
func (g *Backend) Equal(a, b *tensor.RawTensor) *tensor.RawTensor {
	return compare("equal", a, b, func(x, y float64) bool { return x == y })
}

// NotEqual returns a != b element-wise.
func (g *Backend) NotEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return compare("notEqual", a, b, func(x, y float64) bool { return x != y })
}

func compare(op string, a, b *tensor.RawTensor, f func(x, y float64) bool) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}
	am, bm, shape := operands(op, a, b, values)

	result, err := tensor.NewRaw(shape, tensor.Bool, tensor.CPU)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	out := result.AsBool()
	r, c := am.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i*c+j] = f(am.At(i, j), bm.At(i, j))
		}
	}
	return result
}

// Cast converts x to dtype. Casting to the same dtype returns a copy.
func (g *Backend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.Clone()
	}
	result, err := tensor.NewRaw(x.Shape(), dtype, tensor.CPU)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}
	result.CopyFrom(x)
	return result
}
