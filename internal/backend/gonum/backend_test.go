package gonum_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/costs/internal/backend/cpu"
	"github.com/born-ml/costs/internal/backend/gonum"
	"github.com/born-ml/costs/internal/tensor"
)

func raw(t *testing.T, shape tensor.Shape, values ...float64) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.FromFloat64s(values, shape, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	return r
}

func TestBackend_Metadata(t *testing.T) {
	g := gonum.New(0)
	assert.Equal(t, "gonum", g.Name())
	assert.Equal(t, tensor.CPU, g.Device())
	assert.Equal(t, gonum.DefaultBatchSize, g.BatchSize())

	buf := gonum.New(16).IOBuf(2, tensor.Float64)
	assert.Equal(t, tensor.Shape{2, 16}, buf.Shape())
}

// TestBackend_MatchesCPU runs every operation on both backends and compares results.
func TestBackend_MatchesCPU(t *testing.T) {
	g := gonum.New(4)
	c := cpu.NewWithConfig(cpu.Config{BatchSize: 4})

	x := raw(t, tensor.Shape{3, 4},
		0.1, 0.5, 0.25, 0.0,
		0.6, 0.5, 0.25, 0.3,
		0.3, 0.0, 0.50, 0.7,
	)
	y := raw(t, tensor.Shape{3, 4},
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 1,
	)
	row := raw(t, tensor.Shape{1, 4}, 0.5, 0.5, 0.25, 0.7)

	type unaryCase struct {
		name string
		g, c func(*tensor.RawTensor) *tensor.RawTensor
	}
	for _, tc := range []unaryCase{
		{"square", g.Square, c.Square},
		{"exp", g.Exp, c.Exp},
		{"safelog", g.SafeLog, c.SafeLog},
		{"sigmoid", g.Sigmoid, c.Sigmoid},
		{"softmax0", func(r *tensor.RawTensor) *tensor.RawTensor { return g.Softmax(r, 0) },
			func(r *tensor.RawTensor) *tensor.RawTensor { return c.Softmax(r, 0) }},
		{"softmax1", func(r *tensor.RawTensor) *tensor.RawTensor { return g.Softmax(r, 1) },
			func(r *tensor.RawTensor) *tensor.RawTensor { return c.Softmax(r, 1) }},
		{"rsub", func(r *tensor.RawTensor) *tensor.RawTensor { return g.RSubScalar(1.0, r) },
			func(r *tensor.RawTensor) *tensor.RawTensor { return c.RSubScalar(1.0, r) }},
		{"mulScalar", func(r *tensor.RawTensor) *tensor.RawTensor { return g.MulScalar(r, 3.0) },
			func(r *tensor.RawTensor) *tensor.RawTensor { return c.MulScalar(r, 3.0) }},
		{"sumdim0", func(r *tensor.RawTensor) *tensor.RawTensor { return g.SumDim(r, 0, true) },
			func(r *tensor.RawTensor) *tensor.RawTensor { return c.SumDim(r, 0, true) }},
		{"meandim1", func(r *tensor.RawTensor) *tensor.RawTensor { return g.MeanDim(r, 1, false) },
			func(r *tensor.RawTensor) *tensor.RawTensor { return c.MeanDim(r, 1, false) }},
		{"maxdim0", func(r *tensor.RawTensor) *tensor.RawTensor { return g.MaxDim(r, 0, true) },
			func(r *tensor.RawTensor) *tensor.RawTensor { return c.MaxDim(r, 0, true) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			want, got := tc.c(x), tc.g(x)
			assert.Equal(t, want.Shape(), got.Shape())
			assert.InDeltaSlice(t, want.AsFloat64(), got.AsFloat64(), 1e-12)
		})
	}

	type binaryCase struct {
		name string
		g, c func(a, b *tensor.RawTensor) *tensor.RawTensor
	}
	for _, tc := range []binaryCase{
		{"add", g.Add, c.Add},
		{"sub", g.Sub, c.Sub},
		{"mul", g.Mul, c.Mul},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDeltaSlice(t, tc.c(x, y).AsFloat64(), tc.g(x, y).AsFloat64(), 1e-12)
			assert.InDeltaSlice(t, tc.c(x, row).AsFloat64(), tc.g(x, row).AsFloat64(), 1e-12)
		})
	}

	t.Run("div", func(t *testing.T) {
		assert.InDeltaSlice(t, c.Div(x, row).AsFloat64(), g.Div(x, row).AsFloat64(), 1e-12)
	})

	t.Run("comparisons", func(t *testing.T) {
		assert.Equal(t, c.Greater(x, row).AsBool(), g.Greater(x, row).AsBool())
		assert.Equal(t, c.Equal(x, row).AsBool(), g.Equal(x, row).AsBool())
		assert.Equal(t, c.NotEqual(x, row).AsBool(), g.NotEqual(x, row).AsBool())
		assert.Equal(t, c.LowerEqual(x, row).AsBool(), g.LowerEqual(x, row).AsBool())
	})

	t.Run("argmax", func(t *testing.T) {
		want, got := c.Argmax(x, 0), g.Argmax(x, 0)
		assert.Equal(t, tensor.Int32, got.DType())
		assert.Equal(t, want.Shape(), got.Shape())
		assert.Equal(t, want.AsInt32(), got.AsInt32())

		// Argmax results feed back into comparisons as int32.
		assert.Equal(t, c.Equal(want, c.Argmax(y, 0)).AsBool(), g.Equal(got, g.Argmax(y, 0)).AsBool())
	})
}

func TestBackend_OneDimensional(t *testing.T) {
	g := gonum.New(4)
	v := raw(t, tensor.Shape{3}, 1, 5, 2)

	sum := g.SumDim(v, 0, false)
	assert.Equal(t, 0, len(sum.Shape()))
	assert.Equal(t, 8.0, sum.AsFloat64()[0])

	idx := g.Argmax(v, -1)
	assert.Equal(t, int32(1), idx.AsInt32()[0])

	sm := g.Softmax(v, 0).AsFloat64()
	den := math.Exp(1) + math.Exp(5) + math.Exp(2)
	assert.InDelta(t, math.Exp(5)/den, sm[1], 1e-12)
}

func TestBackend_Rejections(t *testing.T) {
	g := gonum.New(4)

	f32, err := tensor.FromFloat64s([]float64{1, 2}, tensor.Shape{2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	assert.PanicsWithValue(t, "square: unsupported dtype float32 (gonum backend supports float64 only)",
		func() { g.Square(f32) })

	cube := raw(t, tensor.Shape{2, 2, 2}, 1, 2, 3, 4, 5, 6, 7, 8)
	assert.Panics(t, func() { g.Exp(cube) })

	assert.Panics(t, func() { g.Add(raw(t, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6), raw(t, tensor.Shape{2, 2}, 1, 2, 3, 4)) })
}
