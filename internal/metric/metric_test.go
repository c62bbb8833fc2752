package metric_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/costs/internal/backend/cpu"
	"github.com/born-ml/costs/internal/backend/gonum"
	"github.com/born-ml/costs/internal/metric"
	"github.com/born-ml/costs/internal/tensor"
)

type testTensor = tensor.Tensor[float64, tensor.Backend]

func backends() map[string]tensor.Backend {
	return map[string]tensor.Backend{
		"cpu":   cpu.NewWithConfig(cpu.Config{BatchSize: 3}),
		"gonum": gonum.New(3),
	}
}

// matrix builds a tensor from rows; columns are examples.
func matrix(t *testing.T, be tensor.Backend, rows ...[]float64) *testTensor {
	t.Helper()
	var data []float64
	for _, r := range rows {
		require.Len(t, r, len(rows[0]))
		data = append(data, r...)
	}
	x, err := tensor.FromSlice(data, tensor.Shape{len(rows), len(rows[0])}, be)
	require.NoError(t, err)
	return x
}

// Three examples over four classes. Correct classes: 0, 2, 3.
// Example 0 is right, example 1 ranks its class second, example 2 ranks it last.
func fixture(t *testing.T, be tensor.Backend) (y, tt *testTensor) {
	y = matrix(t, be,
		[]float64{0.6, 0.1, 0.4},
		[]float64{0.2, 0.5, 0.3},
		[]float64{0.1, 0.3, 0.2},
		[]float64{0.1, 0.1, 0.1},
	)
	tt = matrix(t, be,
		[]float64{1, 0, 0},
		[]float64{0, 0, 0},
		[]float64{0, 1, 0},
		[]float64{0, 0, 1},
	)
	return y, tt
}

func TestTopKMisclassification(t *testing.T) {
	for name, be := range backends() {
		t.Run(name, func(t *testing.T) {
			m := metric.NewTopKMisclassification[float64](be, 2)
			assert.Equal(t, []string{"LogLoss", "Top1Misclass", "Top2Misclass"}, m.Names())
			assert.Equal(t, 2, m.K())

			y, tt := fixture(t, be)
			out := m.NewOutputs()
			assert.Equal(t, tensor.Shape{3, 3}, out.Shape())

			means, err := m.Evaluate(y, tt, out)
			require.NoError(t, err)

			logLoss := []float64{-math.Log(0.6), -math.Log(0.3), -math.Log(0.1)}
			assert.InDeltaSlice(t, logLoss, out.Row(0).Float64s(), 1e-12)
			assert.InDeltaSlice(t, []float64{0, 1, 1}, out.Row(1).Float64s(), 1e-12)
			assert.InDeltaSlice(t, []float64{0, 0, 1}, out.Row(2).Float64s(), 1e-12)

			require.Len(t, means, 3)
			assert.InDelta(t, (logLoss[0]+logLoss[1]+logLoss[2])/3, means[0], 1e-12)
			assert.InDelta(t, 2.0/3, means[1], 1e-12)
			assert.InDelta(t, 1.0/3, means[2], 1e-12)
		})
	}
}

func TestTopKMisclassification_Ties(t *testing.T) {
	for name, be := range backends() {
		t.Run(name, func(t *testing.T) {
			m := metric.NewTopKMisclassification[float64](be, 1)

			// Column 0: correct class ties with one other at the max.
			// Column 1: three-way tie below a strictly greater entry.
			// Column 2: correct class is the unique max.
			y := matrix(t, be,
				[]float64{0.4, 0.4, 0.7},
				[]float64{0.4, 0.2, 0.1},
				[]float64{0.2, 0.2, 0.1},
				[]float64{0.0, 0.2, 0.1},
			)
			tt := matrix(t, be,
				[]float64{1, 0, 1},
				[]float64{0, 1, 0},
				[]float64{0, 0, 0},
				[]float64{0, 0, 0},
			)
			out := m.NewOutputs()
			_, err := m.Evaluate(y, tt, out)
			require.NoError(t, err)

			assert.InDeltaSlice(t, []float64{0.5, 1, 0}, out.Row(1).Float64s(), 1e-12)
			assert.InDeltaSlice(t, []float64{0.5, 1, 0}, out.Row(2).Float64s(), 1e-12)

			// With k=3 the greater entry takes one slot and the three tied share two.
			m3 := metric.NewTopKMisclassification[float64](be, 3)
			_, err = m3.Evaluate(y, tt, out)
			require.NoError(t, err)
			assert.InDeltaSlice(t, []float64{0, 1.0 / 3, 0}, out.Row(2).Float64s(), 1e-12)
		})
	}
}

func TestTopKMisclassification_NonPositiveK(t *testing.T) {
	var be tensor.Backend = cpu.NewWithConfig(cpu.Config{BatchSize: 3})
	y, tt := fixture(t, be)
	m := metric.NewTopKMisclassification[float64](be, 0)

	out := m.NewOutputs()
	means, err := m.Evaluate(y, tt, out)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, means[2], 1e-12)
}

func TestTopKMisclassification_ZeroProbability(t *testing.T) {
	var be tensor.Backend = cpu.NewWithConfig(cpu.Config{BatchSize: 1})
	m := metric.NewTopKMisclassification[float64](be, 1)
	y := matrix(t, be, []float64{1}, []float64{0})
	tt := matrix(t, be, []float64{0}, []float64{1})

	means, err := m.Evaluate(y, tt, m.NewOutputs())
	require.NoError(t, err)
	assert.InDelta(t, 50.0, means[0], 1e-9)
	assert.InDelta(t, 1.0, means[1], 1e-12)
}

func TestTopKMisclassification_SoftTargets(t *testing.T) {
	for name, be := range backends() {
		t.Run(name, func(t *testing.T) {
			m := metric.NewTopKMisclassification[float64](be, 1)
			// p = 0.5 matches no entry of y, so there are no ties to share credit over.
			y := matrix(t, be, []float64{0.6, 0.9, 0.2}, []float64{0.4, 0.1, 0.8})
			tt := matrix(t, be, []float64{0.5, 1, 0}, []float64{0.5, 0, 1})

			out := m.NewOutputs()
			_, err := m.Evaluate(y, tt, out)
			require.NoError(t, err)

			assert.InDelta(t, -math.Log(0.5), out.Row(0).Float64s()[0], 1e-12)
			assert.True(t, math.IsNaN(out.Row(1).Float64s()[0]))
			assert.True(t, math.IsNaN(out.Row(2).Float64s()[0]))
			// One-hot columns are unaffected.
			assert.Equal(t, []float64{0, 0}, out.Row(1).Float64s()[1:])
			assert.Equal(t, []float64{0, 0}, out.Row(2).Float64s()[1:])
		})
	}
}

func TestMisclassificationAndAccuracy(t *testing.T) {
	for name, be := range backends() {
		t.Run(name, func(t *testing.T) {
			y, tt := fixture(t, be)

			mis := metric.NewMisclassification[float64](be)
			acc := metric.NewAccuracy[float64](be)
			assert.Equal(t, []string{"Top1Misclass"}, mis.Names())
			assert.Equal(t, []string{"Accuracy"}, acc.Names())

			misOut, accOut := mis.NewOutputs(), acc.NewOutputs()
			misMeans, err := mis.Evaluate(y, tt, misOut)
			require.NoError(t, err)
			accMeans, err := acc.Evaluate(y, tt, accOut)
			require.NoError(t, err)

			assert.Equal(t, []float64{0, 1, 1}, misOut.Float64s())
			assert.Equal(t, []float64{1, 0, 0}, accOut.Float64s())
			assert.InDelta(t, 1.0, misMeans[0]+accMeans[0], 1e-12)
		})
	}
}

func TestAccuracyPlusMisclassificationIsOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const classes, batch = 5, 16
	be := cpu.NewWithConfig(cpu.Config{BatchSize: batch})

	for trial := 0; trial < 10; trial++ {
		yData := make([]float64, classes*batch)
		tData := make([]float64, classes*batch)
		for j := 0; j < batch; j++ {
			tData[rng.Intn(classes)*batch+j] = 1
		}
		for i := range yData {
			yData[i] = rng.Float64()
		}
		y, err := tensor.FromSlice(yData, tensor.Shape{classes, batch}, tensor.Backend(be))
		require.NoError(t, err)
		tt, err := tensor.FromSlice(tData, tensor.Shape{classes, batch}, tensor.Backend(be))
		require.NoError(t, err)

		mis := metric.NewMisclassification[float64](tensor.Backend(be))
		acc := metric.NewAccuracy[float64](tensor.Backend(be))
		topk := metric.NewTopKMisclassification[float64](tensor.Backend(be), 1)

		m, err := mis.Evaluate(y, tt, mis.NewOutputs())
		require.NoError(t, err)
		a, err := acc.Evaluate(y, tt, acc.NewOutputs())
		require.NoError(t, err)
		k, err := topk.Evaluate(y, tt, topk.NewOutputs())
		require.NoError(t, err)

		assert.InDelta(t, 1.0, m[0]+a[0], 1e-12)
		// Random uniform outputs are tie-free, so top-1 credit is all or nothing.
		assert.InDelta(t, m[0], k[1], 1e-12)
		assert.InDelta(t, m[0], k[2], 1e-12)
	}
}

func TestMetric_Float32(t *testing.T) {
	be := cpu.NewWithConfig(cpu.Config{BatchSize: 2})
	y, err := tensor.FromSlice([]float32{0.9, 0.2, 0.1, 0.8}, tensor.Shape{2, 2}, be)
	require.NoError(t, err)
	tt, err := tensor.FromSlice([]float32{1, 1, 0, 0}, tensor.Shape{2, 2}, be)
	require.NoError(t, err)

	m := metric.NewTopKMisclassification[float32](be, 1)
	out := m.NewOutputs()
	assert.Equal(t, tensor.Float32, out.DType())

	means, err := m.Evaluate(y, tt, out)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, means[1], 1e-6)
}

func TestMetric_ShapeErrors(t *testing.T) {
	var be tensor.Backend = cpu.NewWithConfig(cpu.Config{BatchSize: 3})
	y, tt := fixture(t, be)
	m := metric.NewTopKMisclassification[float64](be, 1)

	t.Run("wrong rows", func(t *testing.T) {
		_, err := m.Evaluate(y, tt, be.IOBuf(1, tensor.Float64))
		assert.ErrorIs(t, err, metric.ErrShape)
	})
	t.Run("wrong batch", func(t *testing.T) {
		out, err := tensor.NewRaw(tensor.Shape{3, 2}, tensor.Float64, tensor.CPU)
		require.NoError(t, err)
		_, err = m.Evaluate(y, tt, out)
		assert.ErrorIs(t, err, metric.ErrShape)
	})
	t.Run("nil buffer", func(t *testing.T) {
		_, err := m.Evaluate(y, tt, nil)
		assert.ErrorIs(t, err, metric.ErrShape)
	})
	t.Run("y and t differ", func(t *testing.T) {
		short := matrix(t, be, []float64{1, 0, 0}, []float64{0, 1, 1})
		_, err := m.Evaluate(y, short, m.NewOutputs())
		assert.ErrorIs(t, err, metric.ErrShape)
	})
	t.Run("integer buffer", func(t *testing.T) {
		_, err := m.Evaluate(y, tt, be.IOBuf(3, tensor.Int32))
		assert.ErrorIs(t, err, metric.ErrShape)
	})
}

// placeholder embeds the base without overriding Evaluate.
type placeholder struct {
	metric.UnimplementedMetric[float64, tensor.Backend]
}

func TestUnimplementedMetric(t *testing.T) {
	var be tensor.Backend = cpu.New()
	y := matrix(t, be, []float64{1})

	var p placeholder
	_, err := p.Evaluate(y, y, nil)
	assert.True(t, errors.Is(err, metric.ErrNotImplemented))
	assert.NotPanics(t, func() { p.Gradient(y, y) })

	// Concrete metrics inherit the no-op gradient.
	acc := metric.NewAccuracy[float64](be)
	assert.NotPanics(t, func() { acc.Gradient(y, y) })
}

func TestNew(t *testing.T) {
	var be tensor.Backend = cpu.New()
	for _, name := range metric.Names() {
		m, err := metric.New[float64](name, metric.Options{K: 3}, be)
		require.NoError(t, err, name)
		assert.NotEmpty(t, m.Names())
	}

	m, err := metric.New[float64](metric.NameTopK, metric.Options{K: 3}, be)
	require.NoError(t, err)
	assert.Equal(t, "Top3Misclass", m.Names()[2])

	_, err = metric.New[float64]("f1", metric.Options{}, be)
	assert.ErrorIs(t, err, metric.ErrUnknownMetric)
}
