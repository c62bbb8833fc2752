package cost_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/costs/internal/backend/cpu"
	"github.com/born-ml/costs/internal/backend/gonum"
	"github.com/born-ml/costs/internal/tensor"
)

type testTensor = tensor.Tensor[float64, tensor.Backend]

// backends returns every float64-capable backend, keyed by name.
func backends() map[string]tensor.Backend {
	return map[string]tensor.Backend{
		"cpu":   cpu.New(),
		"gonum": gonum.New(8),
	}
}

// matrix builds a [len(rows), len(rows[0])] tensor. Each inner slice is one row,
// so columns are examples.
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

// total sums a per-example loss over the batch.
func total(loss *testTensor) float64 {
	var s float64
	for _, v := range loss.Data() {
		s += v
	}
	return s
}

// numericalGradient computes d total(f(x)) / dx by central differences,
// perturbing x in place and restoring it.
func numericalGradient(x *testTensor, f func() float64, epsilon float64) []float64 {
	data := x.Data()
	grad := make([]float64, len(data))
	for i := range data {
		orig := data[i]
		data[i] = orig + epsilon
		plus := f()
		data[i] = orig - epsilon
		minus := f()
		data[i] = orig
		grad[i] = (plus - minus) / (2 * epsilon)
	}
	return grad
}
