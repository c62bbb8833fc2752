package metric

import (
	"fmt"

	"github.com/born-ml/costs/internal/tensor"
)

// TopKMisclassification reports log loss, top-1 misclassification and top-k
// misclassification, in that order.
//
// With p the probability y assigns to the correct class, an example whose
// class ties with others at p gets fractional credit: of the nEq entries equal
// to p, the k - nGreater slots left after the strictly greater entries are
// shared evenly, so the example counts as correct with probability
// min((k - nGreater) / nEq, 1). Top-1 credit is 1/nEq when p is the maximum.
//
// Targets must be one-hot. When t is not one-hot, p may match no entry of y,
// nEq is 0 and the top-1 and top-k values for that example are NaN.
type TopKMisclassification[T tensor.Float, B tensor.Backend] struct {
	UnimplementedMetric[T, B]
	backend B
	k       int
	names   []string
}

// NewTopKMisclassification creates the metric for the given k. k is not validated;
// k <= 0 makes every example a top-k miss.
func NewTopKMisclassification[T tensor.Float, B tensor.Backend](backend B, k int) *TopKMisclassification[T, B] {
	return &TopKMisclassification[T, B]{
		backend: backend,
		k:       k,
		names:   []string{"LogLoss", "Top1Misclass", fmt.Sprintf("Top%dMisclass", k)},
	}
}

// K returns the number of top predictions credited.
func (m *TopKMisclassification[T, B]) K() int {
	return m.k
}

// Names returns LogLoss, Top1Misclass and Top<k>Misclass.
func (m *TopKMisclassification[T, B]) Names() []string {
	return m.names
}

// NewOutputs allocates a [3, BatchSize()] buffer.
func (m *TopKMisclassification[T, B]) NewOutputs() *tensor.RawTensor {
	return m.backend.IOBuf(len(m.names), tensor.DataTypeOf[T]())
}

// Evaluate writes the three per-example values into the rows of out and returns their means.
func (m *TopKMisclassification[T, B]) Evaluate(y, t *tensor.Tensor[T, B], out *tensor.RawTensor) ([]float64, error) {
	if err := validate(y, t, out, len(m.names)); err != nil {
		return nil, err
	}

	be := m.backend
	yr := y.Raw()
	dt := yr.DType()
	count := func(mask *tensor.RawTensor) *tensor.RawTensor {
		return be.SumDim(be.Cast(mask, dt), 0, true)
	}

	correct := be.SumDim(be.Mul(yr, t.Raw()), 0, true)
	nEq := count(be.Equal(yr, correct))
	nSlots := be.RSubScalar(T(m.k), count(be.Greater(yr, correct)))
	ratio := be.Div(nSlots, nEq)

	zero, err := tensor.NewRaw(tensor.Shape{1}, dt, yr.Device())
	if err != nil {
		return nil, err
	}
	hasSlots := be.Cast(be.Greater(nSlots, zero), dt)
	allFit := be.Cast(be.LowerEqual(nEq, nSlots), dt)

	// hasSlots * (allFit*(1 - ratio) + ratio) == min(ratio, 1) where slots remain, else 0.
	credit := be.Mul(hasSlots, be.Add(be.Mul(allFit, be.RSubScalar(T(1), ratio)), ratio))
	topk := be.RSubScalar(T(1), credit)

	isMax := be.Cast(be.Equal(be.MaxDim(yr, 0, true), correct), dt)
	top1 := be.RSubScalar(T(1), be.Div(isMax, nEq))

	logLoss := be.MulScalar(be.SafeLog(correct), T(-1))

	out.Row(0).CopyFrom(logLoss)
	out.Row(1).CopyFrom(top1)
	out.Row(2).CopyFrom(topk)

	return rowMeans(be, out), nil
}
