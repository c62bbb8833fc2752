package metric

import (
	"github.com/born-ml/costs/internal/tensor"
)

// Misclassification reports the fraction of examples whose arg-max prediction
// differs from the arg-max of the one-hot target.
type Misclassification[T tensor.Float, B tensor.Backend] struct {
	UnimplementedMetric[T, B]
	backend B
}

// NewMisclassification creates the top-1 misclassification metric.
func NewMisclassification[T tensor.Float, B tensor.Backend](backend B) *Misclassification[T, B] {
	return &Misclassification[T, B]{backend: backend}
}

// Names returns Top1Misclass.
func (m *Misclassification[T, B]) Names() []string {
	return []string{"Top1Misclass"}
}

// NewOutputs allocates a [1, BatchSize()] buffer.
func (m *Misclassification[T, B]) NewOutputs() *tensor.RawTensor {
	return m.backend.IOBuf(1, tensor.DataTypeOf[T]())
}

// Evaluate writes 1 for every misclassified example and 0 otherwise.
func (m *Misclassification[T, B]) Evaluate(y, t *tensor.Tensor[T, B], out *tensor.RawTensor) ([]float64, error) {
	if err := validate(y, t, out, 1); err != nil {
		return nil, err
	}
	preds, hyps := decode(m.backend, y, t)
	out.Row(0).CopyFrom(m.backend.NotEqual(preds, hyps))
	return rowMeans(m.backend, out), nil
}

// Accuracy reports the fraction of examples whose arg-max prediction matches
// the arg-max of the one-hot target.
type Accuracy[T tensor.Float, B tensor.Backend] struct {
	UnimplementedMetric[T, B]
	backend B
}

// NewAccuracy creates the accuracy metric.
func NewAccuracy[T tensor.Float, B tensor.Backend](backend B) *Accuracy[T, B] {
	return &Accuracy[T, B]{backend: backend}
}

// Names returns Accuracy.
func (a *Accuracy[T, B]) Names() []string {
	return []string{"Accuracy"}
}

// NewOutputs allocates a [1, BatchSize()] buffer.
func (a *Accuracy[T, B]) NewOutputs() *tensor.RawTensor {
	return a.backend.IOBuf(1, tensor.DataTypeOf[T]())
}

// Evaluate writes 1 for every correctly classified example and 0 otherwise.
func (a *Accuracy[T, B]) Evaluate(y, t *tensor.Tensor[T, B], out *tensor.RawTensor) ([]float64, error) {
	if err := validate(y, t, out, 1); err != nil {
		return nil, err
	}
	preds, hyps := decode(a.backend, y, t)
	out.Row(0).CopyFrom(a.backend.Equal(preds, hyps))
	return rowMeans(a.backend, out), nil
}

// decode converts one-hot predictions and targets back to class indices.
func decode[T tensor.Float, B tensor.Backend](backend B, y, t *tensor.Tensor[T, B]) (preds, hyps *tensor.RawTensor) {
	return backend.Argmax(y.Raw(), 0), backend.Argmax(t.Raw(), 0)
}
