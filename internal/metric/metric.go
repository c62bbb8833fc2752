// Package metric implements evaluation metrics: values reported on validation
// data that are not used for backpropagation.
//
// Metrics write one value per example into a caller-owned output buffer with
// shape [len(Names()), batch], one row per reported name, and return the batch
// mean of each row. Buffers come from NewOutputs and can be reused across calls;
// a metric never keeps references to them.
package metric

import (
	"errors"
	"fmt"

	"github.com/born-ml/costs/internal/tensor"
)

// Sentinel errors returned by metrics.
var (
	ErrNotImplemented = errors.New("metric: not implemented")
	ErrShape          = errors.New("metric: shape mismatch")
	ErrUnknownMetric  = errors.New("metric: unknown metric")
)

// Metric is a non-differentiable evaluation measure.
type Metric[T tensor.Float, B tensor.Backend] interface {
	// Names lists the reported values, one per output row.
	Names() []string
	// NewOutputs allocates an output buffer of shape [len(Names()), BatchSize()].
	NewOutputs() *tensor.RawTensor
	// Evaluate writes per-example values for (y, t) into out and returns their batch means.
	Evaluate(y, t *tensor.Tensor[T, B], out *tensor.RawTensor) ([]float64, error)
	// Gradient does nothing: metrics do not take part in backpropagation.
	Gradient(y, t *tensor.Tensor[T, B])
}

// UnimplementedMetric can be embedded to get a no-op Gradient.
// Its Evaluate reports ErrNotImplemented, so embedders must provide their own.
type UnimplementedMetric[T tensor.Float, B tensor.Backend] struct{}

// Evaluate returns ErrNotImplemented.
func (UnimplementedMetric[T, B]) Evaluate(_, _ *tensor.Tensor[T, B], _ *tensor.RawTensor) ([]float64, error) {
	return nil, ErrNotImplemented
}

// Gradient is a no-op.
func (UnimplementedMetric[T, B]) Gradient(_, _ *tensor.Tensor[T, B]) {}

// Registered metric names accepted by New.
const (
	NameTopK              = "topk"
	NameMisclassification = "misclassification"
	NameAccuracy          = "accuracy"
)

// Names returns the metric names accepted by New.
func Names() []string {
	return []string{NameTopK, NameMisclassification, NameAccuracy}
}

// Options is the union of all metric configuration, used when a metric is chosen by name.
type Options struct {
	K int // Number of top predictions credited by the top-k metric.
}

// New builds the metric registered under name.
func New[T tensor.Float, B tensor.Backend](name string, opts Options, backend B) (Metric[T, B], error) {
	switch name {
	case NameTopK:
		return NewTopKMisclassification[T](backend, opts.K), nil
	case NameMisclassification:
		return NewMisclassification[T](backend), nil
	case NameAccuracy:
		return NewAccuracy[T](backend), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}

// validate checks y, t and out against a metric reporting rows values.
func validate[T tensor.Float, B tensor.Backend](y, t *tensor.Tensor[T, B], out *tensor.RawTensor, rows int) error {
	ys, ts := y.Shape(), t.Shape()
	if len(ys) != 2 {
		return fmt.Errorf("%w: y must be 2D [classes, batch], got %v", ErrShape, ys)
	}
	if !ys.Equal(ts) {
		return fmt.Errorf("%w: y %v and t %v differ", ErrShape, ys, ts)
	}
	if out == nil {
		return fmt.Errorf("%w: nil output buffer", ErrShape)
	}
	if want := (tensor.Shape{rows, ys[1]}); !out.Shape().Equal(want) {
		return fmt.Errorf("%w: output buffer is %v, want %v", ErrShape, out.Shape(), want)
	}
	if !out.DType().IsFloat() {
		return fmt.Errorf("%w: output buffer dtype %s is not floating point", ErrShape, out.DType())
	}
	return nil
}

// rowMeans returns the mean of each row of out.
func rowMeans(backend tensor.Backend, out *tensor.RawTensor) []float64 {
	return backend.MeanDim(out, 1, false).Float64s()
}
