package cost

import (
	"errors"
	"fmt"

	"github.com/born-ml/costs/internal/tensor"
)

// ErrUnknownCost is returned by New for an unregistered cost name.
var ErrUnknownCost = errors.New("unknown cost")

// Cost is a differentiable cost function.
//
// Evaluate returns the per-example loss with shape [1, batch].
// Gradient returns dLoss/dy (or the shortcut derivative) with the shape of y.
// y and t must have the same shape.
type Cost[T tensor.Float, B tensor.Backend] interface {
	Name() string
	Evaluate(y, t *tensor.Tensor[T, B]) *tensor.Tensor[T, B]
	Gradient(y, t *tensor.Tensor[T, B]) *tensor.Tensor[T, B]
}

// Registered cost names accepted by New.
const (
	NameCrossEntropyBinary = "cross_entropy_binary"
	NameCrossEntropyMulti  = "cross_entropy_multi"
	NameSumSquared         = "sum_squared"
	NameMeanSquared        = "mean_squared"
)

// Names returns the cost names accepted by New.
func Names() []string {
	return []string{NameCrossEntropyBinary, NameCrossEntropyMulti, NameSumSquared, NameMeanSquared}
}

// Options is the union of all cost configuration, used when a cost is chosen by name.
type Options struct {
	Scale   float64
	UseBits bool
}

// New builds the cost registered under name.
// Options that do not apply to the chosen cost are ignored.
func New[T tensor.Float, B tensor.Backend](name string, opts Options, backend B) (Cost[T, B], error) {
	switch name {
	case NameCrossEntropyBinary:
		return NewCrossEntropyBinary[T](backend, BinaryConfig{Scale: opts.Scale}), nil
	case NameCrossEntropyMulti:
		return NewCrossEntropyMulti[T](backend, MultiConfig{Scale: opts.Scale, UseBits: opts.UseBits}), nil
	case NameSumSquared:
		return NewSumSquared[T](backend), nil
	case NameMeanSquared:
		return NewMeanSquared[T](backend), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCost, name)
	}
}

// BatchMean returns the mean of a per-example loss over the batch.
func BatchMean[T tensor.Float, B tensor.Backend](loss *tensor.Tensor[T, B]) float64 {
	var sum float64
	for _, v := range loss.Data() {
		sum += float64(v)
	}
	return sum / float64(loss.NumElements())
}

func checkShapes[T tensor.Float, B tensor.Backend](name string, y, t *tensor.Tensor[T, B]) {
	if !y.Shape().Equal(t.Shape()) {
		panic(fmt.Sprintf("%s: y and t must have the same shape, got %v and %v", name, y.Shape(), t.Shape()))
	}
}

// scaleOrDefault treats an unset scale as 1.
func scaleOrDefault(scale float64) float64 {
	if scale == 0 {
		return 1
	}
	return scale
}
