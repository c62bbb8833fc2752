package cost

import (
	"math"

	"github.com/born-ml/costs/internal/tensor"
)

// BinaryConfig configures CrossEntropyBinary.
type BinaryConfig struct {
	Scale float64 // Multiplier applied to the backpropagated error. Zero means 1.
}

// MultiConfig configures CrossEntropyMulti.
type MultiConfig struct {
	Scale   float64 // Multiplier applied to the backpropagated error. Zero means 1.
	UseBits bool    // Report the cost in bits instead of nats.
}

// CrossEntropyBinary is the binary cross-entropy cost for sigmoid outputs.
//
//	loss = sum(-log(y)*t - log(1-y)*(1-t), axis=0)
//	grad = scale * (y - t)
type CrossEntropyBinary[T tensor.Float, B tensor.Backend] struct {
	backend B
	scale   float64
}

// NewCrossEntropyBinary creates a binary cross-entropy cost.
func NewCrossEntropyBinary[T tensor.Float, B tensor.Backend](backend B, cfg BinaryConfig) *CrossEntropyBinary[T, B] {
	return &CrossEntropyBinary[T, B]{
		backend: backend,
		scale:   scaleOrDefault(cfg.Scale),
	}
}

// Name returns "CrossEntropyBinary".
func (c *CrossEntropyBinary[T, B]) Name() string {
	return "CrossEntropyBinary"
}

// Evaluate computes the per-example binary cross-entropy, shape [1, batch].
func (c *CrossEntropyBinary[T, B]) Evaluate(y, t *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	checkShapes(c.Name(), y, t)
	be := c.backend
	yr, tr := y.Raw(), t.Raw()
	one := T(1)

	pos := be.Mul(be.SafeLog(yr), tr)
	neg := be.Mul(be.SafeLog(be.RSubScalar(one, yr)), be.RSubScalar(one, tr))
	loss := be.MulScalar(be.SumDim(be.Add(pos, neg), 0, true), T(-1))

	return tensor.New[T](loss, be)
}

// Gradient returns the shortcut derivative scale*(y - t).
// It is only correct when y is the output of a sigmoid.
func (c *CrossEntropyBinary[T, B]) Gradient(y, t *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	checkShapes(c.Name(), y, t)
	be := c.backend
	return tensor.New[T](be.MulScalar(be.Sub(y.Raw(), t.Raw()), T(c.scale)), be)
}

// CrossEntropyMulti is the multiclass cross-entropy cost for softmax outputs.
//
//	loss = sum(-t * logscale * log(y), axis=0)
//	grad = scale * (y - t)
//
// logscale is 1/ln(2) when the cost is reported in bits, 1 otherwise.
type CrossEntropyMulti[T tensor.Float, B tensor.Backend] struct {
	backend  B
	scale    float64
	logscale float64
}

// NewCrossEntropyMulti creates a multiclass cross-entropy cost.
func NewCrossEntropyMulti[T tensor.Float, B tensor.Backend](backend B, cfg MultiConfig) *CrossEntropyMulti[T, B] {
	logscale := 1.0
	if cfg.UseBits {
		logscale = 1 / math.Ln2
	}
	return &CrossEntropyMulti[T, B]{
		backend:  backend,
		scale:    scaleOrDefault(cfg.Scale),
		logscale: logscale,
	}
}

// Name returns "CrossEntropyMulti".
func (c *CrossEntropyMulti[T, B]) Name() string {
	return "CrossEntropyMulti"
}

// Evaluate computes the per-example multiclass cross-entropy, shape [1, batch].
func (c *CrossEntropyMulti[T, B]) Evaluate(y, t *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	checkShapes(c.Name(), y, t)
	be := c.backend

	weighted := be.Mul(be.MulScalar(t.Raw(), T(-c.logscale)), be.SafeLog(y.Raw()))
	return tensor.New[T](be.SumDim(weighted, 0, true), be)
}

// Gradient returns the shortcut derivative scale*(y - t).
// It is only correct when y is the output of a softmax along axis 0.
func (c *CrossEntropyMulti[T, B]) Gradient(y, t *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	checkShapes(c.Name(), y, t)
	be := c.backend
	return tensor.New[T](be.MulScalar(be.Sub(y.Raw(), t.Raw()), T(c.scale)), be)
}
