package cost

import (
	"github.com/born-ml/costs/internal/tensor"
)

// SumSquared is the halved sum of squared errors.
//
//	loss = sum((y - t)², axis=0) / 2
//	grad = y - t
type SumSquared[T tensor.Float, B tensor.Backend] struct {
	backend B
}

// NewSumSquared creates a sum-of-squares cost.
func NewSumSquared[T tensor.Float, B tensor.Backend](backend B) *SumSquared[T, B] {
	return &SumSquared[T, B]{backend: backend}
}

// Name returns "SumSquared".
func (s *SumSquared[T, B]) Name() string {
	return "SumSquared"
}

// Evaluate computes the per-example halved sum of squares, shape [1, batch].
func (s *SumSquared[T, B]) Evaluate(y, t *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	checkShapes(s.Name(), y, t)
	be := s.backend
	sq := be.Square(be.Sub(y.Raw(), t.Raw()))
	return tensor.New[T](be.DivScalar(be.SumDim(sq, 0, true), T(2)), be)
}

// Gradient returns y - t.
func (s *SumSquared[T, B]) Gradient(y, t *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	checkShapes(s.Name(), y, t)
	return tensor.New[T](s.backend.Sub(y.Raw(), t.Raw()), s.backend)
}

// MeanSquared is the halved mean of squared errors along axis 0.
//
//	loss = mean((y - t)², axis=0) / 2
//	grad = (y - t) / n
//
// n is the length of axis 0, the axis the mean runs over.
type MeanSquared[T tensor.Float, B tensor.Backend] struct {
	backend B
}

// NewMeanSquared creates a mean-squared-error cost.
func NewMeanSquared[T tensor.Float, B tensor.Backend](backend B) *MeanSquared[T, B] {
	return &MeanSquared[T, B]{backend: backend}
}

// Name returns "MeanSquared".
func (m *MeanSquared[T, B]) Name() string {
	return "MeanSquared"
}

// Evaluate computes the per-example halved mean of squares, shape [1, batch].
func (m *MeanSquared[T, B]) Evaluate(y, t *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	checkShapes(m.Name(), y, t)
	be := m.backend
	sq := be.Square(be.Sub(y.Raw(), t.Raw()))
	return tensor.New[T](be.DivScalar(be.MeanDim(sq, 0, true), T(2)), be)
}

// Gradient returns (y - t) / n.
func (m *MeanSquared[T, B]) Gradient(y, t *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	checkShapes(m.Name(), y, t)
	be := m.backend
	n := T(y.Shape()[0])
	return tensor.New[T](be.DivScalar(be.Sub(y.Raw(), t.Raw()), n), be)
}
