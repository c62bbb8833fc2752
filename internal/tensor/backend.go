package tensor

// Backend defines the capability set cost functions and metrics are written against.
// Backends handle the actual computation; costs never touch tensor storage directly.
//
// Conventions shared by all implementations:
//   - binary operations broadcast NumPy-style, so a [1, batch] row combines with [k, batch];
//   - scalar arguments have the Go type matching the tensor's dtype (float32 or float64);
//   - comparisons return Bool tensors, Argmax returns Int32 indices;
//   - shape and dtype violations panic with an "op: detail" message.
//
// Implementations:
//   - internal/backend/cpu: pure Go
//   - internal/backend/gonum: gonum/mat dense matrices (float64)
type Backend interface {
	// Element-wise binary operations
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	AddScalar(x *RawTensor, scalar any) *RawTensor  // x + s
	SubScalar(x *RawTensor, scalar any) *RawTensor  // x - s
	MulScalar(x *RawTensor, scalar any) *RawTensor  // x * s
	DivScalar(x *RawTensor, scalar any) *RawTensor  // x / s
	RSubScalar(scalar any, x *RawTensor) *RawTensor // s - x

	// Math operations (element-wise)
	Square(x *RawTensor) *RawTensor
	Exp(x *RawTensor) *RawTensor
	SafeLog(x *RawTensor) *RawTensor // log clamped away from zero, never -Inf or NaN

	// Activation functions
	Sigmoid(x *RawTensor) *RawTensor
	Softmax(x *RawTensor, dim int) *RawTensor

	// Comparison operations (element-wise, return bool tensor)
	Greater(a, b *RawTensor) *RawTensor    // a > b
	LowerEqual(a, b *RawTensor) *RawTensor // a <= b
	Equal(a, b *RawTensor) *RawTensor      // a == b
	NotEqual(a, b *RawTensor) *RawTensor   // a != b

	// Type conversion
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Reduction operations
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	MaxDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	Argmax(x *RawTensor, dim int) *RawTensor

	// IOBuf allocates a zeroed [rows, BatchSize()] buffer.
	IOBuf(rows int, dtype DataType) *RawTensor
	// BatchSize is the minibatch width (number of columns) this backend is configured for.
	BatchSize() int

	// Metadata
	Name() string
	Device() Device
}
