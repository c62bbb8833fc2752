// Package cost implements the cost functions used to train networks and the
// gradients fed back into backpropagation.
//
// All tensors use the [features, batch] layout: each column is one example
// and every cost reduces along axis 0, producing one loss value per example
// with shape [1, batch].
//
// Cost functions hold no state besides their configuration and the backend
// they were constructed with. The backend is always passed explicitly:
//
//	backend := cpu.New()
//	ce := cost.NewCrossEntropyMulti[float32](backend, cost.MultiConfig{UseBits: true})
//	loss := ce.Evaluate(y, t)   // [1, batch], in bits
//	delta := ce.Gradient(y, t)  // same shape as y
//
// # Shortcut derivatives
//
// CrossEntropyBinary and CrossEntropyMulti return scale*(y - t) as their
// gradient. That is the derivative of the cost with respect to the
// pre-activation of the output layer, not with respect to y, and is only
// correct when the output activation is a sigmoid (binary) or a softmax
// along axis 0 (multiclass). The output layer must skip its own activation
// derivative when paired with these costs.
package cost
