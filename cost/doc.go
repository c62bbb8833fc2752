// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cost provides cost functions and evaluation metrics for training
// and validating neural networks.
//
// # Costs
//
// A cost maps network outputs y and targets t, both [features, batch], to a
// per-example loss of shape [1, batch] and provides the gradient with respect
// to y:
//   - CrossEntropyBinary: for sigmoid outputs, gradient shortcut scale*(y-t)
//   - CrossEntropyMulti: for softmax outputs, optionally in bits
//   - SumSquared and MeanSquared: for linear outputs
//
// # Metrics
//
// A metric reports plain numbers and never contributes a gradient:
//   - TopKMisclassification: log loss, top-1 and top-k misclassification
//   - Misclassification and Accuracy: arg-max comparison against one-hot targets
//
// Metrics write per-example values into a caller-owned buffer from NewOutputs
// and return the batch means.
//
// # Basic Usage
//
//	backend := cpu.New()
//	ce := cost.NewCrossEntropyMulti[float32](backend, cost.MultiConfig{})
//	loss := ce.Evaluate(y, t)      // [1, batch]
//	delta := ce.Gradient(y, t)     // shape of y
//
//	topk := cost.NewTopKMisclassification[float32](backend, 5)
//	out := topk.NewOutputs()
//	means, err := topk.Evaluate(y, t, out) // [LogLoss, Top1Misclass, Top5Misclass]
package cost
