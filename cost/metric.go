// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cost

import (
	"github.com/born-ml/costs/internal/metric"
	"github.com/born-ml/costs/tensor"
)

// Metric is a non-differentiable evaluation measure.
type Metric[T tensor.Float, B tensor.Backend] = metric.Metric[T, B]

// UnimplementedMetric can be embedded in custom metrics for a no-op Gradient.
type UnimplementedMetric[T tensor.Float, B tensor.Backend] = metric.UnimplementedMetric[T, B]

// MetricOptions selects metric parameters when building a metric by name.
type MetricOptions = metric.Options

// Metric implementations.
type (
	TopKMisclassification[T tensor.Float, B tensor.Backend] = metric.TopKMisclassification[T, B]
	Misclassification[T tensor.Float, B tensor.Backend]     = metric.Misclassification[T, B]
	Accuracy[T tensor.Float, B tensor.Backend]              = metric.Accuracy[T, B]
)

// Registered metric names.
const (
	NameTopK              = metric.NameTopK
	NameMisclassification = metric.NameMisclassification
	NameAccuracy          = metric.NameAccuracy
)

// Metric errors.
var (
	ErrNotImplemented = metric.ErrNotImplemented
	ErrShape          = metric.ErrShape
	ErrUnknownMetric  = metric.ErrUnknownMetric
)

// NewMetric builds a metric by name: topk, misclassification or accuracy.
func NewMetric[T tensor.Float, B tensor.Backend](name string, opts MetricOptions, backend B) (Metric[T, B], error) {
	return metric.New[T, B](name, opts, backend)
}

// NewTopKMisclassification creates the top-k metric.
func NewTopKMisclassification[T tensor.Float, B tensor.Backend](backend B, k int) *TopKMisclassification[T, B] {
	return metric.NewTopKMisclassification[T](backend, k)
}

// NewMisclassification creates the top-1 misclassification metric.
func NewMisclassification[T tensor.Float, B tensor.Backend](backend B) *Misclassification[T, B] {
	return metric.NewMisclassification[T](backend)
}

// NewAccuracy creates the accuracy metric.
func NewAccuracy[T tensor.Float, B tensor.Backend](backend B) *Accuracy[T, B] {
	return metric.NewAccuracy[T](backend)
}
