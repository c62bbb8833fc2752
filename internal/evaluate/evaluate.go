// Package evaluate runs a cost and a set of metrics over a sequence of
// minibatches and reports example-weighted averages.
package evaluate

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/born-ml/costs/internal/cost"
	"github.com/born-ml/costs/internal/metric"
	"github.com/born-ml/costs/internal/tensor"
)

// Errors returned by the evaluator.
var (
	ErrBatch         = errors.New("evaluate: invalid batch")
	ErrNoExamples    = errors.New("evaluate: no examples")
	ErrDuplicateName = errors.New("evaluate: duplicate metric name")
)

// Batch is one minibatch of outputs Y and targets T, both [features, batch].
// N is the number of real examples, stored in the leading columns; the rest
// is padding and is left out of every average. N == 0 means all columns.
type Batch[T tensor.Float, B tensor.Backend] struct {
	Y, T *tensor.Tensor[T, B]
	N    int
}

// Result holds averages over every evaluated example.
type Result struct {
	Examples int
	HasCost  bool
	CostName string
	Cost     float64            // mean per-example loss, valid when HasCost
	Metrics  map[string]float64 // keyed by metric value name
	Order    []string           // metric value names in evaluation order
}

// Evaluator accumulates a cost and metrics over minibatches.
// It is not safe for concurrent use: each metric owns one reusable output buffer.
type Evaluator[T tensor.Float, B tensor.Backend] struct {
	cost    cost.Cost[T, B]
	metrics []metric.Metric[T, B]
	outputs []*tensor.RawTensor
	order   []string
}

// New creates an evaluator. c may be nil to evaluate metrics only.
// Metric value names must be unique across metrics.
func New[T tensor.Float, B tensor.Backend](c cost.Cost[T, B], metrics ...metric.Metric[T, B]) (*Evaluator[T, B], error) {
	e := &Evaluator[T, B]{
		cost:    c,
		metrics: metrics,
		outputs: make([]*tensor.RawTensor, len(metrics)),
	}
	seen := make(map[string]bool)
	for i, m := range metrics {
		for _, name := range m.Names() {
			if seen[name] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
			}
			seen[name] = true
			e.order = append(e.order, name)
		}
		e.outputs[i] = m.NewOutputs()
	}
	return e, nil
}

// Names returns the metric value names in the order they are reported.
func (e *Evaluator[T, B]) Names() []string {
	return e.order
}

// Run evaluates every batch and returns the averages. Metrics of a batch run
// concurrently; the first error or a cancelled ctx stops the run.
func (e *Evaluator[T, B]) Run(ctx context.Context, batches []Batch[T, B]) (*Result, error) {
	sums := make([][]float64, len(e.metrics))
	for i, m := range e.metrics {
		sums[i] = make([]float64, len(m.Names()))
	}

	var examples int
	var costSum float64
	for bi, batch := range batches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := batchSize(batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", bi, err)
		}

		var batchCost float64
		if e.cost != nil {
			batchCost = leadingSum(e.cost.Evaluate(batch.Y, batch.T).Raw().Float64s(), n)
			costSum += batchCost
		}

		if err := e.evaluateMetrics(ctx, batch, n, sums); err != nil {
			return nil, fmt.Errorf("batch %d: %w", bi, err)
		}
		examples += n

		log.WithFields(log.Fields{
			"batch":    bi,
			"examples": n,
			"cost":     batchCost / float64(n),
		}).Debug("evaluated batch")
	}

	if examples == 0 {
		return nil, ErrNoExamples
	}

	res := &Result{
		Examples: examples,
		Metrics:  make(map[string]float64, len(e.order)),
		Order:    e.order,
	}
	if e.cost != nil {
		res.HasCost = true
		res.CostName = e.cost.Name()
		res.Cost = costSum / float64(examples)
	}
	for i, m := range e.metrics {
		for j, name := range m.Names() {
			res.Metrics[name] = sums[i][j] / float64(examples)
		}
	}
	return res, nil
}

// evaluateMetrics runs each metric on its own goroutine and adds the per-example
// values of the first n columns to sums.
func (e *Evaluator[T, B]) evaluateMetrics(ctx context.Context, batch Batch[T, B], n int, sums [][]float64) error {
	g, ctx := errgroup.WithContext(ctx)
	for i, m := range e.metrics {
		out, err := e.output(i, batch.Y.Shape()[1])
		if err != nil {
			return err
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := m.Evaluate(batch.Y, batch.T, out); err != nil {
				return err
			}
			for row := range sums[i] {
				sums[i][row] += leadingSum(out.Row(row).Float64s(), n)
			}
			return nil
		})
	}
	return g.Wait()
}

// output returns metric i's buffer, reallocating it when the batch width
// differs from the backend's configured batch size.
func (e *Evaluator[T, B]) output(i, width int) (*tensor.RawTensor, error) {
	out := e.outputs[i]
	if out.Shape()[1] == width {
		return out, nil
	}
	out, err := tensor.NewRaw(tensor.Shape{out.Shape()[0], width}, out.DType(), out.Device())
	if err != nil {
		return nil, err
	}
	e.outputs[i] = out
	return out, nil
}

func batchSize[T tensor.Float, B tensor.Backend](b Batch[T, B]) (int, error) {
	if b.Y == nil || b.T == nil {
		return 0, fmt.Errorf("%w: missing outputs or targets", ErrBatch)
	}
	shape := b.Y.Shape()
	if len(shape) != 2 {
		return 0, fmt.Errorf("%w: expected [features, batch], got %v", ErrBatch, shape)
	}
	if !shape.Equal(b.T.Shape()) {
		return 0, fmt.Errorf("%w: outputs %v and targets %v differ", ErrBatch, shape, b.T.Shape())
	}
	switch {
	case b.N == 0:
		return shape[1], nil
	case b.N < 0 || b.N > shape[1]:
		return 0, fmt.Errorf("%w: %d examples in a batch of width %d", ErrBatch, b.N, shape[1])
	default:
		return b.N, nil
	}
}

// leadingSum adds the first n values.
func leadingSum(values []float64, n int) float64 {
	var s float64
	for _, v := range values[:n] {
		s += v
	}
	return s
}
