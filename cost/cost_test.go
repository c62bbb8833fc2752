// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cost_test

import (
	"math"
	"testing"

	"github.com/born-ml/costs/backend/cpu"
	"github.com/born-ml/costs/backend/gonum"
	"github.com/born-ml/costs/cost"
	"github.com/born-ml/costs/tensor"
)

// TestPublicAPI runs a cost and a metric through the public packages only.
func TestPublicAPI(t *testing.T) {
	backends := map[string]tensor.Backend{
		"cpu":   cpu.NewWithConfig(cpu.Config{BatchSize: 2, Parallel: cpu.Sequential()}),
		"gonum": gonum.New(2),
	}
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			y, err := tensor.FromSlice([]float64{0.7, 0.4, 0.3, 0.6}, tensor.Shape{2, 2}, backend)
			if err != nil {
				t.Fatalf("FromSlice failed: %v", err)
			}
			target, err := tensor.FromSlice([]float64{1, 1, 0, 0}, tensor.Shape{2, 2}, backend)
			if err != nil {
				t.Fatalf("FromSlice failed: %v", err)
			}

			ce, err := cost.New[float64](cost.NameCrossEntropyMulti, cost.Options{}, backend)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			want := -(math.Log(0.7) + math.Log(0.4)) / 2
			if got := cost.BatchMean(ce.Evaluate(y, target)); math.Abs(got-want) > 1e-12 {
				t.Errorf("BatchMean = %v, want %v", got, want)
			}

			acc := cost.NewAccuracy[float64](backend)
			means, err := acc.Evaluate(y, target, acc.NewOutputs())
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if means[0] != 0.5 {
				t.Errorf("Accuracy = %v, want 0.5", means[0])
			}
		})
	}
}
