package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/costs/internal/config"
	"github.com/born-ml/costs/internal/dataset"
	"github.com/born-ml/costs/internal/evaluate"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Labels(t *testing.T) {
	dir := t.TempDir()
	preds := writeFile(t, dir, "y.csv", "c0,c1,c2\n0.7,0.2,0.1\n0.1,0.3,0.6\n")
	labels := writeFile(t, dir, "t.csv", "label\n0\n1\n")

	y, tt, err := load(preds, labels, true, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"c0", "c1", "c2"}, y.Header)
	assert.Equal(t, [][]float64{{1, 0, 0}, {0, 1, 0}}, tt.Rows)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	preds := writeFile(t, dir, "y.csv", "0.7,0.3\n")

	_, _, err := load(preds, filepath.Join(dir, "missing.csv"), false, false)
	assert.ErrorContains(t, err, "does not exist")

	outOfRange := writeFile(t, dir, "t.csv", "2\n")
	_, _, err = load(preds, outOfRange, false, true)
	assert.ErrorIs(t, err, dataset.ErrFormat)
}

func TestPrintResult(t *testing.T) {
	dir := t.TempDir()
	preds := writeFile(t, dir, "y.csv", "0.7,0.3\n0.4,0.6\n0.2,0.8\n")
	labels := writeFile(t, dir, "t.csv", "0\n0\n1\n")

	y, tt, err := load(preds, labels, false, true)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.BatchSize = 2
	cfg.Metrics = []config.Metric{{Name: "accuracy"}}
	setup, err := cfg.Build()
	require.NoError(t, err)

	batches, err := dataset.Batches(y, tt, cfg.BatchSize, setup.Backend)
	require.NoError(t, err)
	ev, err := evaluate.New(setup.Cost, setup.Metrics...)
	require.NoError(t, err)
	res, err := ev.Run(context.Background(), batches)
	require.NoError(t, err)

	var buf bytes.Buffer
	printResult(&buf, res, setup.Backend.Name())

	out := buf.String()
	assert.Contains(t, out, "3 examples, CPU backend")
	assert.Contains(t, out, "CrossEntropyMulti")
	assert.Contains(t, out, "Accuracy")
	assert.Contains(t, out, "0.666667")
}
