// Package dataset loads network outputs and targets from CSV files and cuts
// them into [features, batch] minibatches.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/costs/internal/evaluate"
	"github.com/born-ml/costs/internal/tensor"
)

// ErrFormat is returned for malformed or mismatched data.
var ErrFormat = errors.New("dataset: bad format")

// Table holds one example per row and one feature (class or output unit) per column.
type Table struct {
	Header []string // nil when the file has no header row
	Rows   [][]float64
}

// NumExamples returns the number of rows.
func (t *Table) NumExamples() int {
	return len(t.Rows)
}

// NumFeatures returns the number of columns, or 0 for an empty table.
func (t *Table) NumFeatures() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// LoadCSV reads a CSV file. See ReadCSV.
func LoadCSV(filename string, header bool) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	t, err := ReadCSV(file, header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}

// ReadCSV parses numeric CSV data. When header is true the first record is
// kept as column names. Every row must have the same number of fields.
func ReadCSV(r io.Reader, header bool) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	t := &Table{}
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}

		if header && line == 1 {
			t.Header = append([]string(nil), record...)
			continue
		}

		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d, column %d: %w", ErrFormat, line, j+1, err)
			}
			row[j] = v
		}
		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrFormat)
	}
	return t, nil
}

// OneHot expands a single column of integer class labels into one-hot rows
// with the given number of classes.
func OneHot(labels *Table, classes int) (*Table, error) {
	if labels.NumFeatures() != 1 {
		return nil, fmt.Errorf("%w: labels need exactly one column, got %d", ErrFormat, labels.NumFeatures())
	}
	rows := make([][]float64, len(labels.Rows))
	for i, r := range labels.Rows {
		label := r[0]
		if label != math.Trunc(label) || label < 0 || int(label) >= classes {
			return nil, fmt.Errorf("%w: label %v at row %d is not a class in [0, %d)", ErrFormat, label, i+1, classes)
		}
		rows[i] = make([]float64, classes)
		rows[i][int(label)] = 1
	}
	return &Table{Rows: rows}, nil
}

// Batches transposes outputs y and targets t into [features, batchSize]
// minibatches in row order. The last batch is zero-padded to full width and
// its N field counts only the real examples.
func Batches[B tensor.Backend](y, t *Table, batchSize int, backend B) ([]evaluate.Batch[float64, B], error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", ErrFormat, batchSize)
	}
	if y.NumExamples() != t.NumExamples() {
		return nil, fmt.Errorf("%w: %d outputs but %d targets", ErrFormat, y.NumExamples(), t.NumExamples())
	}
	if y.NumFeatures() != t.NumFeatures() {
		return nil, fmt.Errorf("%w: outputs have %d columns but targets have %d", ErrFormat, y.NumFeatures(), t.NumFeatures())
	}

	numExamples := y.NumExamples()
	batches := make([]evaluate.Batch[float64, B], 0, (numExamples+batchSize-1)/batchSize)

	for i := 0; i < numExamples; i += batchSize {
		end := min(i+batchSize, numExamples)

		yb, err := transpose(y.Rows[i:end], batchSize, backend)
		if err != nil {
			return nil, fmt.Errorf("outputs: %w", err)
		}
		tb, err := transpose(t.Rows[i:end], batchSize, backend)
		if err != nil {
			return nil, fmt.Errorf("targets: %w", err)
		}

		batches = append(batches, evaluate.Batch[float64, B]{Y: yb, T: tb, N: end - i})
	}
	return batches, nil
}

// transpose packs rows into a [features, width] tensor, example j in column j.
func transpose[B tensor.Backend](rows [][]float64, width int, backend B) (*tensor.Tensor[float64, B], error) {
	features := len(rows[0])
	raw, err := tensor.NewRaw(tensor.Shape{features, width}, tensor.Float64, backend.Device())
	if err != nil {
		return nil, fmt.Errorf("failed to create batch tensor: %w", err)
	}

	data := raw.AsFloat64()
	for j, row := range rows {
		if len(row) != features {
			return nil, fmt.Errorf("%w: row has %d columns, want %d", ErrFormat, len(row), features)
		}
		for f, v := range row {
			data[f*width+j] = v
		}
	}
	return tensor.New[float64, B](raw, backend), nil
}
