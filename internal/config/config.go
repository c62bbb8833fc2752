// Package config loads the YAML evaluation configuration used by the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/costs/internal/backend/cpu"
	"github.com/born-ml/costs/internal/backend/gonum"
	"github.com/born-ml/costs/internal/cost"
	"github.com/born-ml/costs/internal/metric"
	"github.com/born-ml/costs/internal/parallel"
	"github.com/born-ml/costs/internal/tensor"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Backend names.
const (
	BackendCPU   = "cpu"
	BackendGonum = "gonum"
)

// Config describes one evaluation run.
type Config struct {
	Backend   string   `yaml:"backend"`
	BatchSize int      `yaml:"batch_size"`
	Parallel  bool     `yaml:"parallel"` // cpu backend only
	Cost      *Cost    `yaml:"cost"`     // null evaluates metrics only
	Metrics   []Metric `yaml:"metrics"`
}

// Cost selects a cost function by name.
type Cost struct {
	Name    string  `yaml:"name"`
	Scale   float64 `yaml:"scale"`
	UseBits bool    `yaml:"use_bits"`
}

// Metric selects a metric by name.
type Metric struct {
	Name string `yaml:"name"`
	K    int    `yaml:"k"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Backend:   BackendCPU,
		BatchSize: cpu.DefaultBatchSize,
		Parallel:  true,
		Cost:      &Cost{Name: cost.NameCrossEntropyMulti},
		Metrics: []Metric{
			{Name: metric.NameTopK, K: 5},
			{Name: metric.NameAccuracy},
		},
	}
}

// Load reads and validates a YAML file. Keys missing from the file keep
// their Default values; unknown keys are errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks names and sizes.
func (c *Config) Validate() error {
	if c.Backend != BackendCPU && c.Backend != BackendGonum {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be positive, got %d", ErrInvalidConfig, c.BatchSize)
	}
	if c.Cost != nil && !slices.Contains(cost.Names(), c.Cost.Name) {
		return fmt.Errorf("%w: unknown cost %q", ErrInvalidConfig, c.Cost.Name)
	}
	if c.Cost == nil && len(c.Metrics) == 0 {
		return fmt.Errorf("%w: nothing to evaluate", ErrInvalidConfig)
	}
	for i, m := range c.Metrics {
		if !slices.Contains(metric.Names(), m.Name) {
			return fmt.Errorf("%w: metrics[%d]: unknown metric %q", ErrInvalidConfig, i, m.Name)
		}
		if m.Name == metric.NameTopK && m.K <= 0 {
			return fmt.Errorf("%w: metrics[%d]: k must be positive, got %d", ErrInvalidConfig, i, m.K)
		}
	}
	return nil
}

// Setup is a configuration turned into live objects.
type Setup struct {
	Backend tensor.Backend
	Cost    cost.Cost[float64, tensor.Backend] // nil when no cost is configured
	Metrics []metric.Metric[float64, tensor.Backend]
}

// Build creates the backend, cost and metrics. The config must be valid.
func (c *Config) Build() (*Setup, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s := &Setup{Backend: c.backend()}
	if c.Cost != nil {
		opts := cost.Options{Scale: c.Cost.Scale, UseBits: c.Cost.UseBits}
		cf, err := cost.New[float64](c.Cost.Name, opts, s.Backend)
		if err != nil {
			return nil, err
		}
		s.Cost = cf
	}
	for _, mc := range c.Metrics {
		m, err := metric.New[float64](mc.Name, metric.Options{K: mc.K}, s.Backend)
		if err != nil {
			return nil, err
		}
		s.Metrics = append(s.Metrics, m)
	}
	return s, nil
}

func (c *Config) backend() tensor.Backend {
	if c.Backend == BackendGonum {
		return gonum.New(c.BatchSize)
	}
	par := parallel.Sequential()
	if c.Parallel {
		par = parallel.DefaultConfig()
	}
	return cpu.NewWithConfig(cpu.Config{BatchSize: c.BatchSize, Parallel: par})
}
