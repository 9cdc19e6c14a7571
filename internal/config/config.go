// Package config loads and validates the benchmark configuration of
// topnbench.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	topnselect "github.com/axt/topnselect"
	topnerrors "github.com/axt/topnselect/errors"
	"github.com/axt/topnselect/fixture"
)

// BenchConfig holds everything a benchmark run needs.
type BenchConfig struct {
	Variants []string      `yaml:"variants"`
	Sweep    SweepConfig   `yaml:"sweep"`
	Trials   TrialConfig   `yaml:"trials"`
	Selector SelectorTune  `yaml:"selector"`
	Fixture  FixtureConfig `yaml:"fixture"`
	Output   OutputConfig  `yaml:"output"`
}

// SweepConfig describes the item counts visited by a run.
type SweepConfig struct {
	MaxItems int `yaml:"max_items"`
	Step     int `yaml:"step"`
	TopN     int `yaml:"top_n"`
}

// TrialConfig holds the per-size run counts.
type TrialConfig struct {
	Warmup int `yaml:"warmup"`
	Runs   int `yaml:"runs"`
}

// SelectorTune holds tuning knobs passed to every selector.
type SelectorTune struct {
	LoadFactor        float64 `yaml:"load_factor"`
	MinBufferCapacity int     `yaml:"min_buffer_capacity"`
	InitialCapacity   int     `yaml:"initial_capacity"` // 0 = derive from item count
}

// FixtureConfig describes the benchmark input.
type FixtureConfig struct {
	Path   string `yaml:"path"` // load from here when set and present, else generate
	Seed   uint64 `yaml:"seed"`
	Source string `yaml:"source"`
	Levels int    `yaml:"levels"`
}

// OutputConfig selects where results go besides the console table.
type OutputConfig struct {
	MetricsFile string `yaml:"metrics_file"` // Prometheus textfile, empty to skip
}

// Default returns the stock benchmark configuration: one million
// items swept in 25 steps, top 1000, 30 warmup and 50 timed runs, and a
// fixed-buffer load factor of 10.
func Default() *BenchConfig {
	variants := topnselect.Variants()
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.String()
	}
	return &BenchConfig{
		Variants: names,
		Sweep: SweepConfig{
			MaxItems: 1_000_000,
			Step:     1_000_000 / 25,
			TopN:     1000,
		},
		Trials: TrialConfig{
			Warmup: 30,
			Runs:   50,
		},
		Selector: SelectorTune{
			LoadFactor:        10,
			MinBufferCapacity: 10,
		},
		Fixture: FixtureConfig{
			Seed:   1,
			Source: fixture.SourceRandom.String(),
		},
	}
}

// Load reads a YAML file on top of Default. Fields missing from the file keep
// their default values.
func Load(path string) (*BenchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *BenchConfig) Validate() error {
	if len(c.Variants) == 0 {
		return fmt.Errorf("%w: no variants", topnerrors.ErrInvalidConfig)
	}
	for _, name := range c.Variants {
		if _, err := topnselect.ParseVariant(name); err != nil {
			return fmt.Errorf("%w: %w", topnerrors.ErrInvalidConfig, err)
		}
	}
	if c.Sweep.MaxItems <= 0 {
		return fmt.Errorf("%w: sweep.max_items must be positive", topnerrors.ErrInvalidConfig)
	}
	if c.Sweep.Step <= 0 || c.Sweep.Step >= c.Sweep.MaxItems {
		return fmt.Errorf("%w: sweep.step must be in (0, max_items)", topnerrors.ErrInvalidConfig)
	}
	if c.Sweep.TopN < 0 {
		return fmt.Errorf("%w: sweep.top_n must not be negative", topnerrors.ErrInvalidConfig)
	}
	if c.Trials.Warmup < 0 {
		return fmt.Errorf("%w: trials.warmup must not be negative", topnerrors.ErrInvalidConfig)
	}
	if c.Trials.Runs <= 0 {
		return fmt.Errorf("%w: trials.runs must be positive", topnerrors.ErrInvalidConfig)
	}
	if c.Selector.LoadFactor <= 0 {
		return fmt.Errorf("%w: selector.load_factor must be positive", topnerrors.ErrInvalidConfig)
	}
	if c.Selector.MinBufferCapacity < 0 || c.Selector.InitialCapacity < 0 {
		return fmt.Errorf("%w: selector capacities must not be negative", topnerrors.ErrInvalidConfig)
	}
	if _, ok := fixture.ParseSource(c.Fixture.Source); !ok {
		return fmt.Errorf("%w: unknown fixture.source %q", topnerrors.ErrInvalidConfig, c.Fixture.Source)
	}
	if c.Fixture.Levels < 0 {
		return fmt.Errorf("%w: fixture.levels must not be negative", topnerrors.ErrInvalidConfig)
	}
	return nil
}

// ParsedVariants returns the configured variants. Call Validate first.
func (c *BenchConfig) ParsedVariants() ([]topnselect.Variant, error) {
	out := make([]topnselect.Variant, 0, len(c.Variants))
	for _, name := range c.Variants {
		v, err := topnselect.ParseVariant(name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// SelectorOptions returns the tuning options shared by all variants.
func (c *BenchConfig) SelectorOptions() []topnselect.Option {
	opts := []topnselect.Option{
		topnselect.WithLoadFactor(c.Selector.LoadFactor),
		topnselect.WithMinBufferCapacity(c.Selector.MinBufferCapacity),
	}
	if c.Selector.InitialCapacity > 0 {
		opts = append(opts, topnselect.WithInitialCapacity(c.Selector.InitialCapacity))
	}
	return opts
}

// FixtureOptions returns the generation options for the configured fixture.
func (c *BenchConfig) FixtureOptions() []fixture.GenerateOption {
	source, _ := fixture.ParseSource(c.Fixture.Source)
	return []fixture.GenerateOption{
		fixture.WithSeed(c.Fixture.Seed),
		fixture.WithSource(source),
		fixture.WithLevels(c.Fixture.Levels),
	}
}
