package config

import (
	"go.uber.org/zap/zapcore"

	"github.com/ajitpratap0/coltype/pkg/block"
	"github.com/ajitpratap0/coltype/pkg/errors"
	"github.com/ajitpratap0/coltype/pkg/logger"
	"github.com/ajitpratap0/coltype/pkg/metrics"
	"github.com/ajitpratap0/coltype/pkg/types"
)

// Config is the complete coltype configuration. Sections map one-to-one to the
// packages they configure.
type Config struct {
	// Logging configures the global zap logger
	Logging logger.Config `mapstructure:"logging" yaml:"logging"`

	// Registry controls start-up resolution and sealing
	Registry RegistryConfig `mapstructure:"registry" yaml:"registry"`

	// Block sizes the block builders created by tools
	Block BlockConfig `mapstructure:"block" yaml:"block"`

	// Metrics controls Prometheus instrumentation
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// RegistryConfig contains registry start-up settings
type RegistryConfig struct {
	// Preload lists signatures resolved eagerly at start-up
	Preload []string `mapstructure:"preload" yaml:"preload"`
	// Seal seals the registry once preloading is done
	Seal bool `mapstructure:"seal" yaml:"seal"`
}

// BlockConfig mirrors block.BuilderConfig
type BlockConfig struct {
	ExpectedEntries       int `mapstructure:"expected_entries" yaml:"expected_entries"`
	ExpectedBytesPerEntry int `mapstructure:"expected_bytes_per_entry" yaml:"expected_bytes_per_entry"`
	// MaxEntrySize caps a single value in bytes
	MaxEntrySize int `mapstructure:"max_entry_size" yaml:"max_entry_size"`
}

// MetricsConfig contains metrics settings
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
}

// Default returns a configuration with production defaults
func Default() *Config {
	bc := block.DefaultBuilderConfig()
	return &Config{
		Logging: logger.DefaultConfig(),
		Registry: RegistryConfig{
			Preload: []string{},
			Seal:    false,
		},
		Block: BlockConfig{
			ExpectedEntries:       bc.ExpectedEntries,
			ExpectedBytesPerEntry: bc.ExpectedBytesPerEntry,
			MaxEntrySize:          bc.MaxEntrySize,
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: metrics.DefaultNamespace,
		},
	}
}

// Validate checks every section and returns the first problem found
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return invalid("logging.level", c.Logging.Level, "unknown log level")
	}
	switch c.Logging.Encoding {
	case "", "json", "console":
	default:
		return invalid("logging.encoding", c.Logging.Encoding, "must be json or console")
	}

	for _, s := range c.Registry.Preload {
		if _, err := types.ParseSignature(s); err != nil {
			return errors.Wrap(err, errors.ErrorTypeConfig, "registry.preload contains an invalid signature").
				WithDetail("field", "registry.preload").
				WithDetail("value", s)
		}
	}

	if c.Block.ExpectedEntries < 0 {
		return invalid("block.expected_entries", c.Block.ExpectedEntries, "cannot be negative")
	}
	if c.Block.ExpectedBytesPerEntry < 0 {
		return invalid("block.expected_bytes_per_entry", c.Block.ExpectedBytesPerEntry, "cannot be negative")
	}
	if c.Block.MaxEntrySize <= 0 || c.Block.MaxEntrySize > block.MaxRepresentableEntrySize {
		return invalid("block.max_entry_size", c.Block.MaxEntrySize, "must be between 1 and 2147483647")
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return invalid("metrics.namespace", c.Metrics.Namespace, "is required when metrics are enabled")
	}
	return nil
}

func invalid(field string, value interface{}, reason string) error {
	return errors.Newf(errors.ErrorTypeConfig, "%s %s", field, reason).
		WithDetail("field", field).
		WithDetail("value", value)
}

// BuilderConfig converts the block section for block.NewVariableWidthBlockBuilder
func (b BlockConfig) BuilderConfig() *block.BuilderConfig {
	return &block.BuilderConfig{
		ExpectedEntries:       b.ExpectedEntries,
		ExpectedBytesPerEntry: b.ExpectedBytesPerEntry,
		MaxEntrySize:          b.MaxEntrySize,
	}
}
