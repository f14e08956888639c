// Package config loads the settings shared by the rlcalc subcommands.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-rlc/component/eseries"
	"github.com/cwbudde/algo-rlc/dsp/filter/rlc"
	"github.com/cwbudde/algo-rlc/measure/cutoff"
)

// Config holds the rlcalc configuration.
type Config struct {
	Suggest SuggestConfig `yaml:"suggest" toml:"suggest"`
	Measure MeasureConfig `yaml:"measure" toml:"measure"`
	HTTP    HTTPConfig    `yaml:"http" toml:"http"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// SuggestConfig holds the standard-value search windows.
type SuggestConfig struct {
	Count        int     `yaml:"count" toml:"count"`
	Series       string  `yaml:"series" toml:"series"` // E6, E12, E24
	ResistorMin  float64 `yaml:"resistor_min" toml:"resistor_min"`
	ResistorMax  float64 `yaml:"resistor_max" toml:"resistor_max"`
	InductorMin  float64 `yaml:"inductor_min" toml:"inductor_min"`
	InductorMax  float64 `yaml:"inductor_max" toml:"inductor_max"`
	CapacitorMin float64 `yaml:"capacitor_min" toml:"capacitor_min"`
	CapacitorMax float64 `yaml:"capacitor_max" toml:"capacitor_max"`
}

// MeasureConfig holds simulation settings; zero values pick defaults.
type MeasureConfig struct {
	SampleRate float64 `yaml:"sample_rate" toml:"sample_rate"`
	FFTSize    int     `yaml:"fft_size" toml:"fft_size"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Addr            string `yaml:"addr" toml:"addr"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec" toml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec" toml:"write_timeout_sec"`
	ShutdownSec     int    `yaml:"shutdown_timeout_sec" toml:"shutdown_timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // text, json, logfmt
}

// Default returns a fully defaulted configuration.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file. An empty path
// returns Default(). ${VAR} and ${VAR:-default} are expanded before parsing.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	data = expandEnvVars(data)

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		_, err = toml.Decode(string(data), &cfg)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Suggest.Count <= 0 {
		c.Suggest.Count = rlc.DefaultSuggestions
	}
	if c.Suggest.Series == "" {
		c.Suggest.Series = eseries.E12.String()
	}
	if c.Suggest.ResistorMax <= 0 {
		c.Suggest.ResistorMin = rlc.DefaultResistorRange.Min
		c.Suggest.ResistorMax = rlc.DefaultResistorRange.Max
	}
	if c.Suggest.InductorMax <= 0 {
		r := rlc.DefaultReactiveRange(rlc.RL)
		c.Suggest.InductorMin, c.Suggest.InductorMax = r.Min, r.Max
	}
	if c.Suggest.CapacitorMax <= 0 {
		r := rlc.DefaultReactiveRange(rlc.RC)
		c.Suggest.CapacitorMin, c.Suggest.CapacitorMax = r.Min, r.Max
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if _, err := eseries.ParseSeries(c.Suggest.Series); err != nil {
		return fmt.Errorf("suggest.series must be E6, E12 or E24, got %q", c.Suggest.Series)
	}
	windows := []struct {
		name     string
		min, max float64
	}{
		{"resistor", c.Suggest.ResistorMin, c.Suggest.ResistorMax},
		{"inductor", c.Suggest.InductorMin, c.Suggest.InductorMax},
		{"capacitor", c.Suggest.CapacitorMin, c.Suggest.CapacitorMax},
	}
	for _, w := range windows {
		if w.min <= 0 || w.min > w.max {
			return fmt.Errorf("suggest.%s_min must be positive and <= %s_max, got [%g, %g]",
				w.name, w.name, w.min, w.max)
		}
	}
	if c.Measure.SampleRate < 0 {
		return fmt.Errorf("measure.sample_rate must not be negative, got %g", c.Measure.SampleRate)
	}
	if n := c.Measure.FFTSize; n != 0 && (n < cutoff.MinFFTSize || n&(n-1) != 0) {
		return fmt.Errorf("measure.fft_size must be a power of two >= %d, got %d", cutoff.MinFFTSize, n)
	}
	switch c.Logging.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("logging.format must be text, json or logfmt, got %q", c.Logging.Format)
	}
	return nil
}

// SuggestOptions converts the search settings for topology t into options
// for rlc.Suggest.
func (c *Config) SuggestOptions(t rlc.Topology) []rlc.SuggestOption {
	series, _ := eseries.ParseSeries(c.Suggest.Series)
	opts := []rlc.SuggestOption{
		rlc.WithCount(c.Suggest.Count),
		rlc.WithSeries(series),
		rlc.WithResistorRange(c.Suggest.ResistorMin, c.Suggest.ResistorMax),
	}
	if t == rlc.RL {
		opts = append(opts, rlc.WithReactiveRange(c.Suggest.InductorMin, c.Suggest.InductorMax))
	} else {
		opts = append(opts, rlc.WithReactiveRange(c.Suggest.CapacitorMin, c.Suggest.CapacitorMax))
	}
	return opts
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
