// Package config provides configuration loading and validation for rbkeys.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/rbkeys/pkg/render"
)

// Sentinel validation errors.
var (
	ErrInvalidFormat     = errors.New("invalid render format")
	ErrInvalidColorMode  = errors.New("invalid color mode")
	ErrInvalidIndent     = errors.New("render indent must be positive")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidLogFormat  = errors.New("invalid log format")
	ErrInvalidBenchSize  = errors.New("bench sizes must be positive")
	ErrInvalidBenchOrder = errors.New("invalid bench key order")
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all configuration for rbkeys.
type Config struct {
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Bench   BenchConfig   `mapstructure:"bench"`
}

// RenderConfig controls how the tree is printed.
type RenderConfig struct {
	Format string `mapstructure:"format"`
	Color  string `mapstructure:"color"`
	Indent int    `mapstructure:"indent"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds telemetry export settings.
type MetricsConfig struct {
	// Addr is the listen address of the Prometheus /metrics endpoint.
	// Empty disables the endpoint.
	Addr         string `mapstructure:"addr"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	// OTLPHeaders is a "key=value,key=value" list sent with OTLP exports.
	OTLPHeaders  string `mapstructure:"otlp_headers"`
	Environment  string `mapstructure:"environment"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
}

// BenchConfig holds defaults for the bench command.
type BenchConfig struct {
	Sizes  []int    `mapstructure:"sizes"`
	Orders []string `mapstructure:"orders"`
	Seed   int64    `mapstructure:"seed"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("rbkeys")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("$HOME/.rbkeys")
	}

	viperCfg.SetEnvPrefix("RBKEYS")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Format: DefaultRenderFormat,
			Color:  DefaultRenderColor,
			Indent: DefaultRenderIndent,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Bench: BenchConfig{
			Sizes:  slices.Clone(DefaultBenchSizes),
			Orders: slices.Clone(DefaultBenchOrders),
			Seed:   DefaultBenchSeed,
		},
	}
}

func setDefaults(viperCfg *viper.Viper) {
	def := Default()

	viperCfg.SetDefault("render.format", def.Render.Format)
	viperCfg.SetDefault("render.color", def.Render.Color)
	viperCfg.SetDefault("render.indent", def.Render.Indent)

	viperCfg.SetDefault("logging.level", def.Logging.Level)
	viperCfg.SetDefault("logging.format", def.Logging.Format)

	viperCfg.SetDefault("metrics.addr", "")
	viperCfg.SetDefault("metrics.otlp_endpoint", "")
	viperCfg.SetDefault("metrics.otlp_headers", "")
	viperCfg.SetDefault("metrics.otlp_insecure", false)
	viperCfg.SetDefault("metrics.environment", "")

	viperCfg.SetDefault("bench.sizes", def.Bench.Sizes)
	viperCfg.SetDefault("bench.orders", def.Bench.Orders)
	viperCfg.SetDefault("bench.seed", def.Bench.Seed)
}

// Validate checks a configuration assembled outside LoadConfig, for example
// after command-line flags were applied.
func (c *Config) Validate() error {
	return validateConfig(c)
}

func validateConfig(config *Config) error {
	if _, err := render.ParseFormat(config.Render.Format); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, config.Render.Format)
	}

	switch config.Render.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColorMode, config.Render.Color)
	}

	if config.Render.Indent <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIndent, config.Render.Indent)
	}

	if _, err := config.Logging.SlogLevel(); err != nil {
		return err
	}

	switch config.Logging.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	for _, size := range config.Bench.Sizes {
		if size <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidBenchSize, size)
		}
	}

	for _, order := range config.Bench.Orders {
		if !slices.Contains(DefaultBenchOrders, order) {
			return fmt.Errorf("%w: %q", ErrInvalidBenchOrder, order)
		}
	}

	return nil
}

// SlogLevel parses the configured level name.
func (lc LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(lc.Level))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, lc.Level)
	}

	return level, nil
}

// UseColor resolves the color mode for an output that is or is not a terminal.
func (rc RenderConfig) UseColor(terminal bool) bool {
	switch rc.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}
