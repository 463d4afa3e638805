// Package config loads the command line configuration from an optional YAML
// file, GORTHO_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/philipparndt/gortho/internal/logging"
	"github.com/philipparndt/gortho/pkg/analysis"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "GORTHO"

// Config is the complete CLI configuration
type Config struct {
	Log    logging.Config `mapstructure:"log"`
	Report ReportConfig   `mapstructure:"report"`
	Hints  HintsConfig    `mapstructure:"hints"`
	Watch  WatchConfig    `mapstructure:"watch"`
}

// ReportConfig controls how evaluated measurements are printed
type ReportConfig struct {
	Format       string `mapstructure:"format"`
	Decimals     int    `mapstructure:"decimals"`
	ShowDisabled bool   `mapstructure:"show_disabled"`
}

// HintsConfig sizes construction geometry, in image pixels
type HintsConfig struct {
	ExtensionLength float64 `mapstructure:"extension_length"`
	ArcRadius       float64 `mapstructure:"arc_radius"`
	ArcSegments     int     `mapstructure:"arc_segments"`
}

// Style converts the settings for the hint builder
func (h HintsConfig) Style() analysis.HintStyle {
	return analysis.HintStyle{
		ExtensionLength: h.ExtensionLength,
		ArcRadius:       h.ArcRadius,
		ArcSegments:     h.ArcSegments,
	}
}

// WatchConfig controls the project file watcher
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// ReportFormats lists the accepted report.format values
var ReportFormats = []string{"table", "json", "yaml"}

func setDefaults(v *viper.Viper) {
	style := analysis.DefaultHintStyle()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_paths", []string{"stderr"})
	v.SetDefault("log.error_output_paths", []string{"stderr"})
	v.SetDefault("report.format", "table")
	v.SetDefault("report.decimals", 1)
	v.SetDefault("report.show_disabled", false)
	v.SetDefault("hints.extension_length", style.ExtensionLength)
	v.SetDefault("hints.arc_radius", style.ArcRadius)
	v.SetDefault("hints.arc_segments", style.ArcSegments)
	v.SetDefault("watch.debounce", 200*time.Millisecond)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Option customises loading, e.g. by binding command line flags
type Option func(v *viper.Viper) error

// WithFlag lets a command line flag override key when it was set
func WithFlag(key string, flag *pflag.Flag) Option {
	return func(v *viper.Viper) error {
		if flag == nil {
			return nil
		}
		return v.BindPFlag(key, flag)
	}
}

// Load reads the configuration. An empty path means defaults plus
// environment only.
func Load(path string, opts ...Option) (*Config, error) {
	v := newViper()
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration without file or environment input
func Default() *Config {
	cfg := &Config{}
	// decoding the defaults cannot fail
	_ = newDefaultsOnly().Unmarshal(cfg)
	return cfg
}

func newDefaultsOnly() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// Validate reports every invalid setting
func (c *Config) Validate() error {
	var errs []error
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	if !slices.Contains(ReportFormats, c.Report.Format) {
		errs = append(errs, fmt.Errorf("report.format must be one of %s, got %q", strings.Join(ReportFormats, ", "), c.Report.Format))
	}
	if c.Report.Decimals < 0 || c.Report.Decimals > 10 {
		errs = append(errs, fmt.Errorf("report.decimals must be between 0 and 10, got %d", c.Report.Decimals))
	}
	if c.Hints.ExtensionLength < 0 {
		errs = append(errs, fmt.Errorf("hints.extension_length must not be negative, got %g", c.Hints.ExtensionLength))
	}
	if c.Hints.ArcRadius <= 0 {
		errs = append(errs, fmt.Errorf("hints.arc_radius must be positive, got %g", c.Hints.ArcRadius))
	}
	if c.Hints.ArcSegments < 1 {
		errs = append(errs, fmt.Errorf("hints.arc_segments must be at least 1, got %d", c.Hints.ArcSegments))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce))
	}
	return errors.Join(errs...)
}
