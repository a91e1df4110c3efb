package config

import (
	"errors"
	"fmt"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"math"
	"strings"
	"time"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "EZPOOL"

// Output formats accepted for the bench report.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Config represents the ezpool-bench configuration.
type Config struct {
	Workers     int           `mapstructure:"workers"`
	Jobs        int           `mapstructure:"jobs"`
	JobDuration time.Duration `mapstructure:"job-duration"`
	Producers   int           `mapstructure:"producers"`
	LogLevel    string        `mapstructure:"log-level"`
	Output      string        `mapstructure:"output"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Workers:     4,
		Jobs:        8,
		JobDuration: 10 * time.Millisecond,
		Producers:   1,
		LogLevel:    "info",
		Output:      OutputText,
	}
}

// Load resolves the configuration from, in increasing order of precedence: defaults,
// the config file at path (if path is not empty), EZPOOL_* environment variables and
// flags explicitly set on flags (if flags is not nil). The result is validated.
func Load(flags *pflag.FlagSet, path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("workers", def.Workers)
	v.SetDefault("jobs", def.Jobs)
	v.SetDefault("job-duration", def.JobDuration)
	v.SetDefault("producers", def.Producers)
	v.SetDefault("log-level", def.LogLevel)
	v.SetDefault("output", def.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first invalid setting in c.
func (c *Config) Validate() error {
	if c.Workers < 1 || c.Workers > math.MaxUint16 {
		return fmt.Errorf("invalid workers %d: must be between 1 and %d", c.Workers, math.MaxUint16)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("invalid jobs %d: must not be negative", c.Jobs)
	}
	if c.JobDuration < 0 {
		return fmt.Errorf("invalid job-duration %s: must not be negative", c.JobDuration)
	}
	if c.Producers < 1 {
		return fmt.Errorf("invalid producers %d: must be at least 1", c.Producers)
	}
	switch c.Output {
	case OutputText, OutputYAML:
	default:
		return errors.New("invalid output " + c.Output + ": must be text or yaml")
	}
	return nil
}
