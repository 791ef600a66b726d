// Package config loads the settings of a pipeline from a YAML file, a .env file and the environment.
package config

import (
	"slices"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding the settings, as in PIPELINE_LOG_LEVEL.
const EnvPrefix = "PIPELINE"

// Config holds the settings of a pipeline.
type Config struct {
	// GeneratorLimit caps the values one call pulls from lazy sources. Zero disables it.
	GeneratorLimit int    `yaml:"generator_limit" mapstructure:"generator_limit"`
	LogLevel       string `yaml:"log_level" mapstructure:"log_level"`
	LogFormat      string `yaml:"log_format" mapstructure:"log_format"`
	// DrawFile receives the DOT graph of the last chain when set.
	DrawFile string `yaml:"draw_file" mapstructure:"draw_file"`
	Measure  bool   `yaml:"measure" mapstructure:"measure"`
}

var keys = []string{"generator_limit", "log_level", "log_format", "draw_file", "measure"}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.GeneratorLimit < 0 {
		return errors.Errorf("generator_limit must not be negative (got: %d)", c.GeneratorLimit)
	}
	validLevels := []string{"trace", "debug", "info", "warn", "error", "disabled"}
	if !slices.Contains(validLevels, c.LogLevel) {
		return errors.Errorf("log_level must be one of %v (got: %s)", validLevels, c.LogLevel)
	}
	validFormats := []string{"console", "json"}
	if !slices.Contains(validFormats, c.LogFormat) {
		return errors.Errorf("log_format must be one of %v (got: %s)", validFormats, c.LogFormat)
	}

	return nil
}

// Load reads the configuration. Both files are optional: file is a YAML file, envFile
// a .env file whose variables are exported before the environment is read.
// Environment variables take precedence over the YAML file.
// Defaults are applied and the result is validated.
func Load(file, envFile string) (Config, error) {
	var cfg Config

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return cfg, errors.Wrapf(err, "unable to load env file %s", envFile)
		}
	}

	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return cfg, errors.Wrapf(err, "unable to read config file %s", file)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return cfg, errors.Wrapf(err, "unable to bind %s", key)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "unable to unmarshal config")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}
