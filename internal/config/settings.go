// Package config loads application settings and scenario input files.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CALCKIT_LOGGING_LEVEL.
const EnvPrefix = "CALCKIT"

// DefaultConfigName is looked up in the working directory when no config
// path is given.
const DefaultConfigName = "calckit"

// Settings holds all configuration for calckit.
type Settings struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Tax     TaxConfig     `mapstructure:"tax"`
	Server  ServerConfig  `mapstructure:"server"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level"`      // debug, info, warn, error
	Format     string `mapstructure:"format"`     // json, console
	OutputFile string `mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds the default report format.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// TaxConfig points at extra tax rule files.
type TaxConfig struct {
	RulesDir string `mapstructure:"rulesDir"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "console")
	v.SetDefault("tax.rulesDir", "")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.readTimeout", 10*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
}

// Load reads settings from configPath, or from ./calckit.yaml when the path
// is empty, then applies CALCKIT_* environment overrides. A missing default
// config file is not an error; a missing explicit one is.
func Load(configPath string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &settings, nil
}

// Default returns the built-in settings.
func Default() *Settings {
	v := viper.New()
	setDefaults(v)
	var settings Settings
	// defaults always decode
	_ = v.Unmarshal(&settings)
	return &settings
}

// Validate checks enumerated values.
func (s *Settings) Validate() error {
	switch strings.ToLower(s.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", s.Logging.Level)
	}
	switch strings.ToLower(s.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", s.Logging.Format)
	}
	if s.Server.Address == "" {
		return fmt.Errorf("server address is required")
	}
	if s.Server.ReadTimeout < 0 || s.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	return nil
}
