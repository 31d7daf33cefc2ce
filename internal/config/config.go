// Package config loads the settings of the svgbridge command,
// from a YAML file and environment variables.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
	File   string `yaml:"file"`   // rotated log file, optional
}

type BridgeConfig struct {
	ErrorMode string `yaml:"error_mode"` // "ignore", "warn" or "strict"
}

type AccuracyConfig struct {
	ReferenceDir string  `yaml:"reference_dir"`
	SaveDir      string  `yaml:"save_dir"`
	Workers      int     `yaml:"workers"`
	CanvasWidth  float64 `yaml:"canvas_width"`
	CanvasHeight float64 `yaml:"canvas_height"`
	Precision    int     `yaml:"precision"`
	Comment      string  `yaml:"comment"`
}

type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Bridge   BridgeConfig   `yaml:"bridge"`
	Accuracy AccuracyConfig `yaml:"accuracy"`
}

// Defaults returns the settings used when no file nor
// environment variable is provided.
func Defaults() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Bridge:  BridgeConfig{ErrorMode: "warn"},
		Accuracy: AccuracyConfig{
			ReferenceDir: "testdata",
			CanvasWidth:  300,
			CanvasHeight: 400,
			Precision:    4,
		},
	}
}

// Env var names used as overrides.
const (
	EnvLogLevel     = "SVGBRIDGE_LOG_LEVEL"
	EnvLogFormat    = "SVGBRIDGE_LOG_FORMAT"
	EnvLogFile      = "SVGBRIDGE_LOG_FILE"
	EnvErrorMode    = "SVGBRIDGE_ERROR_MODE"
	EnvReferenceDir = "SVGBRIDGE_REFERENCE_DIR"
	EnvSaveDir      = "SVGBRIDGE_SAVE_DIR"
	EnvWorkers      = "SVGBRIDGE_WORKERS"
)

// Load returns the defaults, overridden by the YAML file at `path`
// (if not empty), then by the environment.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "reading config")
		}
		// fields absent from the file keep their default
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parsing config %s", path)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes `cfg` as YAML.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func applyEnvOverrides(cfg *Config) error {
	for _, o := range [...]struct {
		env string
		dst *string
	}{
		{EnvLogLevel, &cfg.Logging.Level},
		{EnvLogFormat, &cfg.Logging.Format},
		{EnvLogFile, &cfg.Logging.File},
		{EnvErrorMode, &cfg.Bridge.ErrorMode},
		{EnvReferenceDir, &cfg.Accuracy.ReferenceDir},
		{EnvSaveDir, &cfg.Accuracy.SaveDir},
	} {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.dst = v
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", EnvWorkers)
		}
		cfg.Accuracy.Workers = n
	}
	return nil
}
