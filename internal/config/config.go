// Package config loads incomectl settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = ".incomectl.yml"

// Config holds settings that flags can override.
type Config struct {
	Codec  CodecConfig  `yaml:"codec"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// CodecConfig selects the decode mode.
type CodecConfig struct {
	Mode string `yaml:"mode" validate:"oneof=strict lenient"`
}

// OutputConfig selects the encoding of re-emitted records.
type OutputConfig struct {
	Format string `yaml:"format" validate:"oneof=json yaml cbor"`
}

// LogConfig sets the minimum log level.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Codec:  CodecConfig{Mode: "strict"},
		Output: OutputConfig{Format: "json"},
		Log:    LogConfig{Level: "warn"},
	}
}

// Load reads path over the defaults. An empty path falls back to
// DefaultFile if it exists, and to Default otherwise.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return cfg, nil
			}
			return cfg, fmt.Errorf("stat config: %w", err)
		}
		path = DefaultFile
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg, keeping values the document does not
// set, and validates the result. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return cfg.Validate()
}

var validate = validator.New()

// Validate checks every setting against its allowed values.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
