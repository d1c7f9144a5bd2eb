// Package config loads the wick CLI configuration file.
//
// Every field has a default, so a config file only needs the keys it
// changes:
//
//	mode: full
//	format: tensor
//	workers: 4
//	log:
//	  mode: development
//	  level: debug
//	telemetry:
//	  enabled: true
//	  service: wick
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the CLI configuration.
type Config struct {
	Mode      string    `yaml:"mode" validate:"oneof=full general"`
	Format    string    `yaml:"format" validate:"oneof=latex tensor json"`
	Workers   int       `yaml:"workers" validate:"gte=0"` // 0 means one per CPU
	Log       Log       `yaml:"log"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// Log selects the zap logger preset and level.
type Log struct {
	Mode  string `yaml:"mode" validate:"oneof=development production"`
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Telemetry configures the stdout OpenTelemetry exporters.
type Telemetry struct {
	Enabled bool   `yaml:"enabled"`
	Service string `yaml:"service" validate:"required"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Mode:    "general",
		Format:  "latex",
		Workers: 0,
		Log: Log{
			Mode:  "production",
			Level: "info",
		},
		Telemetry: Telemetry{
			Service: "wick",
		},
	}
}

// Load reads path over Default and validates the result. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field against its allowed values.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Errorf("invalid %s %q: must satisfy %s", fe.Namespace(), fmt.Sprint(fe.Value()), constraint(fe)))
	}
	return errors.Join(msgs...)
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
