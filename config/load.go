package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Load builds the configuration from defaults, the TOML file at path (if
// any) and WEBJARCORS_* environment variables, in that order.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}
	return Parse(data, nil)
}

// Parse decodes data over the defaults, applies environ (nil means the
// process environment) and validates the result. Unknown TOML keys are
// rejected.
func Parse(data []byte, environ map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	if len(data) > 0 {
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, fmt.Errorf("config: unknown keys:\n%s", strict.String())
			}
			return nil, fmt.Errorf("config: decoding toml: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return nil, fmt.Errorf("config: applying environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders cfg as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	return toml.Marshal(cfg)
}
