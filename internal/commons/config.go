package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"radhecafe/internal/config"
)

// LoadConfig reads configuration from a yaml file, falling back to the
// env-based loader when no path is given. File values layer over the
// defaults and environment variables layer over the file, so env always
// wins when both name a setting.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := config.Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
