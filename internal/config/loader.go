package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when CONFIG_PATH is unset. A missing default file is
// not an error; the environment and env-default tags still apply.
const DefaultPath = "./config.yaml"

// Load reads the YAML file named by CONFIG_PATH (or DefaultPath), applies
// environment overrides and validates the result. Environment variables
// win over the file, which wins over defaults.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		return load(DefaultPath, false)
	}
	return load(path, true)
}

func load(path string, required bool) (*Config, error) {
	var cfg Config

	err := cleanenv.ReadConfig(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !required {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Usage returns a flag.Usage compatible function listing every supported
// environment variable with its default.
func Usage(w io.Writer) func() {
	header := "Baby tracker configuration (CONFIG_PATH selects the YAML file):"
	return cleanenv.FUsage(w, &Config{}, &header)
}
