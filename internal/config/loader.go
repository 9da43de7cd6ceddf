package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCatMatch loads the game configuration.
// Search order: customPath -> ~/.catmatch/configs/catmatch.yaml -> ./configs/catmatch.yaml -> embedded default.
// Fields missing from a file keep their default values. The result is validated.
func LoadCatMatch(customPath string) (CatMatchConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CatMatchConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return CatMatchConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("catmatch.yaml"), filepath.Join("configs", "catmatch.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultCatMatchYAML)
	if err != nil {
		return DefaultCatMatchConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// parse decodes YAML on top of the hard-coded defaults.
func parse(data []byte) (CatMatchConfig, error) {
	cfg := DefaultCatMatchConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CatMatchConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg CatMatchConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".catmatch", "configs", filename)
}
