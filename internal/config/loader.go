package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "concentration.yaml"

// LoadConcentration loads the concentration configuration.
// Search order: customPath -> ~/.concentration/configs/concentration.yaml ->
// ./configs/concentration.yaml -> embedded default.
// Files are decoded over the defaults, so a file may set only some keys.
// An explicit customPath must exist, parse and validate; the other locations
// are skipped when unusable.
func LoadConcentration(customPath string) (ConcentrationConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ConcentrationConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return ConcentrationConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultConcentrationYAML)
	if err != nil {
		return DefaultConcentrationConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (ConcentrationConfig, error) {
	cfg := DefaultConcentrationConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ConcentrationConfig{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return ConcentrationConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".concentration", "configs", filename)
}
