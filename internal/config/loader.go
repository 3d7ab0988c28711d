package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const profileFileName = "difficulty.yaml"

// LoadProfiles loads difficulty profiles.
// Search order: customPath -> ~/.qmaze/configs/difficulty.yaml -> ./configs/difficulty.yaml -> embedded default
// An explicit customPath that cannot be read or parsed is an error; the
// implicit locations are skipped when unusable.
func LoadProfiles(customPath string) (*Profiles, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		p, err := ParseProfiles(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return p, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(profileFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if p, err := ParseProfiles(data); err == nil {
				return p, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", profileFileName)); err == nil {
		if p, err := ParseProfiles(data); err == nil {
			return p, nil
		}
	}

	// Use embedded default YAML
	p, err := ParseProfiles(defaultDifficultyYAML)
	if err != nil {
		return DefaultProfiles(), nil // Fallback to hardcoded if embed fails
	}
	return p, nil
}

// ParseProfiles decodes a difficulty.yaml document.
func ParseProfiles(data []byte) (*Profiles, error) {
	var f ProfileFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Difficulties) == 0 {
		return nil, fmt.Errorf("config: no difficulties defined")
	}
	return NewProfiles(f.Difficulties)
}

// HomeDir returns ~/.qmaze, or empty if the home directory is unavailable.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".qmaze")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
