// Package settings loads optional user-level defaults for wgresolve.
//
// The file is looked up at $WGRESOLVE_CONFIG or
// <UserConfigDir>/wgresolve/config.yaml; a missing file yields zero
// settings. Command-line flags always win over file values.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const envConfig = "WGRESOLVE_CONFIG"

// Settings are the file-configurable defaults. Zero values mean
// "not set".
type Settings struct {
	// Class is the default network class token (same forms as --class).
	Class string `yaml:"class,omitempty"`
	// DNSServer routes lookups to an explicit upstream instead of the
	// system resolver.
	DNSServer string `yaml:"dns_server,omitempty"`
	// Overwrite switches the default merge mode to overwrite.
	Overwrite bool `yaml:"overwrite,omitempty"`
}

func DefaultPath() string {
	if fromEnv := strings.TrimSpace(os.Getenv(envConfig)); fromEnv != "" {
		return fromEnv
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return filepath.Join(".config", "wgresolve", "config.yaml")
		}
		return filepath.Join(home, ".config", "wgresolve", "config.yaml")
	}
	return filepath.Join(dir, "wgresolve", "config.yaml")
}

func LoadDefault() (Settings, error) {
	return Load(DefaultPath())
}

func Load(path string) (Settings, error) {
	var s Settings

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read settings file %q: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings file %q: %w", path, err)
	}
	return s, nil
}
