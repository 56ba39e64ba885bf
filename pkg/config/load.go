package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file probed in the working directory.
const DefaultFileName = ".skel.yml"

// maxConfigFileSize rejects pathological config files early.
const maxConfigFileSize = 1 << 20

// Load loads configuration from the specified path or defaults.
//
// If configPath is provided, that file must exist and parse. Otherwise
// .skel.yml is probed in the working directory, and a missing file falls
// back to the zero config (all defaults false, no steps).
//
// Parameters:
//   - configPath: path to a config file, or empty to probe the working directory
//   - workDir: working directory for the probe; empty means the current directory
//
// Returns:
//   - *Config: the loaded configuration, never nil on success
//   - error: any error encountered while reading or parsing
func Load(configPath, workDir string) (*Config, error) {
	if configPath != "" {
		cfg, err := loadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return cfg, nil
	}

	probe := filepath.Join(workDir, DefaultFileName)
	if _, err := os.Stat(probe); err == nil {
		cfg, err := loadFile(probe)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return cfg, nil
	}

	return &Config{}, nil
}

// loadFile reads and parses one YAML config file.
//
// Parameters:
//   - path: path to the file
//
// Returns:
//   - *Config: the parsed configuration
//   - error: read, size, or parse error
func loadFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return &cfg, nil
}

// CheckMinVersion validates the running version against the config's pin.
//
// Development builds ("dev") always pass so a source checkout can use any
// config. Versions are compared as semver; both sides tolerate a missing
// "v" prefix.
//
// Parameters:
//   - cfg: the loaded configuration
//   - current: the running tool version (e.g. "1.4.0" or "dev")
//
// Returns:
//   - error: nil when the version satisfies the pin, otherwise a
//     description of the mismatch
func CheckMinVersion(cfg *Config, current string) error {
	if cfg.MinVersion == "" || current == "dev" {
		return nil
	}

	minV := canonicalVersion(cfg.MinVersion)
	curV := canonicalVersion(current)

	if !semver.IsValid(minV) {
		return fmt.Errorf("invalid min_version %q in config", cfg.MinVersion)
	}
	if !semver.IsValid(curV) {
		return fmt.Errorf("cannot compare tool version %q against min_version %q", current, cfg.MinVersion)
	}
	if semver.Compare(curV, minV) < 0 {
		return fmt.Errorf("config requires version %s or newer, running %s", cfg.MinVersion, current)
	}
	return nil
}

// canonicalVersion normalizes a version string for semver comparison.
//
// Parameters:
//   - v: version with or without the leading "v"
//
// Returns:
//   - string: version with the leading "v" the semver package expects
func canonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}
