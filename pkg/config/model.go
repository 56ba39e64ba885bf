// Package config handles the optional .skel.yml configuration file.
// The config seeds run-flag defaults, names the log file, declares an
// ordered environment block for task steps, and may pin a minimum tool
// version. A missing config file is not an error; built-in defaults apply.
package config

import (
	"fmt"
	"os"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/skelgo/skel/pkg/options"
)

// Config is the root configuration structure.
type Config struct {
	// MinVersion pins the minimum tool version this config requires.
	// Semver with or without the leading "v"; empty disables the check.
	MinVersion string `yaml:"min_version,omitempty"`

	// Defaults seeds the run flags; explicitly set CLI flags override them.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// LogPath overrides the default <binary>.log location.
	LogPath string `yaml:"log_path,omitempty"`

	// Env declares environment variables for task steps, in declaration
	// order. Later entries may reference earlier ones via $NAME.
	Env EnvMap `yaml:"env,omitempty"`

	// Task describes the steps the shipped main routine runs.
	Task TaskCfg `yaml:"task,omitempty"`
}

// Defaults mirrors the run flags as config-file defaults.
type Defaults struct {
	Quiet   bool `yaml:"quiet,omitempty"`
	Verbose bool `yaml:"verbose,omitempty"`
	Debug   bool `yaml:"debug,omitempty"`
	Log     bool `yaml:"log,omitempty"`
	NoExec  bool `yaml:"noexec,omitempty"`
}

// TaskCfg configures the shipped main routine.
type TaskCfg struct {
	// Timeout is the per-step limit in seconds; 0 disables it.
	Timeout int `yaml:"timeout,omitempty"`

	// Steps are shell command strings run sequentially.
	Steps []string `yaml:"steps,omitempty"`
}

// Options converts the config defaults into a run configuration.
//
// Returns:
//   - options.Options: Default flag values to overlay with CLI flags
func (c *Config) Options() options.Options {
	return options.Options{
		Quiet:    c.Defaults.Quiet,
		Verbose:  c.Defaults.Verbose,
		Debug:    c.Defaults.Debug,
		PrintLog: c.Defaults.Log,
		NoExec:   c.Defaults.NoExec,
	}
}

// EnvMap is an insertion-ordered environment variable mapping.
//
// YAML mappings lose declaration order when decoded into a Go map, but
// env entries must be applied in order because later values may reference
// earlier ones. EnvMap decodes the mapping node by hand into an ordered
// map to preserve that order.
type EnvMap struct {
	vars *orderedmap.OrderedMap
}

// UnmarshalYAML decodes the env block preserving declaration order.
//
// Parameters:
//   - value: The YAML node for the env mapping
//
// Returns:
//   - error: Error if the node is not a mapping of scalar values
func (e *EnvMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("env must be a mapping of NAME: value")
	}

	vars := orderedmap.New()
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]
		if valNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("env value for %q must be a scalar", keyNode.Value)
		}
		vars.Set(keyNode.Value, valNode.Value)
	}
	e.vars = vars
	return nil
}

// Len returns the number of declared variables.
//
// Returns:
//   - int: Number of env entries, 0 for an absent block
func (e EnvMap) Len() int {
	if e.vars == nil {
		return 0
	}
	return len(e.vars.Keys())
}

// Expand resolves the env block into KEY=VALUE pairs in declaration order.
//
// It performs the following operations:
//   - Walks entries in the order they were declared
//   - Expands $NAME references against earlier entries first, then the
//     process environment
//
// Returns:
//   - []string: KEY=VALUE pairs ready for exec environments
func (e EnvMap) Expand() []string {
	if e.vars == nil {
		return nil
	}

	resolved := make(map[string]string, e.Len())
	pairs := make([]string, 0, e.Len())

	for _, key := range e.vars.Keys() {
		raw, _ := e.vars.Get(key)
		value, _ := raw.(string)
		expanded := os.Expand(value, func(name string) string {
			if v, ok := resolved[name]; ok {
				return v
			}
			return os.Getenv(name)
		})
		resolved[key] = expanded
		pairs = append(pairs, key+"="+expanded)
	}
	return pairs
}
