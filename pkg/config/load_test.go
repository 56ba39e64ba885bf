package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config file into dir and returns its path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoad tests the behavior of Load.
//
// It verifies:
//   - An explicit path is loaded and parsed
//   - A missing explicit path is an error
//   - .skel.yml is probed in the working directory
//   - No config anywhere falls back to the zero config
//   - Invalid YAML is reported with the file name
func TestLoad(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "custom.yml", `
defaults:
  quiet: true
  log: true
log_path: ./run.log
task:
  timeout: 30
  steps:
    - echo one
    - echo two
`)

		cfg, err := Load(path, "")
		require.NoError(t, err)
		assert.True(t, cfg.Defaults.Quiet)
		assert.True(t, cfg.Defaults.Log)
		assert.False(t, cfg.Defaults.Verbose)
		assert.Equal(t, "./run.log", cfg.LogPath)
		assert.Equal(t, 30, cfg.Task.Timeout)
		assert.Equal(t, []string{"echo one", "echo two"}, cfg.Task.Steps)
	})

	t.Run("missing explicit path errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"), "")
		assert.Error(t, err)
	})

	t.Run("probes working directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, DefaultFileName, "defaults:\n  verbose: true\n")

		cfg, err := Load("", dir)
		require.NoError(t, err)
		assert.True(t, cfg.Defaults.Verbose)
	})

	t.Run("absent config yields zero config", func(t *testing.T) {
		cfg, err := Load("", t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("invalid yaml errors", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "bad.yml", "defaults: [not a mapping\n")

		_, err := Load(path, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.yml")
	})
}

// TestEnvMap tests the behavior of EnvMap.
//
// It verifies:
//   - Declaration order is preserved through YAML decoding
//   - Later entries expand references to earlier entries
//   - Process environment variables are visible to expansion
//   - Non-mapping and non-scalar env blocks are rejected
func TestEnvMap(t *testing.T) {
	t.Run("preserves declaration order", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "env.yml", `
env:
  ZEBRA: z
  ALPHA: a
  MIDDLE: m
`)

		cfg, err := Load(path, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"ZEBRA=z", "ALPHA=a", "MIDDLE=m"}, cfg.Env.Expand())
	})

	t.Run("later entries reference earlier ones", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "env.yml", `
env:
  BUILD_DIR: /tmp/build
  OUT: $BUILD_DIR/out
`)

		cfg, err := Load(path, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"BUILD_DIR=/tmp/build", "OUT=/tmp/build/out"}, cfg.Env.Expand())
	})

	t.Run("falls back to process environment", func(t *testing.T) {
		t.Setenv("SKEL_CONFIG_TEST_HOME", "/home/skel")

		dir := t.TempDir()
		path := writeConfig(t, dir, "env.yml", "env:\n  CACHE: $SKEL_CONFIG_TEST_HOME/cache\n")

		cfg, err := Load(path, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"CACHE=/home/skel/cache"}, cfg.Env.Expand())
	})

	t.Run("rejects sequence env block", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "env.yml", "env:\n  - A=1\n")

		_, err := Load(path, "")
		assert.Error(t, err)
	})

	t.Run("rejects nested mapping value", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "env.yml", "env:\n  A:\n    nested: 1\n")

		_, err := Load(path, "")
		assert.Error(t, err)
	})

	t.Run("empty env expands to nil", func(t *testing.T) {
		var cfg Config
		assert.Nil(t, cfg.Env.Expand())
		assert.Equal(t, 0, cfg.Env.Len())
	})
}

// TestCheckMinVersion tests the behavior of CheckMinVersion.
//
// It verifies:
//   - No pin always passes
//   - Dev builds always pass
//   - Equal and newer versions pass, older versions fail
//   - The "v" prefix is optional on both sides
//   - Invalid pins are reported
func TestCheckMinVersion(t *testing.T) {
	t.Run("no pin passes", func(t *testing.T) {
		assert.NoError(t, CheckMinVersion(&Config{}, "0.0.1"))
	})

	t.Run("dev build passes any pin", func(t *testing.T) {
		assert.NoError(t, CheckMinVersion(&Config{MinVersion: "v99.0.0"}, "dev"))
	})

	t.Run("equal version passes", func(t *testing.T) {
		assert.NoError(t, CheckMinVersion(&Config{MinVersion: "1.2.0"}, "v1.2.0"))
	})

	t.Run("newer version passes", func(t *testing.T) {
		assert.NoError(t, CheckMinVersion(&Config{MinVersion: "v1.2.0"}, "1.3.0"))
	})

	t.Run("older version fails", func(t *testing.T) {
		err := CheckMinVersion(&Config{MinVersion: "v2.0.0"}, "v1.9.9")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "v2.0.0")
	})

	t.Run("invalid pin fails", func(t *testing.T) {
		err := CheckMinVersion(&Config{MinVersion: "latest"}, "v1.0.0")
		assert.Error(t, err)
	})
}

// TestConfigOptions tests the behavior of Config.Options.
//
// It verifies:
//   - Defaults map field-for-field onto the run configuration
func TestConfigOptions(t *testing.T) {
	cfg := &Config{Defaults: Defaults{Quiet: true, Log: true, NoExec: true}}
	opts := cfg.Options()
	assert.True(t, opts.Quiet)
	assert.True(t, opts.PrintLog)
	assert.True(t, opts.NoExec)
	assert.False(t, opts.Verbose)
	assert.False(t, opts.Debug)
}
