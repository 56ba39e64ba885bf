package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRunVersion tests the behavior of runVersion.
//
// It verifies:
//   - Basic version output includes version, Go version, and platform
//   - Version output with build time includes the date
//   - Version output with git commit includes the commit hash
func TestRunVersion(t *testing.T) {
	oldVersion := Version
	oldBuildTime := BuildTime
	oldGitCommit := GitCommit
	defer func() {
		Version = oldVersion
		BuildTime = oldBuildTime
		GitCommit = oldGitCommit
	}()

	t.Run("basic version output", func(t *testing.T) {
		Version = "1.0.0"
		BuildTime = ""
		GitCommit = ""

		output := captureStdout(t, func() {
			runVersion(nil, nil)
		})

		assert.Contains(t, output, "Version:  1.0.0")
		assert.Contains(t, output, "Go:")
		assert.Contains(t, output, "Platform:")
	})

	t.Run("version with build time", func(t *testing.T) {
		Version = "1.0.0"
		BuildTime = "2026-01-01T00:00:00Z"
		GitCommit = ""

		output := captureStdout(t, func() {
			runVersion(nil, nil)
		})

		assert.Contains(t, output, "Date:     2026-01-01T00:00:00Z")
	})

	t.Run("version with git commit", func(t *testing.T) {
		Version = "1.0.0"
		BuildTime = ""
		GitCommit = "abc123"

		output := captureStdout(t, func() {
			runVersion(nil, nil)
		})

		assert.Contains(t, output, "Git:      abc123")
	})
}

// TestGetVersion tests the behavior of GetVersion and IsDevBuild.
//
// It verifies:
//   - GetVersion returns the current version string
//   - IsDevBuild is true only for the default "dev" version
func TestGetVersion(t *testing.T) {
	oldVersion := Version
	defer func() { Version = oldVersion }()

	Version = "dev"
	assert.Equal(t, "dev", GetVersion())
	assert.True(t, IsDevBuild())

	Version = "2.1.0"
	assert.Equal(t, "2.1.0", GetVersion())
	assert.False(t, IsDevBuild())
}
