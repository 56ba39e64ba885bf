package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreate tests the behavior of Create.
//
// It verifies:
//   - The directory exists under the system temp root after creation
//   - The name embeds the prefix and the process id
//   - Permissions are owner-only (0700) on Unix
//   - Two workspaces in one process never share a path
func TestCreate(t *testing.T) {
	ws, err := Create("skeltest")
	require.NoError(t, err)
	defer func() { _ = ws.Cleanup() }()

	info, err := os.Stat(ws.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	name := filepath.Base(ws.Dir())
	assert.True(t, strings.HasPrefix(name, "skeltest."))
	assert.True(t, strings.HasSuffix(name, fmt.Sprintf(".%d", os.Getpid())))

	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	}

	other, err := Create("skeltest")
	require.NoError(t, err)
	defer func() { _ = other.Cleanup() }()
	assert.NotEqual(t, ws.Dir(), other.Dir())
}

// TestCleanup tests the behavior of Cleanup.
//
// It verifies:
//   - The directory and its contents are gone after cleanup
//   - A second cleanup is a no-op without error
//   - Cleanup succeeds when the directory was already removed externally
func TestCleanup(t *testing.T) {
	t.Run("removes directory and contents", func(t *testing.T) {
		ws, err := Create("skeltest")
		require.NoError(t, err)

		inner := filepath.Join(ws.Dir(), "work", "out.txt")
		require.NoError(t, os.MkdirAll(filepath.Dir(inner), 0o700))
		require.NoError(t, os.WriteFile(inner, []byte("data"), 0o600))

		require.NoError(t, ws.Cleanup())
		_, err = os.Stat(ws.Dir())
		assert.True(t, os.IsNotExist(err))
		assert.True(t, ws.Removed())
	})

	t.Run("idempotent", func(t *testing.T) {
		ws, err := Create("skeltest")
		require.NoError(t, err)

		require.NoError(t, ws.Cleanup())
		require.NoError(t, ws.Cleanup())
	})

	t.Run("tolerates external removal", func(t *testing.T) {
		ws, err := Create("skeltest")
		require.NoError(t, err)

		require.NoError(t, os.RemoveAll(ws.Dir()))
		assert.NoError(t, ws.Cleanup())
	})
}
