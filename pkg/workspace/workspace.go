// Package workspace manages the private temporary directory for one run.
// The directory is created exactly once at startup with owner-only
// permissions and removed exactly once on any exit path; cleanup is
// idempotent and never raises secondary errors.
package workspace

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
)

// Workspace is the scoped temporary directory owned by one process.
//
// The path embeds random numbers and the process id so concurrent runs
// cannot collide under a shared temp root. A Workspace must be released
// with Cleanup; callers defer it immediately after Create so every exit
// path from the run releases the directory.
type Workspace struct {
	mu      sync.Mutex
	dir     string
	removed bool
}

// Create makes the temporary directory under the system temp root.
//
// It performs the following operations:
//   - Builds a unique name from the prefix, three random numbers, and the pid
//   - Creates the directory with mode 0700 (owner-only)
//
// Creation failure is terminal for the caller; there is no retry and no
// partial state is left behind.
//
// Parameters:
//   - prefix: Leading component of the directory name, typically the tool name
//
// Returns:
//   - *Workspace: The created workspace
//   - error: Error if the directory could not be created
func Create(prefix string) (*Workspace, error) {
	name := fmt.Sprintf("%s.%d%d%d.%d", prefix, rand.Intn(32768), rand.Intn(32768), rand.Intn(32768), os.Getpid())
	dir := filepath.Join(os.TempDir(), name)

	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create temp dir %s: %w", dir, err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the absolute path of the temporary directory.
//
// The path must not be used after Cleanup has run.
//
// Returns:
//   - string: The directory path
func (w *Workspace) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Cleanup removes the temporary directory and everything in it.
//
// Safe to invoke multiple times and safe when the directory has already
// been removed externally. Removal is best-effort: the first error is
// returned for visibility but repeated calls after success are no-ops.
//
// Returns:
//   - error: Error from the removal attempt, nil once removed
func (w *Workspace) Cleanup() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.removed {
		return nil
	}
	// RemoveAll on an absent path returns nil, so a directory deleted
	// out from under us still counts as cleaned.
	if err := os.RemoveAll(w.dir); err != nil {
		return err
	}
	w.removed = true
	return nil
}

// Removed reports whether Cleanup has completed.
//
// Returns:
//   - bool: true once the directory has been removed
func (w *Workspace) Removed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.removed
}
