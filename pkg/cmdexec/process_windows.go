//go:build windows

package cmdexec

import (
	"os/exec"
)

// setProcGroup is a no-op on Windows.
//
// exec.CommandContext already terminates the process adequately on
// Windows; this exists to keep the call sites platform-neutral.
//
// Parameters:
//   - cmd: The command to configure (no-op on Windows)
func setProcGroup(cmd *exec.Cmd) {
	// No-op on Windows - exec.CommandContext handles this
}

// killProcGroup kills the process on Windows.
//
// Killing the parent typically terminates children on Windows, so a
// plain Process.Kill suffices.
//
// Parameters:
//   - cmd: The command whose process should be killed
//
// Returns:
//   - error: Error if the kill operation fails, nil if successful or process is nil
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
