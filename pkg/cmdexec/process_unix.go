//go:build unix

package cmdexec

import (
	"os/exec"
	"syscall"
)

// setProcGroup places the command in its own process group.
//
// The Setpgid flag creates a new process group, which lets a timeout kill
// every child the step spawned instead of just the shell.
//
// Parameters:
//   - cmd: The command to configure for process group execution
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcGroup kills the entire process group for the given command.
//
// Signaling the negative pid addresses the whole group, so child
// processes spawned by the step are terminated rather than orphaned.
//
// Parameters:
//   - cmd: The command whose process group should be killed
//
// Returns:
//   - error: Error if the kill operation fails, nil if successful or process is nil
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
