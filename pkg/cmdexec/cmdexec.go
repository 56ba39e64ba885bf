// Package cmdexec runs task steps through the user's shell.
// Steps execute sequentially, each in its own process group so a timeout
// can terminate the whole subtree, with optional extra environment
// variables and a dry-run mode that announces commands without running them.
package cmdexec

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// getShell returns the user's shell and the args to run a command string.
//
// The SHELL environment variable wins when set (Unix systems), with a
// platform-specific fallback otherwise. Using the user's shell keeps
// aliases and shell configuration available to task steps.
//
// Returns:
//   - shell: The path to the shell executable
//   - args: The shell arguments needed to execute a command string
func getShell() (shell string, args []string) {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-c"}
	}
	return getDefaultShell()
}

// Runner executes task steps with a shared environment and output sinks.
//
// Fields:
//   - Env: Extra KEY=VALUE pairs appended to the inherited environment
//   - Dir: Working directory for every step; empty means inherit
//   - TimeoutSeconds: Per-step limit; 0 disables the timeout
//   - DryRun: Announce commands instead of executing them
//   - Stdout: Sink for step stdout (io.Discard under quiet mode)
//   - Stderr: Sink for step stderr
type Runner struct {
	Env            []string
	Dir            string
	TimeoutSeconds int
	DryRun         bool
	Stdout         io.Writer
	Stderr         io.Writer
}

// Run executes one command string through the user's shell.
//
// It performs the following operations:
//   - In dry-run mode, writes the command to Stdout and returns immediately
//   - Applies the per-step timeout on top of the caller's context
//   - Starts the command in its own process group
//   - Streams stdout and stderr to the configured sinks
//   - On timeout, kills the entire process group so no children are orphaned
//
// Parameters:
//   - ctx: Context for cancellation; step timeout is layered on top
//   - command: The command string to execute
//
// Returns:
//   - error: Execution or timeout error, nil on success
func (r *Runner) Run(ctx context.Context, command string) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("empty command")
	}

	if r.DryRun {
		_, _ = fmt.Fprintf(r.stdout(), "+ %s\n", command)
		return nil
	}

	if r.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	shell, shellArgs := getShell()
	cmd := exec.CommandContext(ctx, shell, append(shellArgs, command)...)
	cmd.Env = append(os.Environ(), r.Env...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	setProcGroup(cmd)

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded && r.TimeoutSeconds > 0 {
			_ = killProcGroup(cmd)
			return fmt.Errorf("command timed out after %d seconds: %s", r.TimeoutSeconds, command)
		}
		return fmt.Errorf("command failed: %s: %w", command, err)
	}
	return nil
}

// RunAll executes commands sequentially, stopping at the first failure.
//
// Parameters:
//   - ctx: Context for cancellation, checked before each step
//   - commands: The command strings to execute in order
//
// Returns:
//   - error: The first step error or context error, nil if all succeeded
func (r *Runner) RunAll(ctx context.Context, commands []string) error {
	for _, command := range commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Run(ctx, command); err != nil {
			return err
		}
	}
	return nil
}

// stdout returns the configured stdout sink, defaulting to os.Stdout.
func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

// stderr returns the configured stderr sink, defaulting to os.Stderr.
func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
