// Package script orchestrates one run of the user's main routine.
// It owns the setup sequence (workspace creation, signal trapping), the
// single invocation of the routine, and the guaranteed cleanup on every
// exit path: normal completion, fatal error, or signal delivery.
package script

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/skelgo/skel/pkg/errors"
	"github.com/skelgo/skel/pkg/msg"
	"github.com/skelgo/skel/pkg/options"
	"github.com/skelgo/skel/pkg/workspace"
)

// Func is the user-supplied main routine.
//
// It is invoked exactly once per process, after all setup completes, and
// receives everything it may need through the Context. Returning an error
// terminates the run; wrap with errors.ExitError to pick the exit code.
type Func func(*Context) error

// Context carries the resources a main routine works with.
//
// Fields:
//   - Options: The resolved run configuration, read-only
//   - Log: The message logger for this run
//   - Workspace: The private temporary directory, removed after the run
//   - Stdout: Where routine output goes; io.Discard under quiet mode
type Context struct {
	Options   options.Options
	Log       *msg.Logger
	Workspace *workspace.Workspace
	Stdout    io.Writer
}

// Failf builds a task-failure error for returning from a main routine.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - error: An ExitError carrying ExitFailure
func (c *Context) Failf(format string, args ...any) error {
	return errors.NewExitErrorf(errors.ExitFailure, format, args...)
}

// Runner drives one script run.
//
// Construct with New; the zero value is not usable.
type Runner struct {
	opts options.Options
	log  *msg.Logger

	// prefix names the temporary directory; defaults to "skel".
	prefix string

	// exitFunc is swapped in tests; the signal path cannot return an
	// error to the caller, so it exits the process directly.
	exitFunc func(int)

	mu    sync.Mutex
	phase string
}

// New creates a Runner for the given run configuration and logger.
//
// Parameters:
//   - opts: The resolved run configuration
//   - log: The message logger for this run
//
// Returns:
//   - *Runner: Ready-to-use runner
func New(opts options.Options, log *msg.Logger) *Runner {
	return &Runner{
		opts:     opts,
		log:      log,
		prefix:   "skel",
		exitFunc: os.Exit,
	}
}

// SetPrefix overrides the temporary-directory name prefix.
//
// Parameters:
//   - prefix: Leading component of the workspace directory name
func (r *Runner) SetPrefix(prefix string) {
	if prefix != "" {
		r.prefix = prefix
	}
}

// setPhase records the active call context for signal diagnostics.
func (r *Runner) setPhase(phase string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phase = phase
}

// Phase returns the active call context.
//
// Returns:
//   - string: Name of the phase currently executing
func (r *Runner) Phase() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Run executes the main routine with full lifecycle management.
//
// It performs the following operations:
//   - Creates the private temporary workspace (failure is immediately fatal)
//   - Defers idempotent workspace cleanup so every exit path releases it
//   - Converts SIGINT/SIGTERM into cleanup plus a diagnostic naming the
//     interrupted phase, then a non-zero exit
//   - Invokes the main routine exactly once, with stdout discarded under
//     quiet mode
//
// Parameters:
//   - main: The user-supplied routine to invoke
//
// Returns:
//   - error: nil on success; an ExitError describing the failure otherwise
func (r *Runner) Run(main Func) error {
	r.setPhase("setup")

	ws, err := workspace.Create(r.prefix)
	if err != nil {
		r.log.Emergency("%v", err)
		return errors.NewExitError(errors.ExitFailure, err)
	}
	defer func() {
		r.setPhase("cleanup")
		if cerr := ws.Cleanup(); cerr != nil {
			// Best-effort: report, never fail the run over cleanup.
			r.log.Warning("cleanup: %v", cerr)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()
	go func() {
		if sig, ok := <-sigCh; ok {
			r.trap(sig, ws)
		}
	}()

	r.log.Debug("workspace: %s", ws.Dir())

	stdout := io.Writer(os.Stdout)
	if r.opts.Quiet {
		stdout = io.Discard
	}

	r.setPhase("main routine")
	ctx := &Context{
		Options:   r.opts,
		Log:       r.log,
		Workspace: ws,
		Stdout:    stdout,
	}
	if err := main(ctx); err != nil {
		r.log.Error("%v", err)
		if _, ok := errors.IsExitError(err); ok {
			return err
		}
		return errors.NewExitError(errors.ExitFailure, err)
	}
	return nil
}

// trap handles a delivered termination signal.
//
// It reports a diagnostic naming the interrupted phase, releases the
// workspace, and exits with the interrupted status. It never returns.
//
// Parameters:
//   - sig: The delivered signal
//   - ws: The workspace to release
func (r *Runner) trap(sig os.Signal, ws *workspace.Workspace) {
	r.log.Error("caught %v during %s, cleaning up", sig, r.Phase())
	_ = ws.Cleanup()
	_ = r.log.Close()
	r.exitFunc(errors.ExitInterrupted)
}

// Fatal reports a message at emergency level and terminates the process
// through the runner's exit path. Intended for callers outside Run that
// cannot return an error; inside a main routine, return an error instead.
//
// Parameters:
//   - code: Exit code to terminate with
//   - format: Printf-style format string
//   - args: Format arguments
func (r *Runner) Fatal(code int, format string, args ...any) {
	r.log.Emergency(format, args...)
	_ = r.log.Close()
	r.exitFunc(code)
}
