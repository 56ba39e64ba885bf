package cmd

import (
	"context"
	"os"

	"github.com/skelgo/skel/pkg/cmdexec"
	"github.com/skelgo/skel/pkg/config"
	"github.com/skelgo/skel/pkg/script"
)

// newMainRoutine builds the shipped main routine from the loaded config.
//
// The routine runs the configured task steps sequentially through the
// user's shell, with the config's env block applied in declaration order.
// Under --noexec each step is announced instead of executed; under --quiet
// step stdout is discarded. With no steps configured it reports a
// placeholder and succeeds, leaving the scaffolding ready to adopt.
//
// Users of the starter kit replace this routine (or assign cmd.Main) with
// their own task body; everything it touches arrives through the Context.
//
// Parameters:
//   - cfg: The loaded configuration
//
// Returns:
//   - script.Func: The main routine for this run
func newMainRoutine(cfg *config.Config) script.Func {
	return func(ctx *script.Context) error {
		steps := cfg.Task.Steps
		if len(steps) == 0 {
			ctx.Log.Info("nothing to do: add task steps to %s or supply a main routine", config.DefaultFileName)
			return nil
		}

		ctx.Log.Header("Task")
		if ctx.Options.NoExec {
			ctx.Log.Notice("noexec mode: commands are printed, not executed")
		}

		runner := &cmdexec.Runner{
			Env:            cfg.Env.Expand(),
			TimeoutSeconds: cfg.Task.Timeout,
			DryRun:         ctx.Options.NoExec,
			Stdout:         ctx.Stdout,
			Stderr:         os.Stderr,
		}

		for i, step := range steps {
			ctx.Log.Debug("step %d/%d: %s", i+1, len(steps), step)
			if err := runner.Run(context.Background(), step); err != nil {
				return ctx.Failf("step %d/%d: %v", i+1, len(steps), err)
			}
		}

		ctx.Log.Success("completed %d step(s)", len(steps))
		return nil
	}
}
