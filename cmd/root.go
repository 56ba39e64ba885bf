// Package cmd implements the command-line interface for skel.
// It parses the run flags, loads the optional config file, and hands
// control to the script runner, which owns the workspace lifecycle and
// the single invocation of the main routine.
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skelgo/skel/pkg/config"
	"github.com/skelgo/skel/pkg/errors"
	"github.com/skelgo/skel/pkg/msg"
	"github.com/skelgo/skel/pkg/options"
	"github.com/skelgo/skel/pkg/script"
)

var exitFunc = os.Exit

// Main replaces the built-in main routine when set.
//
// The shipped routine runs the task steps from the config file; a user
// adapting this starter kit assigns their own script.Func here (or edits
// newMainRoutine directly) and keeps the surrounding scaffolding.
var Main script.Func

var rootCmd = newRootCmd()

// newRootCmd builds the root command with the run flags.
//
// A fresh command instance carries its own flag state, which keeps
// repeated executions (and tests) from leaking flag values into each
// other.
//
// Returns:
//   - *cobra.Command: The configured root command
func newRootCmd() *cobra.Command {
	var (
		versionFlag bool
		configFlag  string
		quietFlag   bool
		verboseFlag bool
		debugFlag   bool
		logFlag     bool
		noExecFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "skel",
		Short: "Starter kit for command-line scripts",
		Long: `Run a scripted task with the scaffolding every CLI script needs:
leveled colored output, optional file logging, a private temporary
workspace, and cleanup guaranteed on every exit path.

The task itself comes from the steps in .skel.yml, or from a custom
main routine compiled into the binary.`,
		Example: `  skel                 run the task with defaults
  skel -l -v           run with file logging and verbose output
  skel -n              show the commands without executing them
  skel -q -l           silence the console, keep the log file`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				printVersionOutput()
				return nil
			}

			flags := options.FlagSet{
				Quiet:    options.Flag{Value: quietFlag, Set: cmd.Flags().Changed("quiet")},
				Verbose:  options.Flag{Value: verboseFlag, Set: cmd.Flags().Changed("verbose")},
				Debug:    options.Flag{Value: debugFlag, Set: cmd.Flags().Changed("debug")},
				PrintLog: options.Flag{Value: logFlag, Set: cmd.Flags().Changed("log")},
				NoExec:   options.Flag{Value: noExecFlag, Set: cmd.Flags().Changed("noexec")},
			}
			return runScript(configFlag, flags)
		},
	}

	cmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")
	cmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress console output (log file unaffected)")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug-level console output")
	cmd.Flags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug mode")
	cmd.Flags().BoolVarP(&logFlag, "log", "l", false, "Append messages to the log file")
	cmd.Flags().BoolVarP(&noExecFlag, "noexec", "n", false, "Print task commands instead of executing them")
	cmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to config file (default .skel.yml in the working directory)")

	cmd.AddCommand(versionCmd)
	return cmd
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success, help, or version output
//   - 1: Task or run failure
//   - 2: Usage error (unknown flag, unexpected argument)
//   - 3: Configuration error
//   - 130: Interrupted by signal
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.GetExitCode(err)
		if _, ok := errors.IsExitError(err); !ok {
			// Anything cobra surfaces directly is a parse problem.
			code = errors.ExitUsageError
		}
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Unlike Execute(), this function returns the error directly without
// calling os.Exit, making it suitable for use in test suites.
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

// runScript wires config, options, logger, and runner together and runs
// the main routine once.
//
// It performs the following operations:
//   - Loads the config file (explicit path or working-directory probe)
//   - Validates the min_version pin against the build version
//   - Resolves the run configuration from config defaults and set flags
//   - Constructs the logger (log path from config or <binary>.log)
//   - Runs the main routine under the lifecycle manager
//
// Parameters:
//   - configPath: Explicit config path from --config, may be empty
//   - flags: Raw flag values with explicit/implicit markers
//
// Returns:
//   - error: An ExitError describing the failure, nil on success
func runScript(configPath string, flags options.FlagSet) error {
	cfg, err := config.Load(configPath, "")
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	if err := config.CheckMinVersion(cfg, Version); err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	opts := options.Resolve(cfg.Options(), flags)

	logPath := cfg.LogPath
	if logPath == "" {
		logPath = defaultLogPath()
	}
	log := msg.New(opts, logPath)
	defer func() { _ = log.Close() }()

	runner := script.New(opts, log)

	main := Main
	if main == nil {
		main = newMainRoutine(cfg)
	}
	return runner.Run(main)
}

// defaultLogPath derives the log file name from the invoked binary.
//
// Returns:
//   - string: "<binary>.log" in the working directory
func defaultLogPath() string {
	base := filepath.Base(os.Args[0])
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".log"
}
