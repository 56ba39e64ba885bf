// Package options defines the run configuration for a skel invocation.
// The configuration is a set of independent boolean modes resolved once
// during startup and passed explicitly into the logger, workspace, and
// task runner, rather than living in process-wide mutable variables.
package options

// Options is the run configuration for one process invocation.
//
// Each field defaults to false and is set only during option parsing
// (seeded from config-file defaults, then overlaid by explicitly set
// CLI flags). After parsing, the value is read-only.
//
// Fields:
//   - Quiet: discard the main routine's stdout and suppress console messages
//   - Verbose: enable debug-level console output
//   - Debug: alias mode for Verbose kept for script compatibility
//   - PrintLog: append every non-input message to the log file
//   - NoExec: print task commands instead of executing them (dry run)
type Options struct {
	Quiet    bool
	Verbose  bool
	Debug    bool
	PrintLog bool
	NoExec   bool
}

// DebugEnabled reports whether debug-level messages should be emitted.
//
// Verbose and Debug both route through the debug level; the two flags
// exist as separate spellings (-v and -d) but share one output path.
//
// Returns:
//   - bool: true if either Verbose or Debug is set
func (o Options) DebugEnabled() bool {
	return o.Verbose || o.Debug
}

// Flag is a CLI flag value paired with whether the user set it explicitly.
//
// Explicitly set flags override config-file defaults; unset flags leave
// the default in place. Cobra reports the "changed" state per flag, which
// callers capture into this pair before resolving.
type Flag struct {
	Value bool
	Set   bool
}

// FlagSet carries the raw flag values collected by the option parser.
//
// It mirrors Options field-for-field but keeps the explicit/implicit
// distinction needed for merging with config defaults.
type FlagSet struct {
	Quiet    Flag
	Verbose  Flag
	Debug    Flag
	PrintLog Flag
	NoExec   Flag
}

// Resolve merges config-file defaults with explicitly set CLI flags.
//
// It performs the following operations:
//   - Starts from the defaults value (typically loaded from .skel.yml)
//   - Overwrites each field for which the corresponding flag was set
//
// Parameters:
//   - defaults: Starting values, usually from the config file
//   - flags: Raw flag values with their explicit/implicit markers
//
// Returns:
//   - Options: The resolved, final run configuration
func Resolve(defaults Options, flags FlagSet) Options {
	out := defaults
	if flags.Quiet.Set {
		out.Quiet = flags.Quiet.Value
	}
	if flags.Verbose.Set {
		out.Verbose = flags.Verbose.Value
	}
	if flags.Debug.Set {
		out.Debug = flags.Debug.Value
	}
	if flags.PrintLog.Set {
		out.PrintLog = flags.PrintLog.Value
	}
	if flags.NoExec.Set {
		out.NoExec = flags.NoExec.Value
	}
	return out
}
