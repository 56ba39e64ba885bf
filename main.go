// Package main is the entry point for the skel CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The skel tool is a starter kit for
// command-line scripts: it handles option parsing, leveled console output,
// optional file logging, and temporary-workspace lifecycle, leaving the
// actual task body to a user-supplied routine.
package main

import "github.com/skelgo/skel/cmd"

// main initializes and runs the skel CLI application.
//
// It delegates all option parsing and execution to the cmd package,
// which wires the run configuration, logger, and workspace together
// before invoking the main routine.
func main() {
	cmd.Execute()
}
