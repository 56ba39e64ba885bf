package cmd

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skelgo/skel/pkg/options"
	"github.com/skelgo/skel/pkg/script"
)

// chdir switches the working directory to dir and restores the previous
// one on cleanup, mirroring testing.T.Chdir from newer Go releases.
func chdir(t *testing.T, dir string) {
	t.Helper()

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}

// captureStdout redirects os.Stdout around fn and returns what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

// resetRoot swaps in a fresh root command so flag state from earlier
// tests cannot leak, restoring the previous command afterwards.
func resetRoot(t *testing.T) {
	t.Helper()

	old := rootCmd
	rootCmd = newRootCmd()
	t.Cleanup(func() { rootCmd = old })
}

// mainStub captures whether and with which options the main routine ran.
type mainStub struct {
	called int
	opts   options.Options
	err    error
}

// install replaces the package main routine with the stub for one test.
func (s *mainStub) install(t *testing.T) {
	t.Helper()

	oldMain := Main
	Main = func(ctx *script.Context) error {
		s.called++
		s.opts = ctx.Options
		return s.err
	}
	t.Cleanup(func() { Main = oldMain })
}

// runWith executes a fresh root command with args in a temp working
// directory, returning the execution error.
func runWith(t *testing.T, args ...string) error {
	t.Helper()

	resetRoot(t)
	chdir(t, t.TempDir())
	rootCmd.SetArgs(args)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	return ExecuteTest()
}
