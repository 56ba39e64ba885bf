//go:build !windows

package cmdexec

// getDefaultShell returns the fallback shell when SHELL is unset.
//
// Returns:
//   - shell: The path to the default shell executable
//   - args: The shell arguments needed to execute a command string
func getDefaultShell() (shell string, args []string) {
	return "sh", []string{"-c"}
}
