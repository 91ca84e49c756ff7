// Package colors holds the ANSI escape sequences used for terminal output.
package colors

import (
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI color escape sequences. They are empty strings once Disable is called.
var (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Enabled reports whether colored output should be written to f. Setting
// NO_COLOR to any value turns colors off.
func Enabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(f)
}

// Disable turns every color sequence into an empty string.
func Disable() {
	Reset, Red, Green, Yellow, Cyan, Gray, Bold, Dim = "", "", "", "", "", "", "", ""
}
