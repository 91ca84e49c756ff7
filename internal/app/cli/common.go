package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/ozacod/nbuild/internal/pkg/utils/colors"
)

// Variables for mocking in tests
var (
	execLookPath = exec.LookPath
)

// Icon constants for consistent output
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
)

// Version is the nbuild version
const Version = "0.3.0"

// verbose is set by the root command's --verbose flag.
var verbose bool

// SetVerbose enables PrintVerbose output.
func SetVerbose(v bool) { verbose = v }

// InitColors disables colored output when stderr is not a terminal or
// NO_COLOR is set.
func InitColors() {
	if !colors.Enabled(os.Stderr) {
		colors.Disable()
	}
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s%s %s%s\n", colors.Red, IconError, msg, colors.Reset)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s%s %s%s\n", colors.Yellow, IconWarning, msg, colors.Reset)
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s%s %s%s\n", colors.Green, IconSuccess, msg, colors.Reset)
}

// PrintVerbose prints a dimmed message when --verbose is set
func PrintVerbose(format string, args ...interface{}) {
	if !verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s%s%s\n", colors.Dim, msg, colors.Reset)
}

// CheckCommandExists checks if a command is available in PATH
func CheckCommandExists(command string) bool {
	_, err := execLookPath(command)
	return err == nil
}

// CheckFileExists checks if a file exists
func CheckFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
