// Package terminal holds the escape sequences nbuild writes to interactive
// terminals.
package terminal

const (
	// ShowCursor restores a cursor hidden by a progress display.
	ShowCursor = "\033[?25h"
	// HideCursor hides the cursor while a progress display is drawn.
	HideCursor = "\033[?25l"
)
