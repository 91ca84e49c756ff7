package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ozacod/nbuild/internal/pkg/utils/colors"
	"github.com/ozacod/nbuild/internal/pkg/utils/terminal"
	"github.com/schollz/progressbar/v3"
)

// stepper reports progress through a fixed number of steps. Without a
// terminal it prints nothing.
type stepper struct {
	bar   *progressbar.ProgressBar
	total int
	cur   int
	stop  func()
}

func newStepper(total int, enabled bool) *stepper {
	s := &stepper{total: total, stop: func() {}}
	if !enabled || !colors.IsTerminal(os.Stderr) {
		return s
	}

	s.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(colors.Enabled(os.Stderr)),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[cyan]█[reset]",
			SaucerHead:    "[cyan]▸[reset]",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionClearOnFinish(),
	)

	fmt.Fprint(os.Stderr, terminal.HideCursor)

	// Ensure cursor is restored on interrupt
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			s.bar.Clear()
			fmt.Fprint(os.Stderr, terminal.ShowCursor)
			os.Exit(1)
		case <-done:
		}
	}()
	s.stop = func() {
		signal.Stop(sigCh)
		close(done)
	}
	return s
}

// Step starts the next step.
func (s *stepper) Step(desc string) {
	s.cur++
	PrintVerbose("[%d/%d] %s", s.cur, s.total, desc)
	if s.bar == nil {
		return
	}
	s.bar.Describe(fmt.Sprintf("[cyan][%d/%d][reset] %s", s.cur, s.total, desc))
	_ = s.bar.Set(s.cur - 1)
}

// Finish completes the bar and releases the signal handler.
func (s *stepper) Finish() {
	if s.bar != nil {
		_ = s.bar.Finish()
		fmt.Fprint(os.Stderr, terminal.ShowCursor)
		s.bar = nil
	}
	s.stop()
	s.stop = func() {}
}
