// Package progress shows a progress bar while a run visits its destinations.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/ui"
)

// Bar wraps a progressbar that is created once the total is known.
type Bar struct {
	bar     *progressbar.ProgressBar
	enabled bool
	desc    string
	writer  io.Writer
}

// Options configures the progress bar.
type Options struct {
	// Description is the prefix text shown before the bar.
	Description string
	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer
	// Force draws the bar on writers that are not terminals.
	Force bool
}

// New returns a Bar. The bar is only drawn when:
//   - colors are enabled (respects NO_COLOR and --no-color)
//   - the writer is a terminal, or Force is set
//   - debug logging is off
func New(opts Options) *Bar {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	return &Bar{
		enabled: shouldShowProgress(opts.Writer, opts.Force),
		desc:    opts.Description,
		writer:  opts.Writer,
	}
}

// Step records that done of total items are finished.
func (b *Bar) Step(done, total int) error {
	if !b.enabled {
		return nil
	}
	if b.bar == nil {
		b.bar = b.newBar(total)
	} else if b.bar.GetMax() != total {
		b.bar.ChangeMax(total)
	}
	return b.bar.Set(done)
}

func (b *Bar) newBar(total int) *progressbar.ProgressBar {
	w := b.writer
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetDescription(b.desc),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionEnableColorCodes(ui.IsColorEnabled()),
	)
}

// Finish completes the bar, or logs completion when the bar is hidden.
func (b *Bar) Finish() error {
	if !b.enabled || b.bar == nil {
		logging.Debug(fmt.Sprintf("%s completed", b.desc))
		return nil
	}
	return b.bar.Finish()
}

// Clear removes the bar from the terminal, e.g. before printing an error.
func (b *Bar) Clear() error {
	if !b.enabled || b.bar == nil {
		return nil
	}
	return b.bar.Clear()
}

// Enabled reports whether the bar is drawn.
func (b *Bar) Enabled() bool {
	return b.enabled
}

// shouldShowProgress decides whether the bar is drawn on w.
func shouldShowProgress(w io.Writer, force bool) bool {
	if !ui.IsColorEnabled() {
		return false
	}

	if !force {
		f, ok := w.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) {
			return false
		}
	}

	// Progress output would interleave with debug logs.
	if logging.Default().Enabled(context.Background(), logging.LevelDebug) {
		return false
	}

	return true
}
