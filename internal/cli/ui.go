package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/kendallbench/internal/format"
	"github.com/agbru/kendallbench/internal/orchestration"
	"github.com/agbru/kendallbench/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 20
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows DisplayProgress to be tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() {
	rs.s.Start()
}

func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the suffix under the spinner's lock, since the animation
// goroutine reads it concurrently.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with the current configuration, overall
// completion and an ETA until progressChan is closed, then prints a one-line
// completion notice. wg.Done is called on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numSteps int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numSteps)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	for update := range progressChan {
		s.UpdateSuffix(FormatProgressSuffix(update, agg.Update(update), numSteps))
	}
	s.Stop()
	fmt.Fprintf(out, "%s✓%s Completed %d configurations.\n", ui.ColorGreen(), ui.ColorReset(), numSteps)
}

// FormatProgressSuffix renders the text shown after the spinner, e.g.
// " [3/8] parallel(3) run 1/2 [████░░░░] 25.0% ETA 4s".
func FormatProgressSuffix(update orchestration.ProgressUpdate, p orchestration.AggregatedProgress, numSteps int) string {
	run := ""
	if update.Repeat > 1 {
		run = fmt.Sprintf(" run %d/%d", update.Run, update.Repeat)
	}
	return fmt.Sprintf(" [%d/%d] %s%s %s %s",
		update.Index+1, numSteps, update.Label, run,
		format.FormatProgressBar(p.Fraction, ProgressBarWidth), format.FormatETA(p.ETA))
}
