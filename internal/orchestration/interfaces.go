package orchestration

import (
	"io"
	"sync"
	"time"
)

// ProgressUpdate reports a change in state of one configuration of the sweep.
type ProgressUpdate struct {
	// Index is the position of the configuration in the sweep.
	Index int
	// Label names the configuration, e.g. "serial" or "parallel(4)".
	Label string
	// Run is the 1-based repetition about to start or just finished.
	Run int
	// Repeat is the number of repetitions per configuration.
	Repeat int
	// Done is set once all repetitions of the configuration have finished.
	Done bool
	// Elapsed is the mean duration of the configuration when Done is set.
	Elapsed time.Duration
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Details bool
	Quiet   bool
}

// ProgressReporter defines the interface for displaying benchmark progress.
// This interface decouples the orchestration layer from the presentation layer.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed and then
	// calls wg.Done. numSteps is the number of configurations in the sweep.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numSteps int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numSteps int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numSteps int, out io.Writer) {
	f(wg, progressChan, numSteps, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting benchmark results.
type ResultPresenter interface {
	// PresentSeries displays the summary table of a completed sweep.
	PresentSeries(series Series, opts PresentationOptions, out io.Writer)

	// PresentMismatch reports configurations whose counts differ from the
	// serial baseline.
	PresentMismatch(series Series, mismatched []Sample, out io.Writer)
}

// ErrorHandler handles benchmark errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
