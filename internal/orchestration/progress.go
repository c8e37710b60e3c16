package orchestration

import (
	"time"

	"github.com/agbru/kendallbench/internal/format"
)

// ProgressAggregator turns a stream of ProgressUpdate values into overall
// completion and an ETA. The CLI spinner uses it to build its suffix.
type ProgressAggregator struct {
	state    *format.Progress
	numSteps int
}

// NewProgressAggregator creates a new aggregator for the given number of
// configurations. Returns nil if numSteps <= 0.
func NewProgressAggregator(numSteps int) *ProgressAggregator {
	if numSteps <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:    format.NewProgress(numSteps),
		numSteps: numSteps,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// Index is the position of the configuration that sent the update.
	Index int
	// Label names the configuration.
	Label string
	// Completed is the number of configurations finished so far.
	Completed int
	// Fraction is Completed divided by the number of configurations.
	Fraction float64
	// ETA is the estimated time remaining, 0 until a configuration finishes.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	if update.Done {
		a.state.Step()
	}
	return AggregatedProgress{
		Index:     update.Index,
		Label:     update.Label,
		Completed: a.state.Completed(),
		Fraction:  a.state.Fraction(),
		ETA:       a.state.ETA(),
	}
}

// NumSteps returns the number of configurations being tracked.
func (a *ProgressAggregator) NumSteps() int {
	return a.numSteps
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
