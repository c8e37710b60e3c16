package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/kendallbench/internal/errors"
	"github.com/agbru/kendallbench/internal/orchestration"
)

// programRef is a shared reference to the tea.Program. Bubbletea copies the
// model on every Update, so the bridge goroutines hold this pointer instead.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
	sink    func(tea.Msg)
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send delivers msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p, sink := r.program, r.sink
	r.mu.RUnlock()
	switch {
	case sink != nil:
		sink(msg)
	case p != nil:
		p.Send(msg)
	}
}

// TUIProgressReporter forwards sweep progress as bubbletea messages.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends one ProgressMsg per
// update, followed by ProgressDoneMsg.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numSteps int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numSteps)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			Generation: t.generation,
			Update:     update,
			Completed:  ap.Completed,
			Fraction:   ap.Fraction,
			ETA:        ap.ETA,
		})
	}
	t.ref.Send(ProgressDoneMsg{Generation: t.generation})
}

// TUIResultPresenter sends sweep outcomes to the dashboard instead of
// writing them to stdout.
type TUIResultPresenter struct {
	ref        *programRef
	generation uint64
}

var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentSeries sends a consistent sweep to the dashboard.
func (t *TUIResultPresenter) PresentSeries(series orchestration.Series, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(SeriesMsg{Generation: t.generation, Series: series})
}

// PresentMismatch sends a disagreeing sweep to the dashboard.
func (t *TUIResultPresenter) PresentMismatch(series orchestration.Series, mismatched []orchestration.Sample, _ io.Writer) {
	t.ref.Send(MismatchMsg{Generation: t.generation, Series: series, Mismatched: mismatched})
}

// HandleError sends an error message to the dashboard and returns the exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Generation: t.generation, Err: err, Duration: duration})
	return apperrors.HandleCalculationError(err, duration, io.Discard, noColors{})
}

// noColors satisfies apperrors.ColorProvider for discarded output.
type noColors struct{}

func (noColors) Red() string { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string { return "" }
