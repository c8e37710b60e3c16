package tui

import (
	"time"

	"github.com/agbru/kendallbench/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update from the sweep.
type ProgressMsg struct {
	Generation uint64
	Update     orchestration.ProgressUpdate
	Completed  int
	Fraction   float64
	ETA        time.Duration
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct {
	Generation uint64
}

// SeriesMsg delivers a sweep whose configurations all agree.
type SeriesMsg struct {
	Generation uint64
	Series     orchestration.Series
}

// MismatchMsg delivers a sweep in which some configurations disagree with
// the serial baseline.
type MismatchMsg struct {
	Generation uint64
	Series     orchestration.Series
	Mismatched []orchestration.Sample
}

// ErrorMsg reports a failed sweep.
type ErrorMsg struct {
	Generation uint64
	Err        error
	Duration   time.Duration
}

// TickMsg drives periodic sampling of runtime and system statistics.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries system-wide CPU and memory utilization.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// BenchmarkCompleteMsg is sent when the sweep command returns.
type BenchmarkCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the sweep context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
