package format

import (
	"fmt"
	"strings"
	"time"
)

// Progress tracks completion of a fixed number of steps and estimates the
// remaining time from the average duration of the finished ones.
type Progress struct {
	total     int
	completed int
	startTime time.Time
	now       func() time.Time
}

// NewProgress creates a tracker for total steps, starting the clock now.
func NewProgress(total int) *Progress {
	return &Progress{total: total, startTime: time.Now(), now: time.Now}
}

// Step marks one more step as finished. Steps beyond the total are ignored.
func (p *Progress) Step() {
	if p.completed < p.total {
		p.completed++
	}
}

// Completed returns the number of finished steps.
func (p *Progress) Completed() int { return p.completed }

// Fraction returns the finished share in [0, 1].
func (p *Progress) Fraction() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.completed) / float64(p.total)
}

// ETA returns the estimated time remaining. It is 0 until the first step
// finishes and once all steps are done.
func (p *Progress) ETA() time.Duration {
	if p.completed == 0 || p.completed >= p.total {
		return 0
	}
	perStep := p.now().Sub(p.startTime) / time.Duration(p.completed)
	return perStep * time.Duration(p.total-p.completed)
}

// FormatETA formats an ETA for display, e.g. "ETA 1m5s" or "ETA < 1s".
// A zero ETA renders as "ETA --".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "ETA --"
	case eta < time.Second:
		return "ETA < 1s"
	default:
		return "ETA " + eta.Round(time.Second).String()
	}
}

// FormatProgressBar renders a fixed-width bar followed by the percentage.
func FormatProgressBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	if width < 1 {
		width = 1
	}
	filled := int(progress * float64(width))
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat("█", filled), strings.Repeat("░", width-filled), progress*100)
}
