package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/kendallbench/internal/format"
)

// HeaderModel renders the top bar: title, version, dataset and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	size      int
	seed      uint64
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, size int, seed uint64) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		size:      size,
		seed:      seed,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since start, frozen once SetDone was called.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Kendall Tau Benchmark"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	row := titleStyle.Render(titleText) + pipe +
		labelStyle.Render(fmt.Sprintf("n=%d seed=%d", h.size, h.seed)) + pipe +
		valueStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.Elapsed()))

	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Render(row)
}

// FooterModel renders key hints and the sweep status.
type FooterModel struct {
	keymap KeyMap
	paused bool
	done   bool
	failed bool
	width  int
}

// NewFooterModel creates a footer for the given bindings.
func NewFooterModel(km KeyMap) FooterModel {
	return FooterModel{keymap: km}
}

func (f *FooterModel) SetPaused(p bool) { f.paused = p }

func (f *FooterModel) SetDone(d bool) { f.done = d }

func (f *FooterModel) SetError(e bool) { f.failed = e }

func (f *FooterModel) SetWidth(w int) { f.width = w }

// Status returns the label shown at the start of the footer.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "ERROR"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	var status string
	switch label := f.Status(); label {
	case "ERROR":
		status = statusErrorStyle.Render(label)
	case "DONE":
		status = statusDoneStyle.Render(label)
	case "PAUSED":
		status = statusRunStyle.Render(label)
	default:
		status = statusWaitStyle.Render(label)
	}

	hints := make([]string, 0, len(f.keymap.ShortHelp()))
	for _, b := range f.keymap.ShortHelp() {
		hints = append(hints, footerKeyStyle.Render(b.Help().Key)+" "+dimStyle.Render(b.Help().Desc))
	}
	line := " " + status + "  " + strings.Join(hints, "  ")
	if f.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(f.width).Render(line)
	}
	return line
}
