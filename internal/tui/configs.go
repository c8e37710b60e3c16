package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/kendallbench/internal/format"
	"github.com/agbru/kendallbench/internal/kendall"
	"github.com/agbru/kendallbench/internal/orchestration"
)

// RowStatus is the lifecycle state of one configuration.
type RowStatus int

const (
	StatusWaiting RowStatus = iota
	StatusRunning
	StatusDone
	StatusMismatch
	StatusError
)

func (s RowStatus) String() string {
	switch s {
	case StatusRunning:
		return "RUN"
	case StatusDone:
		return "OK"
	case StatusMismatch:
		return "DIFF"
	case StatusError:
		return "ERR"
	default:
		return "WAIT"
	}
}

// configRow tracks the progress of one configuration in the sweep.
type configRow struct {
	label   string
	workers int
	status  RowStatus
	run     int
	last    time.Duration
	mean    time.Duration
	speedup float64
	tau     float64
}

// ConfigsModel is the table of configurations with their live timings.
type ConfigsModel struct {
	rows     []configRow
	repeat   int
	fraction float64
	eta      time.Duration
	cursor   int
	width    int
	height   int
}

// NewConfigsModel creates one waiting row per calculator.
func NewConfigsModel(calcs []kendall.Calculator, repeat int) ConfigsModel {
	rows := make([]configRow, len(calcs))
	for i, c := range calcs {
		rows[i] = configRow{label: c.Name(), workers: c.Workers()}
	}
	return ConfigsModel{rows: rows, repeat: max(repeat, 1)}
}

func (c *ConfigsModel) SetSize(w, h int) {
	c.width = w
	c.height = h
}

// Apply records a progress update.
func (c *ConfigsModel) Apply(msg ProgressMsg) {
	u := msg.Update
	if u.Index < 0 || u.Index >= len(c.rows) {
		return
	}
	row := &c.rows[u.Index]
	row.run = u.Run
	row.last = u.Elapsed
	if u.Done {
		row.status = StatusDone
	} else {
		row.status = StatusRunning
	}
	c.fraction = msg.Fraction
	c.eta = msg.ETA
}

// SetSeries fills in means, speedups and tau, and marks rows listed in
// mismatched as disagreeing with the baseline.
func (c *ConfigsModel) SetSeries(series orchestration.Series, mismatched []orchestration.Sample) {
	speedups := series.Speedups()
	for i, s := range series.Samples() {
		if i >= len(c.rows) {
			break
		}
		row := &c.rows[i]
		row.mean = s.Mean
		row.tau = s.Result.Tau
		row.status = StatusDone
		if i == 0 {
			row.speedup = 1
		} else {
			row.speedup = speedups[i-1]
		}
		for _, m := range mismatched {
			if m.Label == s.Label {
				row.status = StatusMismatch
			}
		}
	}
	c.fraction = 1
	c.eta = 0
}

// SetError marks every unfinished row as failed.
func (c *ConfigsModel) SetError() {
	for i := range c.rows {
		if c.rows[i].status != StatusDone {
			c.rows[i].status = StatusError
		}
	}
}

// Reset returns every row to waiting.
func (c *ConfigsModel) Reset() {
	for i := range c.rows {
		c.rows[i] = configRow{label: c.rows[i].label, workers: c.rows[i].workers}
	}
	c.fraction = 0
	c.eta = 0
}

// MoveCursor moves the row selection by delta, clamped to the table.
func (c *ConfigsModel) MoveCursor(delta int) {
	c.cursor = min(max(c.cursor+delta, 0), max(len(c.rows)-1, 0))
}

// Fraction returns the overall sweep progress in [0, 1].
func (c ConfigsModel) Fraction() float64 { return c.fraction }

const (
	colLabel   = 14
	colRun     = 7
	colTime    = 12
	colSpeedup = 9
	colStatus  = 5
)

// View renders the table.
func (c ConfigsModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("CONFIGURATIONS"))
	b.WriteString("  ")
	b.WriteString(format.FormatProgressBar(c.fraction, 20))
	b.WriteString(" ")
	b.WriteString(dimStyle.Render(format.FormatETA(c.eta)))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-*s %*s %*s %*s %*s %*s",
		colLabel, "Config", colRun, "Run", colTime, "Last", colTime, "Mean", colSpeedup, "Speedup", colStatus, "")
	b.WriteString(labelStyle.Render(header))

	for i, row := range c.rows {
		b.WriteString("\n")
		b.WriteString(c.renderRow(i, row))
	}

	width := max(c.width-2, 0)
	height := max(c.height-2, 0)
	return panelStyle.Width(width).Height(height).Render(b.String())
}

func (c ConfigsModel) renderRow(idx int, row configRow) string {
	run := "-"
	if row.run > 0 {
		run = fmt.Sprintf("%d/%d", row.run, c.repeat)
	}
	last, mean, speedup := "-", "-", "-"
	if row.last > 0 {
		last = format.FormatExecutionDuration(row.last)
	}
	if row.mean > 0 {
		mean = format.FormatExecutionDuration(row.mean)
		speedup = format.FormatSpeedup(row.speedup)
	}

	line := fmt.Sprintf("%-*s %*s %*s %*s %*s ",
		colLabel, row.label, colRun, run, colTime, last, colTime, mean, colSpeedup, speedup)
	if idx == c.cursor {
		line = selectedStyle.Render(line)
	}
	return line + statusStyle(row.status).Width(colStatus).Render(row.status.String())
}

func statusStyle(s RowStatus) lipgloss.Style {
	switch s {
	case StatusRunning:
		return statusRunStyle
	case StatusDone:
		return statusDoneStyle
	case StatusMismatch, StatusError:
		return statusErrorStyle
	default:
		return statusWaitStyle
	}
}

// Selected returns a one-line summary of the highlighted configuration.
func (c ConfigsModel) Selected() string {
	if len(c.rows) == 0 {
		return ""
	}
	row := c.rows[c.cursor]
	if row.mean == 0 {
		return fmt.Sprintf("%s: %d worker(s), %s", row.label, row.workers, row.status)
	}
	return fmt.Sprintf("%s: %d worker(s), tau %.4f, mean %s, %s",
		row.label, row.workers, row.tau, format.FormatExecutionDuration(row.mean), format.FormatSpeedup(row.speedup))
}
