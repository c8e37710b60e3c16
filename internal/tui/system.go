package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/kendallbench/internal/format"
)

// SystemModel shows runtime memory counters and CPU and memory history.
type SystemModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	cpuHistory   *History
	memHistory   *History
	width        int
	height       int
}

// NewSystemModel creates an empty panel.
func NewSystemModel() SystemModel {
	return SystemModel{
		cpuHistory: NewHistory(32),
		memHistory: NewHistory(32),
	}
}

// SetSize updates the panel dimensions and the sparkline length.
func (s *SystemModel) SetSize(w, h int) {
	s.width = w
	s.height = h
	if spark := w - 16; spark > 0 {
		s.cpuHistory.Resize(spark)
		s.memHistory.Resize(spark)
	}
}

// UpdateMemStats stores a runtime memory sample.
func (s *SystemModel) UpdateMemStats(msg MemStatsMsg) {
	s.alloc = msg.Alloc
	s.heapSys = msg.HeapSys
	s.numGC = msg.NumGC
	s.pauseTotalNs = msg.PauseTotalNs
	s.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats appends a system utilization sample.
func (s *SystemModel) UpdateSysStats(msg SysStatsMsg) {
	s.cpuHistory.Push(msg.CPUPercent)
	s.memHistory.Push(msg.MemPercent)
}

// Reset clears the utilization history.
func (s *SystemModel) Reset() {
	s.cpuHistory.Reset()
	s.memHistory.Reset()
}

// View renders the panel.
func (s SystemModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("SYSTEM"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Heap:      "),
		valueStyle.Render(format.FormatBytes(s.alloc)+" / "+format.FormatBytes(s.heapSys)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("GC:        "),
		valueStyle.Render(fmt.Sprintf("%d (%.1fms)", s.numGC, float64(s.pauseTotalNs)/1e6)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Goroutines:"),
		valueStyle.Render(fmt.Sprintf("%d", s.numGoroutine)))
	fmt.Fprintf(&b, "%s %s %s\n", labelStyle.Render("CPU"),
		valueStyle.Render(fmt.Sprintf("%5.1f%%", s.cpuHistory.Last())),
		cpuSparkStyle.Render(Sparkline(s.cpuHistory.Values())))
	fmt.Fprintf(&b, "%s %s %s", labelStyle.Render("MEM"),
		valueStyle.Render(fmt.Sprintf("%5.1f%%", s.memHistory.Last())),
		memSparkStyle.Render(Sparkline(s.memHistory.Values())))

	width := max(s.width-2, 0)
	height := max(s.height-2, 0)
	return panelStyle.Width(width).Height(height).Render(b.String())
}
