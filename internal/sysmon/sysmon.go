// Package sysmon samples system-wide CPU and memory load around benchmark
// runs so that timings can be read against background activity.
package sysmon

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	// CPUs is the number of logical CPUs reported by the system.
	CPUs int
}

func (s Stats) String() string {
	return fmt.Sprintf("cpu %.1f%% mem %.1f%%", s.CPUPercent, s.MemPercent)
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if n, err := cpu.Counts(true); err == nil {
		s.CPUs = n
	}
	return s
}

// Around runs fn and returns the system load observed while it ran. The CPU
// figure is the average utilization across all CPUs between the start and
// the end of fn.
func Around(fn func()) Stats {
	cpu.Percent(0, false)
	fn()
	return Sample()
}
