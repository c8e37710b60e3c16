package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Delta returns the allocation and GC activity between two snapshots. The
// HeapAlloc of the result is the later reading, not a difference.
func (s MemorySnapshot) Delta(later MemorySnapshot) MemorySnapshot {
	return MemorySnapshot{
		HeapAlloc:    later.HeapAlloc,
		TotalAlloc:   later.TotalAlloc - s.TotalAlloc,
		Sys:          later.Sys,
		NumGC:        later.NumGC - s.NumGC,
		PauseTotalNs: later.PauseTotalNs - s.PauseTotalNs,
	}
}
