package parallel

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMap_ResultsIndexedByTask(t *testing.T) {
	t.Parallel()
	for _, workers := range []int{1, 2, 3, 8, 64} {
		results, err := Map(workers, 100, func(i int) int { return i * i })
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if len(results) != 100 {
			t.Fatalf("workers=%d: got %d results, want 100", workers, len(results))
		}
		for i, r := range results {
			if r != i*i {
				t.Errorf("workers=%d: results[%d] = %d, want %d", workers, i, r, i*i)
			}
		}
	}
}

func TestMap_EmptyInput(t *testing.T) {
	t.Parallel()
	results, err := Map(4, 0, func(i int) int { return i })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestMap_RejectsInvalidArguments(t *testing.T) {
	t.Parallel()
	if _, err := Map(0, 10, func(i int) int { return i }); err == nil {
		t.Error("expected error for zero workers")
	}
	if _, err := Map(2, -1, func(i int) int { return i }); err == nil {
		t.Error("expected error for negative task count")
	}
}

// TestMap_ConcurrencyBoundedByWorkers verifies that no more than the
// requested number of tasks are ever in flight.
func TestMap_ConcurrencyBoundedByWorkers(t *testing.T) {
	t.Parallel()
	const workers = 3
	var inFlight, peak atomic.Int64
	var mu sync.Mutex

	_, err := Map(workers, 60, func(i int) struct{} {
		cur := inFlight.Add(1)
		mu.Lock()
		if cur > peak.Load() {
			peak.Store(cur)
		}
		mu.Unlock()
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := peak.Load(); got > workers {
		t.Errorf("peak concurrency %d exceeds worker count %d", got, workers)
	}
}

func TestMap_PanicIsRecoveredAfterJoin(t *testing.T) {
	t.Parallel()
	var ran atomic.Int64
	cause := errors.New("bad index")

	_, err := Map(4, 50, func(i int) int {
		ran.Add(1)
		if i == 17 {
			panic(cause)
		}
		return i
	})
	if err == nil {
		t.Fatal("expected error from panicking task")
	}
	var perr *PanicError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PanicError, got %T", err)
	}
	if perr.Index != 17 {
		t.Errorf("Index = %d, want 17", perr.Index)
	}
	if !errors.Is(err, cause) {
		t.Error("PanicError should unwrap to the panic value")
	}
	if !strings.Contains(err.Error(), "task 17 panicked") {
		t.Errorf("unexpected message: %v", err)
	}
	if ran.Load() != 50 {
		t.Errorf("all tasks should run before the join, ran %d", ran.Load())
	}
}
