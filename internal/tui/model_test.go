package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/kendallbench/internal/dataset"
	apperrors "github.com/agbru/kendallbench/internal/errors"
	"github.com/agbru/kendallbench/internal/kendall"
	"github.com/agbru/kendallbench/internal/metrics"
	"github.com/agbru/kendallbench/internal/orchestration"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	x, y := dataset.Generate(30, 11)
	m := NewModel(context.Background(), Options{
		X:    x,
		Y:    y,
		Seed: 11,
		Benchmark: orchestration.Options{
			Calculators: kendall.Calculators(2, 3),
			Repeat:      2,
		},
		Version: "v1.0.0",
	})
	t.Cleanup(m.cancel)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func testSeries() orchestration.Series {
	return orchestration.Series{
		Size: 30,
		Seed: 11,
		Serial: orchestration.Sample{
			Label: "serial", Workers: 1, Mean: 100 * time.Millisecond,
			Result: kendall.Result{Tau: 0.2, Concordant: 6, Discordant: 4},
		},
		Parallel: []orchestration.Sample{
			{Label: "parallel(2)", Workers: 2, Mean: 50 * time.Millisecond,
				Result: kendall.Result{Tau: 0.2, Concordant: 6, Discordant: 4}},
			{Label: "parallel(3)", Workers: 3, Mean: 40 * time.Millisecond,
				Result: kendall.Result{Tau: 0.2, Concordant: 6, Discordant: 4}},
		},
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := newTestModel(t)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q, want Initializing...", got)
	}
}

func TestModel_ViewShowsConfigurations(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	view := m.View()
	for _, want := range []string{"Kendall Tau Benchmark v1.0.0", "n=30 seed=11", "serial", "parallel(2)", "parallel(3)", "SYSTEM"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ProgressAndSeries(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, ProgressMsg{Update: orchestration.ProgressUpdate{Index: 1, Run: 1, Repeat: 2, Elapsed: time.Millisecond}, Fraction: 0.25})
	if m.configs.rows[1].status != StatusRunning || m.configs.rows[1].run != 1 {
		t.Errorf("row 1 after progress = %+v", m.configs.rows[1])
	}

	m, _ = update(t, m, ProgressMsg{Generation: 7, Update: orchestration.ProgressUpdate{Index: 2, Done: true}})
	if m.configs.rows[2].status != StatusWaiting {
		t.Error("stale progress update was applied")
	}

	m, _ = update(t, m, SeriesMsg{Series: testSeries()})
	m, _ = update(t, m, BenchmarkCompleteMsg{ExitCode: apperrors.ExitSuccess})
	series, ok, code := m.Result()
	if !ok || code != apperrors.ExitSuccess || series.Serial.Label != "serial" {
		t.Errorf("Result() = (%v, %v, %d)", series.Serial.Label, ok, code)
	}
	if got := m.configs.rows[2].speedup; got != 2.5 {
		t.Errorf("parallel(3) speedup = %v, want 2.5", got)
	}
	if m.footer.Status() != "DONE" {
		t.Errorf("footer status = %s, want DONE", m.footer.Status())
	}
}

func TestModel_Mismatch(t *testing.T) {
	m := newTestModel(t)
	series := testSeries()
	series.Parallel[0].Result.Concordant = 5

	m, _ = update(t, m, MismatchMsg{Series: series, Mismatched: series.Parallel[:1]})
	m, _ = update(t, m, BenchmarkCompleteMsg{ExitCode: apperrors.ExitErrorMismatch})

	if m.configs.rows[1].status != StatusMismatch {
		t.Errorf("row 1 status = %s, want DIFF", m.configs.rows[1].status)
	}
	if _, ok, code := m.Result(); ok || code != apperrors.ExitErrorMismatch {
		t.Errorf("Result() ok=%v code=%d, want false and %d", ok, code, apperrors.ExitErrorMismatch)
	}
}

func TestModel_Error(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 24})
	m, _ = update(t, m, ErrorMsg{Err: errors.New("boom")})

	if m.footer.Status() != "ERROR" {
		t.Errorf("footer status = %s, want ERROR", m.footer.Status())
	}
	if !strings.Contains(m.View(), "Error: boom") {
		t.Error("view does not show the error")
	}
}

func TestModel_StaleCompletionIgnored(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, BenchmarkCompleteMsg{ExitCode: apperrors.ExitErrorGeneric, Generation: 9})
	if m.done {
		t.Error("stale completion marked the model done")
	}
}

func TestModel_QuitWhileRunning(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command does not produce tea.QuitMsg")
	}
	if _, _, code := m.Result(); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
	if m.ctx.Err() == nil {
		t.Error("quit did not cancel the sweep context")
	}
}

func TestModel_ContextDeadline(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, ContextCancelledMsg{Err: context.DeadlineExceeded})
	if cmd == nil {
		t.Fatal("cancellation returned no command")
	}
	if _, _, code := m.Result(); code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
}

func TestModel_PauseAndReset(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if !m.paused || m.footer.Status() != "PAUSED" {
		t.Error("pause key did not pause")
	}

	m, _ = update(t, m, ProgressMsg{Update: orchestration.ProgressUpdate{Index: 0, Run: 1}})
	if m.configs.rows[0].status != StatusWaiting {
		t.Error("progress applied while paused")
	}

	oldCtx := m.ctx
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Fatal("reset returned no command")
	}
	if m.generation != 1 || m.paused {
		t.Errorf("after reset generation=%d paused=%v", m.generation, m.paused)
	}
	if oldCtx.Err() == nil {
		t.Error("reset did not cancel the previous sweep")
	}
}

func TestModel_ResetWaitsForRunningSweep(t *testing.T) {
	m := newTestModel(t)
	recorder := metrics.NewRecorder()
	m.opts.Benchmark.Recorder = recorder
	recorder.ObserveRun("parallel", 2, time.Millisecond, 30)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	t.Cleanup(func() { m.cancel() })
	if cmd == nil {
		t.Fatal("reset returned no command")
	}
	if !m.restart || !m.running || m.runningGen != 0 {
		t.Fatalf("reset mid-sweep: restart=%v running=%v runningGen=%d, want the old sweep still tracked",
			m.restart, m.running, m.runningGen)
	}

	m, _ = update(t, m, SeriesMsg{Series: testSeries()})
	if m.complete {
		t.Error("series from the canceled sweep was accepted")
	}

	m, cmd = update(t, m, BenchmarkCompleteMsg{ExitCode: apperrors.ExitErrorCanceled})
	if cmd == nil {
		t.Fatal("completion of the canceled sweep did not start the pending one")
	}
	if m.restart || !m.running || m.runningGen != 1 || m.done {
		t.Errorf("after old sweep completed: restart=%v running=%v runningGen=%d done=%v",
			m.restart, m.running, m.runningGen, m.done)
	}

	families, err := recorder.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == "kendall_run_duration_seconds" && len(mf.GetMetric()) > 0 {
			t.Error("recorder kept runs from the canceled sweep")
		}
	}

	m, _ = update(t, m, BenchmarkCompleteMsg{ExitCode: apperrors.ExitSuccess, Generation: 1})
	if m.running || !m.done {
		t.Fatalf("after new sweep completed: running=%v done=%v", m.running, m.done)
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil || m.restart || !m.running || m.runningGen != 2 {
		t.Errorf("reset when idle: restart=%v running=%v runningGen=%d, want immediate start",
			m.restart, m.running, m.runningGen)
	}
}

func TestModel_CursorMovement(t *testing.T) {
	m := newTestModel(t)
	for range 5 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.configs.cursor != 2 {
		t.Errorf("cursor = %d, want clamped to 2", m.configs.cursor)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if !strings.HasPrefix(m.configs.Selected(), "parallel(2)") {
		t.Errorf("Selected() = %q", m.configs.Selected())
	}
}

func TestStartBenchmarkCmd_RunsSweep(t *testing.T) {
	ref, msgs := capture()
	x, y := dataset.Generate(40, 5)
	opts := Options{X: x, Y: y, Benchmark: orchestration.Options{Calculators: kendall.Calculators(2, 3), Repeat: 1}}

	msg := startBenchmarkCmd(ref, context.Background(), opts, 4)()
	done, ok := msg.(BenchmarkCompleteMsg)
	if !ok || done.ExitCode != apperrors.ExitSuccess || done.Generation != 4 {
		t.Fatalf("command returned %#v", msg)
	}

	var sawSeries bool
	for _, m := range msgs() {
		if s, ok := m.(SeriesMsg); ok {
			sawSeries = len(s.Series.Parallel) == 2 && s.Generation == 4
		}
	}
	if !sawSeries {
		t.Error("no SeriesMsg with two parallel samples was sent")
	}
}

func TestStartBenchmarkCmd_Canceled(t *testing.T) {
	ref, _ := capture()
	x, y := dataset.Generate(10, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg := startBenchmarkCmd(ref, ctx, Options{X: x, Y: y, Benchmark: orchestration.Options{Calculators: kendall.Calculators(2, 2)}}, 0)()
	if done := msg.(BenchmarkCompleteMsg); done.ExitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", done.ExitCode, apperrors.ExitErrorCanceled)
	}
}
