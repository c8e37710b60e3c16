package tui

import (
	"context"
	"errors"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/kendallbench/internal/errors"
	"github.com/agbru/kendallbench/internal/orchestration"
	"github.com/agbru/kendallbench/internal/sysmon"
)

// Options describes the sweep shown by the dashboard.
type Options struct {
	// X and Y are the generated samples.
	X, Y []float64
	// Seed generated X and Y.
	Seed uint64
	// Benchmark configures the sweep. Its progress reporting is replaced by
	// the dashboard's own.
	Benchmark orchestration.Options
	// Version is shown in the header.
	Version string
}

// ExecutionState holds the execution-related fields of a dashboard session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
	series     orchestration.Series
	complete   bool
	lastErr    error

	// At most one sweep runs at a time. running is set from the start of
	// the runningGen sweep until its BenchmarkCompleteMsg; a reset during
	// that window sets restart and waits for it.
	running    bool
	runningGen uint64
	restart    bool
	ticking    bool
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// Layout constants for the dashboard.
const (
	headerHeight             = 1
	footerHeight             = 2
	minBodyHeight            = 8
	ConfigsPanelWidthPercent = 62
)

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) configsWidth() int {
	return l.width * ConfigsPanelWidthPercent / 100
}

func (l LayoutManager) systemWidth() int {
	return l.width - l.configsWidth()
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	header  HeaderModel
	configs ConfigsModel
	system  SystemModel
	footer  FooterModel
	keymap  KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	opts      Options
	ref       *programRef
	paused    bool
}

// NewModel creates a dashboard for the configurations in opts.
func NewModel(parentCtx context.Context, opts Options) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	km := DefaultKeyMap()
	return Model{
		header:  NewHeaderModel(opts.Version, len(opts.X), opts.Seed),
		configs: NewConfigsModel(opts.Benchmark.Calculators, opts.Benchmark.Repeat),
		system:  NewSystemModel(),
		footer:  NewFooterModel(km),
		keymap:  km,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
			running:  true,
			ticking:  true,
		},
		parentCtx: parentCtx,
		opts:      opts,
		ref:       &programRef{},
	}
}

// Init starts the sweep and the sampling ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startBenchmarkCmd(m.ref, m.ctx, m.opts, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if msg.Generation == m.generation && !m.paused {
			m.configs.Apply(msg)
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case SeriesMsg:
		if msg.Generation == m.generation {
			m.series = msg.Series
			m.complete = true
			m.configs.SetSeries(msg.Series, nil)
		}
		return m, nil

	case MismatchMsg:
		if msg.Generation == m.generation {
			m.series = msg.Series
			m.configs.SetSeries(msg.Series, msg.Mismatched)
			m.footer.SetError(true)
		}
		return m, nil

	case ErrorMsg:
		if msg.Generation == m.generation {
			m.lastErr = msg.Err
			m.configs.SetError()
			m.footer.SetError(true)
		}
		return m, nil

	case TickMsg:
		if m.done {
			m.ticking = false
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.system.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.system.UpdateSysStats(msg)
		return m, nil

	case BenchmarkCompleteMsg:
		if m.running && msg.Generation == m.runningGen {
			m.running = false
			if m.restart {
				m.restart = false
				cmd := m.startSweep()
				return m, cmd
			}
		}
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
			if errors.Is(msg.Err, context.DeadlineExceeded) {
				m.exitCode = apperrors.ExitErrorTimeout
			}
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.configs.Reset()
		m.system.Reset()
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.done = false
		m.paused = false
		m.complete = false
		m.lastErr = nil
		m.series = orchestration.Series{}
		m.exitCode = apperrors.ExitSuccess

		watch := watchContextCmd(m.ctx, m.generation)
		if m.running {
			// The canceled sweep only stops between runs.
			m.restart = true
			return m, watch
		}
		sweep := m.startSweep()
		return m, tea.Batch(sweep, watch)

	case key.Matches(msg, m.keymap.Up):
		m.configs.MoveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		m.configs.MoveCursor(1)
		return m, nil
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.configs.View(), m.system.View())

	detail := m.configs.Selected()
	if m.lastErr != nil {
		detail = statusErrorStyle.Render("Error: " + m.lastErr.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, " "+detail, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.configs.SetSize(m.configsWidth(), m.bodyHeight())
	m.system.SetSize(m.systemWidth(), m.bodyHeight())
}

// Result returns the sweep shown when the dashboard closed, whether it
// completed and agreed with the baseline, and the exit code.
func (m Model) Result() (orchestration.Series, bool, int) {
	return m.series, m.complete, m.exitCode
}

// Run is the public entry point for the dashboard mode. It returns the
// final sweep, whether it completed successfully, and the exit code.
func Run(ctx context.Context, opts Options) (orchestration.Series, bool, int) {
	// Rebuild styles from the theme selected by the application.
	initStyles()

	model := NewModel(ctx, opts)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	m, ok := finalModel.(Model)
	if ok {
		m.cancel()
	}
	if err != nil {
		if ok && m.done && m.complete {
			return m.Result()
		}
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return orchestration.Series{}, false, apperrors.ExitErrorTimeout
		case apperrors.IsContextError(err) || ctx.Err() != nil:
			return orchestration.Series{}, false, apperrors.ExitErrorCanceled
		}
		return orchestration.Series{}, false, apperrors.ExitErrorGeneric
	}
	if ok {
		return m.Result()
	}
	return orchestration.Series{}, false, apperrors.ExitSuccess
}

// startSweep launches the sweep for the current generation. The recorder is
// cleared so it only describes the sweep that ends up being reported.
func (m *Model) startSweep() tea.Cmd {
	if m.opts.Benchmark.Recorder != nil {
		m.opts.Benchmark.Recorder.Reset()
	}
	m.running = true
	m.runningGen = m.generation
	cmd := startBenchmarkCmd(m.ref, m.ctx, m.opts, m.generation)
	if m.ticking {
		return cmd
	}
	m.ticking = true
	return tea.Batch(cmd, tickCmd())
}

// startBenchmarkCmd returns a tea.Cmd that runs the sweep.
func startBenchmarkCmd(ref *programRef, ctx context.Context, opts Options, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{ref: ref, generation: gen}

		start := time.Now()
		series, err := orchestration.RunBenchmark(ctx, opts.X, opts.Y, opts.Benchmark, reporter, io.Discard)
		if err != nil {
			return BenchmarkCompleteMsg{ExitCode: presenter.HandleError(err, time.Since(start), io.Discard), Generation: gen}
		}
		exitCode := orchestration.AnalyzeSeries(series, orchestration.PresentationOptions{}, presenter, io.Discard)
		return BenchmarkCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory utilization.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
