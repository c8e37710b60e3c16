package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/kendallbench/internal/ui"
)

// Dashboard styles, rebuilt from the ui palette by initStyles.
var (
	panelStyle       lipgloss.Style
	panelTitleStyle  lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	dimStyle         lipgloss.Style
	labelStyle       lipgloss.Style
	valueStyle       lipgloss.Style
	selectedStyle    lipgloss.Style
	statusWaitStyle  lipgloss.Style
	statusRunStyle   lipgloss.Style
	statusDoneStyle  lipgloss.Style
	statusErrorStyle lipgloss.Style
	footerKeyStyle   lipgloss.Style
	cpuSparkStyle    lipgloss.Style
	memSparkStyle    lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds every style from the active theme. Run calls it again
// after the application has applied -no-color.
func initStyles() {
	p := ui.CurrentPalette()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Text)
	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(p.Dim)
	labelStyle = lipgloss.NewStyle().Foreground(p.Dim)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	statusWaitStyle = lipgloss.NewStyle().Foreground(p.Dim)
	statusRunStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)
	statusDoneStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Success)
	statusErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Error)
	footerKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	cpuSparkStyle = lipgloss.NewStyle().Foreground(p.Accent)
	memSparkStyle = lipgloss.NewStyle().Foreground(p.Warning)
}
