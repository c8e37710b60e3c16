package ui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles derived from the active theme.
type Styles struct {
	// Banner frames the execution configuration header.
	Banner lipgloss.Style
	// Title is used for section headings.
	Title lipgloss.Style
	// Summary frames the final status line.
	Summary lipgloss.Style
}

// CurrentStyles builds styles for the active theme. With colors disabled the
// styles keep their borders and padding but render without color.
func CurrentStyles() Styles {
	theme := GetCurrentTheme()
	var accent lipgloss.TerminalColor = lipgloss.NoColor{}
	if theme.Accent != "" {
		accent = lipgloss.Color(theme.Accent)
	}
	return Styles{
		Banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(theme.Bold != "").
			Foreground(accent),
		Summary: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(accent),
	}
}

// Palette holds the lipgloss colors used by the live dashboard.
type Palette struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DarkPalette pairs the dark theme accent with muted panel colors.
	DarkPalette = Palette{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#005F87"),
		Accent:  lipgloss.Color(DarkTheme.Accent),
		Success: lipgloss.Color("#87D700"),
		Warning: lipgloss.Color("#FFD700"),
		Error:   lipgloss.Color("#FF0000"),
		Dim:     lipgloss.Color("#6C6C6C"),
	}

	// LightPalette is used with the light theme.
	LightPalette = Palette{
		Text:    lipgloss.Color("#1C1C1C"),
		Border:  lipgloss.Color("#5F87AF"),
		Accent:  lipgloss.Color(LightTheme.Accent),
		Success: lipgloss.Color("#008700"),
		Warning: lipgloss.Color("#AF5F00"),
		Error:   lipgloss.Color("#AF0000"),
		Dim:     lipgloss.Color("#585858"),
	}

	// NoColorPalette renders everything in the terminal's default colors.
	NoColorPalette = Palette{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// CurrentPalette returns the dashboard palette matching the active theme.
func CurrentPalette() Palette {
	switch GetCurrentTheme().Name {
	case NoColorTheme.Name:
		return NoColorPalette
	case LightTheme.Name:
		return LightPalette
	default:
		return DarkPalette
	}
}
