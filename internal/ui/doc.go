// Package ui provides theme and color support for the command-line output.
// It holds the active color scheme, the ANSI helpers used by the table
// printer, and the lipgloss styles used for the banner and summary boxes.
package ui
