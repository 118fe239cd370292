package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color scheme for the terminal UI.
var (
	colorPrimary   = lipgloss.Color("45")  // cyan
	colorSecondary = lipgloss.Color("39")  // blue
	colorSuccess   = lipgloss.Color("42")  // green
	colorWarning   = lipgloss.Color("11")  // yellow
	colorError     = lipgloss.Color("196") // bright red
	colorMuted     = lipgloss.Color("245") // gray
	colorHighlight = lipgloss.Color("51")  // bright cyan
)

// Styles groups the lipgloss styles used by the renderer.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Muted     lipgloss.Style
	Highlight lipgloss.Style

	Prompt lipgloss.Style

	ResponsePanel lipgloss.Style
	ErrorPanel    lipgloss.Style
	InfoPanel     lipgloss.Style
	SuccessPanel  lipgloss.Style
	WelcomePanel  lipgloss.Style
	ContextPanel  lipgloss.Style

	ErrorText   lipgloss.Style
	InfoText    lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() Styles {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Italic(true),
		Muted: lipgloss.NewStyle().
			Foreground(colorMuted).
			Faint(true),
		Highlight: lipgloss.NewStyle().
			Foreground(colorHighlight),

		Prompt: lipgloss.NewStyle().
			Foreground(colorPrimary),

		ResponsePanel: panel.
			BorderForeground(colorSuccess).
			Padding(1, 2),
		ErrorPanel: panel.
			BorderForeground(colorError),
		InfoPanel: panel.
			BorderForeground(colorPrimary),
		SuccessPanel: panel.
			BorderForeground(colorSuccess),
		WelcomePanel: panel.
			BorderForeground(colorSecondary),
		ContextPanel: panel.
			BorderForeground(colorPrimary),

		ErrorText: lipgloss.NewStyle().
			Foreground(colorError),
		InfoText: lipgloss.NewStyle().
			Foreground(colorPrimary),
		SuccessText: lipgloss.NewStyle().
			Foreground(colorSuccess),
		WarningText: lipgloss.NewStyle().
			Foreground(colorWarning),
	}
}
