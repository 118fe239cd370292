// Package ui renders assistant output, notices, and errors as styled
// terminal panels.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
)

const defaultWidth = 100

// Renderer writes formatted output to a terminal.
type Renderer struct {
	out    io.Writer
	width  int
	plain  bool // skip markdown styling, used when output is not a TTY
	styles Styles
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth fixes the render width instead of detecting it.
func WithWidth(width int) Option {
	return func(r *Renderer) { r.width = width }
}

// WithPlainOutput disables markdown styling; response text is written as-is.
func WithPlainOutput(plain bool) Option {
	return func(r *Renderer) { r.plain = plain }
}

// NewRenderer creates a Renderer writing to out. When out is a terminal the
// width is detected once at construction.
func NewRenderer(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out:    out,
		width:  defaultWidth,
		styles: DefaultStyles(),
	}
	if f, ok := out.(*os.File); ok {
		if term.IsTerminal(int(f.Fd())) {
			if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
				r.width = w
			}
		} else {
			r.plain = true
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// panelWidth leaves room for borders and a margin.
func (r *Renderer) panelWidth() int {
	w := r.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// Clear clears the terminal screen.
func (r *Renderer) Clear() {
	fmt.Fprint(r.out, "\033[2J\033[H")
}

// Welcome prints the banner, a usage tip, and the command table.
func (r *Renderer) Welcome() {
	banner := lipgloss.JoinVertical(lipgloss.Center,
		r.styles.Title.Render("🐧 Linux Command Helper"),
		r.styles.Subtitle.Render("Learn. Explore. Master."),
	)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.WelcomePanel.Render(banner))
	fmt.Fprintln(r.out, r.styles.Muted.Render("💡 Tip: Start with 'tutorial <command>' or 'steps <task>', then ask follow-ups!"))
	fmt.Fprintln(r.out)
	r.Help()
}

// Help prints the table of recognized commands.
func (r *Renderer) Help() {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.Prompt).
		Headers("COMMAND", "DESCRIPTION", "EXAMPLE").
		Row("tutorial <cmd>", "Learn about a command", "tutorial grep").
		Row("steps <task>", "Get a step-by-step guide", "steps setup nginx").
		Row("<question>", "Ask follow-up questions", "what about permissions?").
		Row("clear", "Clear the screen", "clear").
		Row("help", "Show this help", "help").
		Row("quit / exit", "Exit the program", "quit")
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)
}

// ContextBar shows the active conversation mode and topic.
func (r *Renderer) ContextBar(mode, topic string) {
	if mode == "" || topic == "" {
		return
	}
	bar := fmt.Sprintf("%s %s %s %s",
		r.styles.Muted.Render("Context:"),
		r.styles.Highlight.Render(mode),
		r.styles.Muted.Render("→"),
		r.styles.SuccessText.Render(topic),
	)
	fmt.Fprintln(r.out, r.styles.ContextPanel.Render(bar))
}

// icons per request mode.
var modeIcons = map[string]string{
	"tutorial": "📚",
	"steps":    "📋",
	"followup": "💬",
}

// Response renders an assistant answer inside a titled panel, with the body
// treated as markdown.
func (r *Renderer) Response(mode, title, body string) {
	icon, ok := modeIcons[mode]
	if !ok {
		icon = "💡"
	}

	rendered := body
	if !r.plain {
		rendered = renderMarkdown(body, r.panelWidth()-4)
	}

	fmt.Fprintln(r.out, r.styles.Title.Render(fmt.Sprintf("%s %s", icon, title)))
	fmt.Fprintln(r.out, r.styles.ResponsePanel.Width(r.panelWidth()).Render(rendered))
	fmt.Fprintln(r.out)
}

// Error displays an error panel.
func (r *Renderer) Error(message string) {
	text := r.styles.ErrorText.Render("✗ " + message)
	fmt.Fprintln(r.out, r.styles.ErrorPanel.Render(text))
}

// Info displays an informational panel.
func (r *Renderer) Info(message string) {
	text := r.styles.InfoText.Render("ℹ " + message)
	fmt.Fprintln(r.out, r.styles.InfoPanel.Render(text))
}

// Success displays a success panel.
func (r *Renderer) Success(message string) {
	text := r.styles.SuccessText.Render("✓ " + message)
	fmt.Fprintln(r.out, r.styles.SuccessPanel.Render(text))
}

// Goodbye prints the exit message.
func (r *Renderer) Goodbye() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.WarningText.Render("👋 Thanks for using Linux Command Helper! Happy learning!"))
	fmt.Fprintln(r.out)
}
