// Package output prints styled command line messages.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#1E3A5F")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

// Printer writes styled lines to w.
type Printer struct {
	w io.Writer
}

func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Stdout is the printer used by commands.
func Stdout() *Printer {
	return New(os.Stdout)
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	p.line(successStyle.Render("✓ "), format, args...)
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	p.line(warningStyle.Render("⚠ "), format, args...)
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	p.line(errorStyle.Render("✗ "), format, args...)
}

// Info prints an info message
func (p *Printer) Info(format string, args ...any) {
	p.line(infoStyle.Render("ℹ "), format, args...)
}

func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Section prints a section header underlined to the title's width.
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, primaryStyle.Render(title))
	fmt.Fprintln(p.w, mutedStyle.Render(strings.Repeat("═", lipgloss.Width(title))))
}

// Counts prints one aligned "name  n" row per key, sorted by name.
func (p *Printer) Counts(counts map[string]int) {
	names := make([]string, 0, len(counts))
	width := 0
	for name := range counts {
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(names)

	label := lipgloss.NewStyle().Width(width + 2)
	for _, name := range names {
		fmt.Fprintln(p.w, label.Render(name)+infoStyle.Render(fmt.Sprint(counts[name])))
	}
}

func (p *Printer) line(icon, format string, args ...any) {
	fmt.Fprint(p.w, icon)
	fmt.Fprintf(p.w, format+"\n", args...)
}
