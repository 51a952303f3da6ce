// Package printer renders command output with consistent console styling.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4")) // Blue
)

// Faint returns text with faint styling.
func Faint(text string) string {
	return faintStyle.Render(text)
}

// Bold returns text with bold styling.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Success returns text with success (green) styling.
func Success(text string) string {
	return successStyle.Render(text)
}

// Error returns text with error (red) styling.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning returns text with warning (yellow) styling.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Notice returns text with notice (blue) styling, used when nothing was done.
func Notice(text string) string {
	return noticeStyle.Render(text)
}

// Printer writes styled lines to an output stream.
type Printer struct {
	out io.Writer
}

// New creates a printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) line(text string) {
	fmt.Fprintln(p.out, text)
}

// Success prints a green line.
func (p *Printer) Success(format string, args ...any) {
	p.line(Success(fmt.Sprintf(format, args...)))
}

// Error prints a red line.
func (p *Printer) Error(format string, args ...any) {
	p.line(Error(fmt.Sprintf(format, args...)))
}

// Notice prints a blue line.
func (p *Printer) Notice(format string, args ...any) {
	p.line(Notice(fmt.Sprintf(format, args...)))
}

// Plain prints an unstyled line.
func (p *Printer) Plain(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// Output relays captured subprocess output: stdout in green, stderr in red.
// Empty streams print nothing.
func (p *Printer) Output(stdout, stderr string) {
	if s := strings.TrimRight(stdout, "\n"); s != "" {
		p.line(Success(s))
	}
	if s := strings.TrimRight(stderr, "\n"); s != "" {
		p.line(Error(s))
	}
}

// Group prints a titled, tab-indented list.
func (p *Printer) Group(title string, style func(string) string, items []string) {
	p.line(style(title + ":"))
	for _, item := range items {
		p.line(style("\t" + item))
	}
}
