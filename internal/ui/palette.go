// Package ui renders tasks for the terminal.
package ui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/amonks/tasks/task"
)

// Badge colors for each priority.
var (
	colorHigh   = lipgloss.Color("#dc2626")
	colorMedium = lipgloss.Color("#b45309")
	colorLow    = lipgloss.Color("#059669")
	colorMuted  = lipgloss.Color("#9aa0a6")
	colorID     = lipgloss.Color("#0891b2")
)

// Palette styles output. The zero value renders plain text.
type Palette struct {
	enabled bool

	idPrefix lipgloss.Style
	high     lipgloss.Style
	medium   lipgloss.Style
	low      lipgloss.Style
	muted    lipgloss.Style
	done     lipgloss.Style
}

// PaletteFor returns a colored palette when w is a terminal that accepts
// color, and a plain one otherwise.
func PaletteFor(w io.Writer) Palette {
	if !ColorEnabled(w) {
		return Palette{}
	}
	return NewPalette(lipgloss.NewRenderer(w))
}

// NewPalette returns a colored palette drawing with r.
func NewPalette(r *lipgloss.Renderer) Palette {
	badge := r.NewStyle().Bold(true)
	return Palette{
		enabled:  true,
		idPrefix: r.NewStyle().Bold(true).Foreground(colorID),
		high:     badge.Foreground(colorHigh),
		medium:   badge.Foreground(colorMedium),
		low:      badge.Foreground(colorLow),
		muted:    r.NewStyle().Foreground(colorMuted),
		done:     r.NewStyle().Strikethrough(true).Foreground(colorMuted),
	}
}

// ANSIPalette returns a colored palette using the 16-color profile,
// regardless of where output goes.
func ANSIPalette(w io.Writer) Palette {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return NewPalette(r)
}

// Enabled reports whether the palette emits escape sequences.
func (p Palette) Enabled() bool {
	return p.enabled
}

// ID returns id with its unique prefix highlighted.
func (p Palette) ID(id string, prefixLen int) string {
	if !p.enabled || prefixLen <= 0 || prefixLen > len(id) {
		return id
	}
	return p.idPrefix.Render(id[:prefixLen]) + id[prefixLen:]
}

// Badge returns the upper-case priority label in the priority's color.
func (p Palette) Badge(priority task.Priority) string {
	label := strings.ToUpper(string(priority))
	if !p.enabled {
		return label
	}
	switch priority {
	case task.PriorityHigh:
		return p.high.Render(label)
	case task.PriorityMedium:
		return p.medium.Render(label)
	default:
		return p.low.Render(label)
	}
}

// Muted dims secondary text such as placeholders.
func (p Palette) Muted(value string) string {
	if !p.enabled {
		return value
	}
	return p.muted.Render(value)
}

// Done marks the title of a completed task.
func (p Palette) Done(value string) string {
	if !p.enabled {
		return value
	}
	return p.done.Render(value)
}

// ColorEnabled reports whether w should receive ANSI colors.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// PrefixLength returns the unique prefix length for id, or 0 when unknown.
func PrefixLength(prefixLengths map[string]int, id string) int {
	if prefixLengths == nil || id == "" {
		return 0
	}
	return prefixLengths[strings.ToLower(id)]
}
