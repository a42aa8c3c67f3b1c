// Package report renders palette analyses for the terminal: contrast tables, the 16x16 APCA
// matrix, hue spacing and the fitness breakdown of a palette.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColourMode controls ANSI colour output.
type ColourMode int

const (
	// ColourAuto colours output only when writing to a terminal.
	ColourAuto ColourMode = iota
	// ColourAlways forces 24-bit colour.
	ColourAlways
	// ColourNever disables colour.
	ColourNever
)

// String returns the flag value of the mode.
func (m ColourMode) String() string {
	switch m {
	case ColourAlways:
		return "always"
	case ColourNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColourMode parses "auto", "always" or "never".
func ParseColourMode(s string) (ColourMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColourAuto, nil
	case "always", "force":
		return ColourAlways, nil
	case "never", "none", "off":
		return ColourNever, nil
	default:
		return ColourAuto, fmt.Errorf("invalid colour mode %q (want auto, always or never)", s)
	}
}

// Set parses a flag value.
func (m *ColourMode) Set(s string) error {
	v, err := ParseColourMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Type names the flag value type in help output.
func (m *ColourMode) Type() string {
	return "mode"
}

// Reporter writes reports to an output stream.
type Reporter struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	bold     lipgloss.Style
}

// New returns a reporter writing to w.
func New(w io.Writer, mode ColourMode) *Reporter {
	renderer := lipgloss.NewRenderer(w)
	switch mode {
	case ColourAlways:
		renderer.SetColorProfile(termenv.TrueColor)
	case ColourNever:
		renderer.SetColorProfile(termenv.Ascii)
	default:
		if !isTerminal(w) {
			renderer.SetColorProfile(termenv.Ascii)
		}
	}

	return &Reporter{
		out:      w,
		renderer: renderer,
		bold:     renderer.NewStyle().Bold(true),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}

// Colour reports whether the reporter emits ANSI colour.
func (r *Reporter) Colour() bool {
	return r.renderer.ColorProfile() != termenv.Ascii
}

// pairStyle renders text in fg on bg.
func (r *Reporter) pairStyle(fg, bg string) *lipgloss.Style {
	s := r.renderer.NewStyle().Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg))
	return &s
}

func (r *Reporter) fgStyle(c lipgloss.Color) *lipgloss.Style {
	s := r.renderer.NewStyle().Foreground(c)
	return &s
}

func (r *Reporter) bgStyle(bg string) *lipgloss.Style {
	s := r.renderer.NewStyle().Background(lipgloss.Color(bg))
	return &s
}

func (r *Reporter) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Reporter) println(s string) {
	fmt.Fprintln(r.out, s)
}
