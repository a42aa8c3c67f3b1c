package report

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// APCA readability tiers on |Lc|.
const (
	APCAPreferred = 90.0 // preferred for body text
	APCABody      = 75.0 // minimum for body text
	APCALarge     = 60.0 // large text
	APCANonText   = 45.0 // non-text, large bold
)

// WCAG 2.1 tiers.
const (
	WCAGNormal = 4.5
	WCAGLarge  = 3.0
)

var (
	colourPreferred = lipgloss.Color("6")
	colourPass      = lipgloss.Color("2")
	colourWarn      = lipgloss.Color("3")
	colourOrange    = lipgloss.Color("#ffa500")
	colourFail      = lipgloss.Color("1")
)

// APCASymbol returns the status glyph for an Lc value.
func APCASymbol(lc float64) string {
	switch abs := math.Abs(lc); {
	case abs >= APCAPreferred:
		return "★"
	case abs >= APCABody:
		return "✓"
	case abs >= APCALarge:
		return "~"
	case abs >= APCANonText:
		return "○"
	default:
		return "✗"
	}
}

func apcaColour(lc float64) lipgloss.Color {
	switch abs := math.Abs(lc); {
	case abs >= APCAPreferred:
		return colourPreferred
	case abs >= APCABody:
		return colourPass
	case abs >= APCALarge:
		return colourWarn
	case abs >= APCANonText:
		return colourOrange
	default:
		return colourFail
	}
}

// FormatAPCA renders an Lc value with its glyph, e.g. "✓ -78.2".
func FormatAPCA(lc float64) string {
	return fmt.Sprintf("%s%6.1f", APCASymbol(lc), lc)
}

// WCAGSymbol returns the status glyph for a contrast ratio.
func WCAGSymbol(ratio float64) string {
	switch {
	case ratio >= WCAGNormal:
		return "✓"
	case ratio >= WCAGLarge:
		return "~"
	default:
		return "✗"
	}
}

func wcagColour(ratio float64) lipgloss.Color {
	switch {
	case ratio >= WCAGNormal:
		return colourPass
	case ratio >= WCAGLarge:
		return colourWarn
	default:
		return colourFail
	}
}

// HueSpacingStatus grades the minimum hue separation of the base colours.
func HueSpacingStatus(degrees float64) string {
	switch {
	case degrees >= 50:
		return "✓ Good"
	case degrees >= 30:
		return "~ OK"
	default:
		return "✗ Close"
	}
}
