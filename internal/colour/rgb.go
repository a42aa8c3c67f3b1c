// Package colour provides the colour math used by the palette search: sRGB, Oklab and OKLCH
// conversions, WCAG 2.1 and APCA contrast, hue geometry and gamut tests.
package colour

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteSize is the number of slots in a terminal palette.
const PaletteSize = 16

// Slot indices for the conventional ANSI roles.
const (
	Black = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

var slotNames = [PaletteSize]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"br.black", "br.red", "br.green", "br.yellow", "br.blue", "br.magenta", "br.cyan", "br.white",
}

// SlotName returns the short ANSI role name for a palette index (e.g. "br.red").
func SlotName(index int) string {
	if index < 0 || index >= PaletteSize {
		return fmt.Sprintf("slot%d", index)
	}
	return slotNames[index]
}

// RGB represents a colour in 8-bit sRGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Common constants.
var (
	RGBBlack = RGB{R: 0, G: 0, B: 0}
	RGBWhite = RGB{R: 255, G: 255, B: 255}
)

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ParseHex parses "#rrggbb" (the leading # is optional).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 7 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return FromColorful(c), nil
}

// Colorful converts to a go-colorful colour with channels in [0,1].
func (rgb RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

// FromColorful converts a go-colorful colour to 8-bit sRGB, clamping out-of-range channels.
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// FromFloat builds an RGB from channels in [0,255], rounding to the nearest integer.
func FromFloat(r, g, b float64) RGB {
	return RGB{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
