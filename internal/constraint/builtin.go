package constraint

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jmylchreest/ansigen/internal/colour"
)

// DefaultName is the canonical flavour.
const DefaultName = "oklch-apca"

var builtins = map[string]func() *Model{
	"oklch-apca": OKLCHAPCA,
	"oklch-wcag": OKLCHWCAG,
	"rgb-wcag":   RGBWCAG,
	"minimal":    Minimal,
}

// Names returns the built-in flavour names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Builtin returns a fresh copy of the named built-in flavour.
func Builtin(name string) (*Model, error) {
	build, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown constraint model %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return build(), nil
}

func fixedSlot(index int, value colour.RGB) Slot {
	return Slot{Name: colour.SlotName(index), Fixed: true, Value: value, BaseSlot: -1}
}

func hueSlot(index int, hue, tolerance float64, l, c Range) Slot {
	return Slot{
		Name:         colour.SlotName(index),
		Hue:          hue,
		HueTolerance: tolerance,
		Lightness:    l,
		Chroma:       c,
		BaseSlot:     -1,
	}
}

func brightSlot(index int, hue, tolerance float64, l, c Range, drift float64) Slot {
	s := hueSlot(index, hue, tolerance, l, c)
	s.BaseSlot = index - 8
	s.MaxHueDrift = drift
	return s
}

func greySlot(index int, l Range, maxChroma float64) Slot {
	return hueSlot(index, 0, 180, l, Range{0, maxChroma})
}

func channelSlot(index int, r, g, b Range) Slot {
	return Slot{Name: colour.SlotName(index), Red: r, Green: g, Blue: b, BaseSlot: -1}
}

// oklchSlots is the shared OKLCH search space for dark themes on a black background.
func oklchSlots() [colour.PaletteSize]Slot {
	const (
		tolerance = 15.0
		brightTol = 20.0
		drift     = 15.0
	)
	return [colour.PaletteSize]Slot{
		fixedSlot(colour.Black, colour.RGBBlack),
		hueSlot(colour.Red, 25, tolerance, Range{0.55, 0.72}, Range{0.10, 0.25}),
		hueSlot(colour.Green, 145, tolerance, Range{0.62, 0.82}, Range{0.10, 0.25}),
		hueSlot(colour.Yellow, 100, tolerance, Range{0.72, 0.90}, Range{0.08, 0.20}),
		hueSlot(colour.Blue, 260, tolerance, Range{0.45, 0.68}, Range{0.08, 0.22}),
		hueSlot(colour.Magenta, 330, tolerance, Range{0.55, 0.75}, Range{0.10, 0.25}),
		hueSlot(colour.Cyan, 200, tolerance, Range{0.65, 0.85}, Range{0.06, 0.18}),
		greySlot(colour.White, Range{0.80, 0.92}, 0.03),
		greySlot(colour.BrightBlack, Range{0.35, 0.55}, 0.03),
		brightSlot(colour.BrightRed, 25, brightTol, Range{0.63, 0.80}, Range{0.10, 0.25}, drift),
		brightSlot(colour.BrightGreen, 145, brightTol, Range{0.70, 0.90}, Range{0.10, 0.25}, drift),
		brightSlot(colour.BrightYellow, 100, brightTol, Range{0.80, 0.96}, Range{0.08, 0.20}, drift),
		brightSlot(colour.BrightBlue, 260, brightTol, Range{0.55, 0.78}, Range{0.08, 0.22}, drift),
		brightSlot(colour.BrightMagenta, 330, brightTol, Range{0.63, 0.83}, Range{0.10, 0.25}, drift),
		brightSlot(colour.BrightCyan, 200, brightTol, Range{0.73, 0.92}, Range{0.06, 0.18}, drift),
		fixedSlot(colour.BrightWhite, colour.RGBWhite),
	}
}

// onBackground builds one pair per foreground on the same background.
func onBackground(bg int, threshold float64, fgs ...int) []Pair {
	pairs := make([]Pair, 0, len(fgs))
	for _, fg := range fgs {
		pairs = append(pairs, Pair{FG: fg, BG: bg, Min: threshold})
	}
	return pairs
}

// brightOnRegular pairs each bright slot with its regular counterpart.
func brightOnRegular(blackMin, threshold float64) []Pair {
	pairs := []Pair{{FG: colour.BrightBlack, BG: colour.Black, Min: blackMin}}
	for i := colour.Red; i <= colour.White; i++ {
		pairs = append(pairs, Pair{FG: i + 8, BG: i, Min: threshold})
	}
	return pairs
}

// OKLCHAPCA is the canonical flavour: OKLCH search scored with APCA. Base colours converge
// towards a uniform Lc 60 on black.
func OKLCHAPCA() *Model {
	var pairs []Pair
	pairs = append(pairs, brightOnRegular(15, 30)...)
	for fg := colour.Red; fg <= colour.Cyan; fg++ {
		pairs = append(pairs, Pair{FG: fg, BG: colour.Black, Min: 45, Target: 60})
	}
	pairs = append(pairs, Pair{FG: colour.White, BG: colour.Black, Min: 75})
	pairs = append(pairs, onBackground(colour.Black, 60,
		colour.BrightRed, colour.BrightGreen, colour.BrightYellow,
		colour.BrightBlue, colour.BrightMagenta, colour.BrightCyan)...)
	pairs = append(pairs, onBackground(colour.Blue, 30,
		colour.Black, colour.Red, colour.Green, colour.Yellow, colour.Magenta, colour.Cyan, colour.White)...)
	pairs = append(pairs, onBackground(colour.Green, 30,
		colour.Black, colour.Red, colour.Yellow, colour.Blue, colour.Magenta, colour.Cyan, colour.White)...)
	pairs = append(pairs, onBackground(colour.Cyan, 20,
		colour.Black, colour.Red, colour.Green, colour.Yellow, colour.Blue, colour.Magenta, colour.White)...)

	return &Model{
		Name:        "oklch-apca",
		Description: "OKLCH search with APCA contrast targets for dark themes",
		Space:       SpaceOKLCH,
		Metric:      MetricAPCA,
		Slots:       oklchSlots(),
		Pairs:       pairs,
		Weights:     DefaultWeights(),
	}
}

func wcagPairs() []Pair {
	var pairs []Pair
	pairs = append(pairs, brightOnRegular(1.4, 1.3)...)
	for fg := colour.Red; fg <= colour.Cyan; fg++ {
		pairs = append(pairs, Pair{FG: fg, BG: colour.Black, Min: 4.5, Target: 6})
	}
	pairs = append(pairs, Pair{FG: colour.White, BG: colour.Black, Min: 10})
	pairs = append(pairs, onBackground(colour.Black, 7,
		colour.BrightRed, colour.BrightGreen, colour.BrightYellow,
		colour.BrightBlue, colour.BrightMagenta, colour.BrightCyan)...)
	pairs = append(pairs, onBackground(colour.Blue, 3, colour.Black, colour.Yellow, colour.White)...)
	pairs = append(pairs, onBackground(colour.Green, 3, colour.Black, colour.Blue, colour.Magenta)...)
	pairs = append(pairs, onBackground(colour.Cyan, 3, colour.Black, colour.Blue)...)
	return pairs
}

// OKLCHWCAG searches the canonical OKLCH space but scores WCAG 2.1 ratios.
func OKLCHWCAG() *Model {
	return &Model{
		Name:        "oklch-wcag",
		Description: "OKLCH search with WCAG 2.1 contrast ratios",
		Space:       SpaceOKLCH,
		Metric:      MetricWCAG,
		Slots:       oklchSlots(),
		Pairs:       wcagPairs(),
		Weights:     DefaultWeights(),
	}
}

// RGBWCAG searches independent sRGB channel ranges scored with WCAG 2.1 ratios.
func RGBWCAG() *Model {
	return &Model{
		Name:        "rgb-wcag",
		Description: "sRGB channel-range search with WCAG 2.1 contrast ratios",
		Space:       SpaceRGB,
		Metric:      MetricWCAG,
		Slots: [colour.PaletteSize]Slot{
			fixedSlot(colour.Black, colour.RGBBlack),
			channelSlot(colour.Red, Range{170, 255}, Range{40, 120}, Range{40, 120}),
			channelSlot(colour.Green, Range{60, 150}, Range{170, 240}, Range{60, 140}),
			channelSlot(colour.Yellow, Range{200, 255}, Range{170, 230}, Range{40, 130}),
			channelSlot(colour.Blue, Range{50, 120}, Range{110, 180}, Range{200, 255}),
			channelSlot(colour.Magenta, Range{170, 240}, Range{80, 140}, Range{190, 255}),
			channelSlot(colour.Cyan, Range{50, 130}, Range{180, 230}, Range{190, 240}),
			channelSlot(colour.White, Range{190, 230}, Range{190, 230}, Range{190, 230}),
			channelSlot(colour.BrightBlack, Range{80, 130}, Range{80, 130}, Range{80, 130}),
			channelSlot(colour.BrightRed, Range{220, 255}, Range{90, 160}, Range{90, 160}),
			channelSlot(colour.BrightGreen, Range{110, 190}, Range{210, 255}, Range{110, 180}),
			channelSlot(colour.BrightYellow, Range{230, 255}, Range{210, 255}, Range{100, 180}),
			channelSlot(colour.BrightBlue, Range{100, 170}, Range{160, 210}, Range{230, 255}),
			channelSlot(colour.BrightMagenta, Range{210, 255}, Range{130, 190}, Range{220, 255}),
			channelSlot(colour.BrightCyan, Range{100, 170}, Range{220, 255}, Range{220, 255}),
			fixedSlot(colour.BrightWhite, colour.RGBWhite),
		},
		Pairs:   wcagPairs(),
		Weights: DefaultWeights(),
	}
}

// Minimal searches the whole sRGB cube with a single requirement: white text on the black
// background at WCAG AA (4.5:1).
func Minimal() *Model {
	full := Range{0, 255}
	var slots [colour.PaletteSize]Slot
	for i := range slots {
		slots[i] = channelSlot(i, full, full, full)
	}
	slots[colour.Black] = fixedSlot(colour.Black, colour.RGBBlack)
	slots[colour.BrightWhite] = fixedSlot(colour.BrightWhite, colour.RGBWhite)

	return &Model{
		Name:        "minimal",
		Description: "full sRGB search, white on black >= 4.5:1 only",
		Space:       SpaceRGB,
		Metric:      MetricWCAG,
		Slots:       slots,
		Pairs:       []Pair{{FG: colour.White, BG: colour.Black, Min: 4.5}},
		Weights:     DefaultWeights(),
	}
}
