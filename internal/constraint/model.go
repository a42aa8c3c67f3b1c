// Package constraint declares the search space and contrast requirements of a palette search:
// per-slot bounds, pairwise contrast constraints and the weight table used by the fitness model.
// A Model is built once before a run and is read-only afterwards.
package constraint

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jmylchreest/ansigen/internal/colour"
)

// Space selects the representation the search operates in.
type Space int

const (
	// SpaceOKLCH searches lightness, chroma and hue.
	SpaceOKLCH Space = iota
	// SpaceRGB searches independent 8-bit channel ranges.
	SpaceRGB
)

// String returns the space name used in flags and constraint files.
func (s Space) String() string {
	switch s {
	case SpaceOKLCH:
		return "oklch"
	case SpaceRGB:
		return "rgb"
	default:
		return fmt.Sprintf("space(%d)", int(s))
	}
}

// ParseSpace parses "oklch" or "rgb".
func ParseSpace(s string) (Space, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oklch", "":
		return SpaceOKLCH, nil
	case "rgb", "srgb":
		return SpaceRGB, nil
	default:
		return 0, fmt.Errorf("unknown colour space %q (want oklch or rgb)", s)
	}
}

// Metric selects the contrast formula for a pair.
type Metric int

const (
	// MetricDefault defers to the model's metric.
	MetricDefault Metric = iota
	// MetricAPCA is the APCA lightness contrast |Lc|.
	MetricAPCA
	// MetricWCAG is the WCAG 2.1 contrast ratio.
	MetricWCAG
)

// String returns the metric name.
func (m Metric) String() string {
	switch m {
	case MetricDefault:
		return "default"
	case MetricAPCA:
		return "apca"
	case MetricWCAG:
		return "wcag"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// ParseMetric parses "apca", "wcag" or "" (default).
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return MetricDefault, nil
	case "apca":
		return MetricAPCA, nil
	case "wcag", "wcag2", "wcag21":
		return MetricWCAG, nil
	default:
		return 0, fmt.Errorf("unknown contrast metric %q (want apca or wcag)", s)
	}
}

// Polarity restricts which text/background polarity counts for an APCA pair.
type Polarity int

const (
	// PolarityAny uses |Lc|.
	PolarityAny Polarity = iota
	// PolarityDarkOnLight only credits positive Lc (dark text on a lighter background).
	PolarityDarkOnLight
	// PolarityLightOnDark only credits negative Lc (light text on a darker background).
	PolarityLightOnDark
)

// String returns the polarity name.
func (p Polarity) String() string {
	switch p {
	case PolarityAny:
		return "any"
	case PolarityDarkOnLight:
		return "dark-on-light"
	case PolarityLightOnDark:
		return "light-on-dark"
	default:
		return fmt.Sprintf("polarity(%d)", int(p))
	}
}

// ParsePolarity parses a polarity name.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return PolarityAny, nil
	case "dark-on-light", "positive":
		return PolarityDarkOnLight, nil
	case "light-on-dark", "negative":
		return PolarityLightOnDark, nil
	default:
		return 0, fmt.Errorf("unknown polarity %q", s)
	}
}

// Range is a closed interval.
type Range struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Contains reports whether v lies in the range, allowing eps of slack.
func (r Range) Contains(v, eps float64) bool {
	return v >= r.Min-eps && v <= r.Max+eps
}

// Slot bounds one palette entry.
type Slot struct {
	Name string

	// Fixed slots ignore every bound and always hold Value.
	Fixed bool
	Value colour.RGB

	// OKLCH search space.
	Hue          float64
	HueTolerance float64
	Lightness    Range
	Chroma       Range
	// BaseSlot is the regular colour a bright slot tracks, or -1.
	BaseSlot    int
	MaxHueDrift float64

	// RGB search space.
	Red   Range
	Green Range
	Blue  Range
}

// Channels returns the RGB channel ranges in R, G, B order.
func (s *Slot) Channels() [3]Range {
	return [3]Range{s.Red, s.Green, s.Blue}
}

// Pair is a pairwise contrast requirement of foreground text on a background slot.
type Pair struct {
	FG       int
	BG       int
	Metric   Metric
	Min      float64
	Target   float64 // 0 means no uniformity target.
	Polarity Polarity
}

// HasTarget reports whether the pair is scored against a uniformity target.
func (p Pair) HasTarget() bool {
	return p.Target > 0
}

// String returns a short description like "white on black >= 75".
func (p Pair) String() string {
	return fmt.Sprintf("%s on %s >= %g", colour.SlotName(p.FG), colour.SlotName(p.BG), p.Min)
}

// Model is the complete, immutable description of one palette flavour.
type Model struct {
	Name        string
	Description string
	Space       Space
	Metric      Metric
	Slots       [colour.PaletteSize]Slot
	Pairs       []Pair
	Weights     Weights
}

// MetricFor returns the metric a pair is evaluated with.
func (m *Model) MetricFor(p Pair) Metric {
	if p.Metric == MetricDefault {
		return m.Metric
	}
	return p.Metric
}

// Covered returns a matrix marking (fg, bg) combinations named by the pair table.
func (m *Model) Covered() [colour.PaletteSize][colour.PaletteSize]bool {
	var covered [colour.PaletteSize][colour.PaletteSize]bool
	for _, p := range m.Pairs {
		covered[p.FG][p.BG] = true
	}
	return covered
}

// ReadableThreshold returns the general readability floor in the model's metric.
func (m *Model) ReadableThreshold() float64 {
	if m.Metric == MetricWCAG {
		return m.Weights.ReadableWCAG
	}
	return m.Weights.ReadableAPCA
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	c := *m
	c.Pairs = append([]Pair(nil), m.Pairs...)
	return &c
}

// Validate checks that the model is internally consistent.
func (m *Model) Validate() error {
	var errs []error

	if m.Metric != MetricAPCA && m.Metric != MetricWCAG {
		errs = append(errs, fmt.Errorf("model metric must be apca or wcag, got %s", m.Metric))
	}
	if m.Space != SpaceOKLCH && m.Space != SpaceRGB {
		errs = append(errs, fmt.Errorf("unknown space %s", m.Space))
	}

	for _, f := range []struct {
		idx  int
		want colour.RGB
	}{{colour.Black, colour.RGBBlack}, {colour.BrightWhite, colour.RGBWhite}} {
		idx, want := f.idx, f.want
		s := m.Slots[idx]
		if !s.Fixed || s.Value != want {
			errs = append(errs, fmt.Errorf("slot %d (%s) must be fixed to %s", idx, colour.SlotName(idx), want.Hex()))
		}
	}

	for i := range m.Slots {
		if err := m.validateSlot(i); err != nil {
			errs = append(errs, err)
		}
	}

	for i, p := range m.Pairs {
		if p.FG < 0 || p.FG >= colour.PaletteSize || p.BG < 0 || p.BG >= colour.PaletteSize {
			errs = append(errs, fmt.Errorf("pair %d: slot index out of range (%d on %d)", i, p.FG, p.BG))
			continue
		}
		if p.FG == p.BG {
			errs = append(errs, fmt.Errorf("pair %d: foreground and background are both slot %d", i, p.FG))
		}
		if p.Min <= 0 {
			errs = append(errs, fmt.Errorf("pair %d (%s): minimum must be positive", i, p))
		}
		if p.HasTarget() && p.Target < p.Min {
			errs = append(errs, fmt.Errorf("pair %d (%s): target %g below minimum", i, p, p.Target))
		}
	}

	return errors.Join(errs...)
}

func (m *Model) validateSlot(i int) error {
	s := &m.Slots[i]
	if s.Fixed {
		return nil
	}

	name := colour.SlotName(i)
	checkRange := func(label string, r Range, lo, hi float64) error {
		if r.Min > r.Max {
			return fmt.Errorf("slot %d (%s): %s min %g exceeds max %g", i, name, label, r.Min, r.Max)
		}
		if r.Min < lo || r.Max > hi {
			return fmt.Errorf("slot %d (%s): %s range [%g, %g] outside [%g, %g]", i, name, label, r.Min, r.Max, lo, hi)
		}
		return nil
	}

	var errs []error
	switch m.Space {
	case SpaceOKLCH:
		errs = append(errs,
			checkRange("lightness", s.Lightness, 0, 1),
			checkRange("chroma", s.Chroma, 0, colour.MaxSearchChroma),
		)
		if s.HueTolerance < 0 {
			errs = append(errs, fmt.Errorf("slot %d (%s): negative hue tolerance", i, name))
		}
		if s.BaseSlot < -1 || s.BaseSlot >= colour.PaletteSize || s.BaseSlot == i {
			errs = append(errs, fmt.Errorf("slot %d (%s): invalid base slot %d", i, name, s.BaseSlot))
		}
	case SpaceRGB:
		for c, r := range s.Channels() {
			errs = append(errs, checkRange([3]string{"red", "green", "blue"}[c], r, 0, 255))
		}
	}
	return errors.Join(errs...)
}
