// Package genetic implements the palette search: a population of candidate palettes evolved by
// elitist selection, crossover and Gaussian mutation against a constraint.Model.
package genetic

import (
	"github.com/jmylchreest/ansigen/internal/colour"
	"github.com/jmylchreest/ansigen/internal/constraint"
)

// Swatch holds one slot's components, either (R, G, B) in [0,255] or (L, C, H) depending on the
// model's space.
type Swatch [3]float64

// Palette is one candidate: a swatch per ANSI slot.
type Palette [colour.PaletteSize]Swatch

// fixedSwatch stores a constant colour in the representation of the given space.
func fixedSwatch(space constraint.Space, c colour.RGB) Swatch {
	if space == constraint.SpaceRGB {
		return Swatch{float64(c.R), float64(c.G), float64(c.B)}
	}
	lch := colour.ToLCH(c)
	return Swatch{lch.L, lch.C, lch.H}
}

// LCH interprets an OKLCH swatch.
func (s Swatch) LCH() colour.LCH {
	return colour.LCH{L: s[0], C: s[1], H: s[2]}
}

// SwatchRGB converts slot i of a palette to sRGB. Fixed slots always yield their constant.
func SwatchRGB(m *constraint.Model, i int, s Swatch) colour.RGB {
	slot := &m.Slots[i]
	if slot.Fixed {
		return slot.Value
	}
	if m.Space == constraint.SpaceRGB {
		return colour.FromFloat(s[0], s[1], s[2])
	}
	return s.LCH().RGB()
}

// RGB converts every slot to 8-bit sRGB.
func (p *Palette) RGB(m *constraint.Model) [colour.PaletteSize]colour.RGB {
	var out [colour.PaletteSize]colour.RGB
	for i := range p {
		out[i] = SwatchRGB(m, i, p[i])
	}
	return out
}

// FromRGB builds a palette in the model's space from concrete colours, e.g. a parsed theme.
func FromRGB(m *constraint.Model, colours [colour.PaletteSize]colour.RGB) Palette {
	var p Palette
	for i, c := range colours {
		p[i] = fixedSwatch(m.Space, c)
	}
	return p
}

// Population is the candidate set of one generation with a parallel fitness slice.
type Population struct {
	Members []Palette
	Fitness []float64
}

// NewPopulation allocates a population of n palettes.
func NewPopulation(n int) *Population {
	return &Population{
		Members: make([]Palette, n),
		Fitness: make([]float64, n),
	}
}

// Len returns the number of candidates.
func (p *Population) Len() int {
	return len(p.Members)
}
