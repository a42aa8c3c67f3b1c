package genetic

import (
	"math"
	"math/rand/v2"

	"github.com/jmylchreest/ansigen/internal/colour"
	"github.com/jmylchreest/ansigen/internal/constraint"
)

// Mutation step sizes as a fraction of each component's allowed range.
const (
	sigmaLightness = 0.10
	sigmaChroma    = 0.15
	sigmaHue       = 0.30
	sigmaChannel   = 0.10
)

// uniform samples [lo, hi].
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// randomPalette fills p with a candidate sampled uniformly inside every slot's bounds.
func randomPalette(m *constraint.Model, rng *rand.Rand, p *Palette) {
	for i := range p {
		p[i] = randomSwatch(m, i, rng)
	}
}

func randomSwatch(m *constraint.Model, i int, rng *rand.Rand) Swatch {
	s := &m.Slots[i]
	if s.Fixed {
		return fixedSwatch(m.Space, s.Value)
	}

	if m.Space == constraint.SpaceRGB {
		var sw Swatch
		for c, r := range s.Channels() {
			sw[c] = r.Clamp(math.Round(uniform(rng, r.Min, r.Max)))
		}
		return sw
	}

	l := uniform(rng, s.Lightness.Min, s.Lightness.Max)
	var h float64
	if s.HueTolerance >= 180 {
		h = rng.Float64() * 360
	} else {
		h = colour.NormaliseHue(s.Hue + uniform(rng, -s.HueTolerance, s.HueTolerance))
	}
	cmax := math.Min(s.Chroma.Max, colour.MaxChroma(l, h))
	c := cmax
	if cmax > s.Chroma.Min {
		c = uniform(rng, s.Chroma.Min, cmax)
	}
	return Swatch{l, c, h}
}

// crossover writes a child of a and b into child. OKLCH slots interpolate (L, C) linearly and H
// along the shorter arc with one random factor per slot; RGB slots take each channel from either
// parent.
func crossover(m *constraint.Model, a, b *Palette, rng *rand.Rand, child *Palette) {
	for i := range child {
		if m.Slots[i].Fixed {
			continue
		}
		x, y := a[i], b[i]
		if m.Space == constraint.SpaceRGB {
			for c := range x {
				if rng.IntN(2) == 0 {
					child[i][c] = x[c]
				} else {
					child[i][c] = y[c]
				}
			}
			continue
		}
		t := rng.Float64()
		child[i] = Swatch{
			x[0] + (y[0]-x[0])*t,
			x[1] + (y[1]-x[1])*t,
			colour.HueLerp(x[2], y[2], t),
		}
	}
}

// mutate perturbs each mutable component with probability rate.
func mutate(m *constraint.Model, p *Palette, rate float64, rng *rand.Rand) {
	for i := range p {
		s := &m.Slots[i]
		if s.Fixed {
			continue
		}
		var sigma [3]float64
		if m.Space == constraint.SpaceRGB {
			for c, r := range s.Channels() {
				sigma[c] = sigmaChannel * r.Span()
			}
		} else {
			sigma = [3]float64{
				sigmaLightness * s.Lightness.Span(),
				sigmaChroma * s.Chroma.Span(),
				sigmaHue * math.Min(s.HueTolerance, 180),
			}
		}
		for c := range sigma {
			if rng.Float64() < rate {
				p[i][c] += rng.NormFloat64() * sigma[c]
			}
		}
	}
}

// repair pulls every slot back inside its bounds and the sRGB gamut, and rewrites fixed slots.
func repair(m *constraint.Model, p *Palette) {
	for i := range p {
		p[i] = repairSwatch(m, i, p[i])
	}
}

func repairSwatch(m *constraint.Model, i int, sw Swatch) Swatch {
	s := &m.Slots[i]
	if s.Fixed {
		return fixedSwatch(m.Space, s.Value)
	}

	if m.Space == constraint.SpaceRGB {
		for c, r := range s.Channels() {
			sw[c] = r.Clamp(math.Round(sw[c]))
		}
		return sw
	}

	l := s.Lightness.Clamp(sw[0])
	h := colour.ClampHue(sw[2], s.Hue, s.HueTolerance)
	c := s.Chroma.Clamp(sw[1])
	// The gamut limit wins over the chroma minimum.
	if !colour.InGamut(l, c, h) {
		c = math.Min(c, colour.MaxChroma(l, h))
	}
	return Swatch{l, c, h}
}
