package genetic

import (
	"math/rand/v2"
	"testing"

	"github.com/jmylchreest/ansigen/internal/colour"
	"github.com/jmylchreest/ansigen/internal/constraint"
)

const boundsEps = 1e-9

// checkPalette reports every slot that leaves its bounds, the gamut or its fixed value.
func checkPalette(t *testing.T, m *constraint.Model, p *Palette) {
	t.Helper()
	for i := range p {
		s := &m.Slots[i]
		sw := p[i]
		if s.Fixed {
			if sw != fixedSwatch(m.Space, s.Value) {
				t.Fatalf("fixed slot %d changed: %v", i, sw)
			}
			if got := SwatchRGB(m, i, sw); got != s.Value {
				t.Fatalf("fixed slot %d renders as %s, want %s", i, got.Hex(), s.Value.Hex())
			}
			continue
		}

		if m.Space == constraint.SpaceRGB {
			for c, r := range s.Channels() {
				if !r.Contains(sw[c], boundsEps) {
					t.Fatalf("slot %d channel %d = %v outside %v", i, c, sw[c], r)
				}
			}
			continue
		}

		l, c, h := sw[0], sw[1], sw[2]
		if !s.Lightness.Contains(l, boundsEps) {
			t.Fatalf("slot %d lightness %v outside %v", i, l, s.Lightness)
		}
		if c > s.Chroma.Max+boundsEps {
			t.Fatalf("slot %d chroma %v above %v", i, c, s.Chroma.Max)
		}
		if c < s.Chroma.Min-boundsEps && c > colour.MaxChroma(l, h)+boundsEps {
			t.Fatalf("slot %d chroma %v below %v while the gamut allows more", i, c, s.Chroma.Min)
		}
		if h < 0 || h >= 360 {
			t.Fatalf("slot %d hue %v not normalised", i, h)
		}
		if s.HueTolerance < 180 && colour.HueDistance(h, s.Hue) > s.HueTolerance+boundsEps {
			t.Fatalf("slot %d hue %v more than %v from %v", i, h, s.HueTolerance, s.Hue)
		}
		if !colour.InGamut(l, c, h) {
			t.Fatalf("slot %d (%v, %v, %v) out of gamut", i, l, c, h)
		}
	}
}

func TestRandomPaletteWithinBounds(t *testing.T) {
	for _, name := range constraint.Names() {
		t.Run(name, func(t *testing.T) {
			m, _ := constraint.Builtin(name)
			for i := range 200 {
				rng := rand.New(rand.NewPCG(7, uint64(i)))
				var p Palette
				randomPalette(m, rng, &p)
				checkPalette(t, m, &p)
			}
		})
	}
}

func TestOperatorsPreserveBounds(t *testing.T) {
	for _, name := range constraint.Names() {
		t.Run(name, func(t *testing.T) {
			m, _ := constraint.Builtin(name)
			rng := rand.New(rand.NewPCG(42, 0))
			var a, b Palette
			randomPalette(m, rng, &a)
			randomPalette(m, rng, &b)

			for range 300 {
				child := a
				crossover(m, &a, &b, rng, &child)
				mutate(m, &child, 1, rng)
				repair(m, &child)
				checkPalette(t, m, &child)
				a, b = b, child
			}
		})
	}
}

func TestRepairRestoresFixedSlots(t *testing.T) {
	m := constraint.OKLCHAPCA()
	var p Palette
	randomPalette(m, rand.New(rand.NewPCG(1, 1)), &p)
	p[colour.Black] = Swatch{0.5, 0.2, 90}
	p[colour.BrightWhite] = Swatch{0.2, 0.1, 10}

	repair(m, &p)
	rgb := p.RGB(m)
	if rgb[colour.Black] != colour.RGBBlack || rgb[colour.BrightWhite] != colour.RGBWhite {
		t.Errorf("fixed slots = %s, %s", rgb[colour.Black].Hex(), rgb[colour.BrightWhite].Hex())
	}
}

func TestRepairClampsChromaToGamut(t *testing.T) {
	m := constraint.OKLCHAPCA()
	// Deep blue at high lightness cannot carry much chroma.
	sw := repairSwatch(m, colour.Blue, Swatch{0.68, 0.22, 260})
	if !colour.InGamut(sw[0], sw[1], sw[2]) {
		t.Fatalf("repaired swatch %v out of gamut", sw)
	}
	if sw[1] > colour.MaxChroma(sw[0], sw[2])+boundsEps {
		t.Errorf("chroma %v above gamut maximum", sw[1])
	}
}

func TestRepairWrapsHue(t *testing.T) {
	m := constraint.OKLCHAPCA()
	sw := repairSwatch(m, colour.Red, Swatch{0.6, 0.1, 100})
	if got := colour.HueDistance(sw[2], 25); got > 15+boundsEps {
		t.Errorf("hue %v not pulled into the red window", sw[2])
	}
}

func TestCrossoverRGBPicksParentChannels(t *testing.T) {
	m := constraint.Minimal()
	var a, b, child Palette
	for i := range a {
		a[i] = Swatch{10, 20, 30}
		b[i] = Swatch{200, 210, 220}
	}
	crossover(m, &a, &b, rand.New(rand.NewPCG(3, 3)), &child)
	for i := colour.Red; i < colour.BrightWhite; i++ {
		for c := range child[i] {
			if child[i][c] != a[i][c] && child[i][c] != b[i][c] {
				t.Errorf("slot %d channel %d = %v, want a parent value", i, c, child[i][c])
			}
		}
	}
}

func TestCrossoverOKLCHShorterArc(t *testing.T) {
	m := constraint.OKLCHAPCA()
	var a, b, child Palette
	a[colour.Red] = Swatch{0.6, 0.1, 355}
	b[colour.Red] = Swatch{0.7, 0.2, 15}
	crossover(m, &a, &b, rand.New(rand.NewPCG(5, 5)), &child)

	h := child[colour.Red][2]
	if colour.HueDistance(h, 355) > 20+boundsEps || colour.HueDistance(h, 15) > 20+boundsEps {
		t.Errorf("hue %v not on the shorter arc between 355 and 15", h)
	}
	l := child[colour.Red][0]
	if l < 0.6-boundsEps || l > 0.7+boundsEps {
		t.Errorf("lightness %v not between parents", l)
	}
}
