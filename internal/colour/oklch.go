package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxSearchChroma is the upper bound used when searching for the in-gamut chroma limit.
// No sRGB colour has an OKLCH chroma above roughly 0.37.
const MaxSearchChroma = 0.4

// gamutTolerance allows for floating-point error at the sRGB cube faces.
const gamutTolerance = 1e-4

// chromaSearchSteps bounds the binary search in MaxChroma (0.4 / 2^24 is well below one 8-bit step).
const chromaSearchSteps = 24

// LCH is a colour in OKLCH: lightness [0,1], chroma [0,~0.4] and hue in degrees [0,360).
type LCH struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

// Lab is a colour in Oklab.
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// ToLab converts an sRGB colour to Oklab.
func ToLab(c RGB) Lab {
	l, a, b := c.Colorful().OkLab()
	return Lab{L: l, A: a, B: b}
}

// ToLCH converts an sRGB colour to OKLCH.
func ToLCH(c RGB) LCH {
	l, ch, h := c.Colorful().OkLch()
	return LCH{L: l, C: ch, H: NormaliseHue(h)}
}

// Lab converts an OKLCH colour to Cartesian Oklab.
func (c LCH) Lab() Lab {
	rad := c.H * math.Pi / 180
	return Lab{L: c.L, A: c.C * math.Cos(rad), B: c.C * math.Sin(rad)}
}

// Colorful returns the unclamped go-colorful colour; channels may lie outside [0,1].
func (c LCH) Colorful() colorful.Color {
	return colorful.OkLch(c.L, c.C, c.H)
}

// RGB converts to 8-bit sRGB, clamping out-of-gamut channels.
func (c LCH) RGB() RGB {
	return FromColorful(c.Colorful())
}

// InGamut reports whether the colour is representable in sRGB (within floating tolerance).
func (c LCH) InGamut() bool {
	return InGamut(c.L, c.C, c.H)
}

// InGamut reports whether the OKLCH coordinates lie inside the sRGB gamut.
func InGamut(l, c, h float64) bool {
	if l < -gamutTolerance || l > 1+gamutTolerance || c < 0 {
		return false
	}
	col := colorful.OkLch(l, c, h)
	return inUnit(col.R) && inUnit(col.G) && inUnit(col.B)
}

func inUnit(v float64) bool {
	return v >= -gamutTolerance && v <= 1+gamutTolerance && !math.IsNaN(v)
}

// MaxChroma returns the largest chroma that stays in the sRGB gamut at the given lightness and
// hue. There is no closed form, so this is a binary search over chroma.
func MaxChroma(l, h float64) float64 {
	if !InGamut(l, 0, h) {
		return 0
	}
	lo, hi := 0.0, MaxSearchChroma
	if InGamut(l, hi, h) {
		return hi
	}
	for range chromaSearchSteps {
		mid := (lo + hi) / 2
		if InGamut(l, mid, h) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// OklabDistance returns the Euclidean distance between two Oklab colours.
// Black to white is 1.0; a just-noticeable difference is around 0.02.
func OklabDistance(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}
