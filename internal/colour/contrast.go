package colour

import "math"

// Luminance calculates the relative luminance of a colour according to WCAG 2.1.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG21/#dfn-relative-luminance.
func Luminance(c RGB) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

// linearize converts an 8-bit sRGB channel to linear light.
func linearize(v uint8) float64 {
	f := float64(v) / 255.0
	if f <= 0.04045 {
		return f / 12.92
	}
	return math.Pow((f+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.1.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// The ratio is symmetric in its arguments.
func ContrastRatio(c1, c2 RGB) float64 {
	return ContrastRatioFromLuminance(Luminance(c1), Luminance(c2))
}

// ContrastRatioFromLuminance is ContrastRatio for precomputed relative luminances.
func ContrastRatioFromLuminance(l1, l2 float64) float64 {
	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// APCA-W3 0.0.98G constants.
const (
	apcaMainTRC   = 2.4
	apcaRco       = 0.2126729
	apcaGco       = 0.7151522
	apcaBco       = 0.0721750
	apcaNormBG    = 0.56
	apcaNormTXT   = 0.57
	apcaRevTXT    = 0.62
	apcaRevBG     = 0.65
	apcaBlkThrs   = 0.022
	apcaBlkClmp   = 1.414
	apcaScale     = 1.14
	apcaLoOffset  = 0.027
	apcaLoClip    = 0.1
	apcaDeltaYMin = 0.0005
)

// APCALuminance returns the soft-clamped screen luminance APCA works with.
func APCALuminance(c RGB) float64 {
	y := apcaRco*math.Pow(float64(c.R)/255.0, apcaMainTRC) +
		apcaGco*math.Pow(float64(c.G)/255.0, apcaMainTRC) +
		apcaBco*math.Pow(float64(c.B)/255.0, apcaMainTRC)
	if y < apcaBlkThrs {
		y += math.Pow(apcaBlkThrs-y, apcaBlkClmp)
	}
	return y
}

// APCA returns the APCA lightness contrast Lc of text on a background.
// Dark text on a light background is positive (black on white is about +106), light text on a
// dark background is negative (white on black is about -108). Identical colours give 0.
func APCA(text, background RGB) float64 {
	return APCAFromLuminance(APCALuminance(text), APCALuminance(background))
}

// APCAFromLuminance is APCA for precomputed APCALuminance values.
func APCAFromLuminance(yText, yBG float64) float64 {
	if math.Abs(yBG-yText) < apcaDeltaYMin {
		return 0
	}

	var out float64
	if yBG > yText {
		// Normal polarity: dark text on light background.
		sapc := (math.Pow(yBG, apcaNormBG) - math.Pow(yText, apcaNormTXT)) * apcaScale
		if sapc < apcaLoClip {
			return 0
		}
		out = sapc - apcaLoOffset
	} else {
		// Reverse polarity: light text on dark background.
		sapc := (math.Pow(yBG, apcaRevBG) - math.Pow(yText, apcaRevTXT)) * apcaScale
		if sapc > -apcaLoClip {
			return 0
		}
		out = sapc + apcaLoOffset
	}
	return out * 100
}
