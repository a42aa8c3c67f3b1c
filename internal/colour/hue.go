package colour

import "math"

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(NormaliseHue(h1) - NormaliseHue(h2))
	if diff > 180 {
		diff = 360 - diff // Handle wraparound
	}
	return diff
}

// NormaliseHue wraps a hue in degrees into [0,360).
func NormaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// HueDelta returns the signed shortest rotation from h1 to h2, in (-180,180].
func HueDelta(h1, h2 float64) float64 {
	d := math.Mod(h2-h1, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// HueLerp interpolates between two hues along the shorter arc. t=0 gives h1, t=1 gives h2.
func HueLerp(h1, h2, t float64) float64 {
	return NormaliseHue(h1 + HueDelta(h1, h2)*t)
}

// ClampHue pulls h back into the window target +- tolerance, moving it to the nearest edge of
// the window when it lies outside. A tolerance of 180 or more leaves any hue unchanged.
func ClampHue(h, target, tolerance float64) float64 {
	h = NormaliseHue(h)
	if tolerance >= 180 {
		return h
	}
	d := HueDelta(target, h)
	if d > tolerance {
		return NormaliseHue(target + tolerance)
	}
	if d < -tolerance {
		return NormaliseHue(target - tolerance)
	}
	return h
}
