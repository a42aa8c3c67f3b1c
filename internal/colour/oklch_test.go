package colour

import (
	"math"
	"testing"
)

func TestToLCH(t *testing.T) {
	tests := []struct {
		name           string
		c              RGB
		wantL          float64
		hueMin, hueMax float64
		chromatic      bool
	}{
		{name: "black", c: RGBBlack, wantL: 0},
		{name: "white", c: RGBWhite, wantL: 1},
		{name: "red", c: RGB{R: 255}, wantL: 0.628, hueMin: 20, hueMax: 40, chromatic: true},
		{name: "green", c: RGB{G: 255}, wantL: 0.866, hueMin: 135, hueMax: 150, chromatic: true},
		{name: "blue", c: RGB{B: 255}, wantL: 0.452, hueMin: 255, hueMax: 275, chromatic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToLCH(tt.c)
			if math.Abs(got.L-tt.wantL) > 0.01 {
				t.Errorf("L = %.4f, want %.4f", got.L, tt.wantL)
			}
			if !tt.chromatic {
				if got.C > 0.01 {
					t.Errorf("C = %.4f, want ~0 for achromatic colour", got.C)
				}
				return
			}
			if got.H < tt.hueMin || got.H > tt.hueMax {
				t.Errorf("H = %.2f, want within [%.0f, %.0f]", got.H, tt.hueMin, tt.hueMax)
			}
		})
	}
}

func TestLCHRoundTrip(t *testing.T) {
	for _, hex := range []string{"#e06c75", "#98c379", "#61afef", "#c678dd", "#56b6c2", "#abb2bf", "#000000", "#ffffff"} {
		c, err := ParseHex(hex)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", hex, err)
		}
		if got := ToLCH(c).RGB(); got != c {
			t.Errorf("round trip of %s gave %s", hex, got.Hex())
		}
		if !ToLCH(c).InGamut() {
			t.Errorf("%s should be in gamut", hex)
		}
	}
}

func TestInGamut(t *testing.T) {
	tests := []struct {
		name    string
		l, c, h float64
		want    bool
	}{
		{name: "mid grey", l: 0.5, c: 0, h: 0, want: true},
		{name: "moderate red", l: 0.6, c: 0.1, h: 25, want: true},
		{name: "oversaturated red", l: 0.5, c: 0.4, h: 25, want: false},
		{name: "lightness above one", l: 1.1, c: 0, h: 0, want: false},
		{name: "negative chroma", l: 0.5, c: -0.1, h: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InGamut(tt.l, tt.c, tt.h); got != tt.want {
				t.Errorf("InGamut(%v, %v, %v) = %v, want %v", tt.l, tt.c, tt.h, got, tt.want)
			}
		})
	}
}

func TestMaxChroma(t *testing.T) {
	for _, l := range []float64{0.2, 0.45, 0.6, 0.75, 0.9} {
		for _, h := range []float64{0, 29, 110, 145, 200, 264, 330} {
			maxC := MaxChroma(l, h)
			if !InGamut(l, maxC, h) {
				t.Errorf("MaxChroma(%v, %v) = %v is out of gamut", l, h, maxC)
			}
			if maxC < MaxSearchChroma && InGamut(l, maxC+0.002, h) {
				t.Errorf("MaxChroma(%v, %v) = %v is not maximal", l, h, maxC)
			}
		}
	}

	if got := MaxChroma(1.0, 30); got > 0.01 {
		t.Errorf("MaxChroma at white = %v, want ~0", got)
	}
	if got := MaxChroma(1.2, 30); got != 0 {
		t.Errorf("MaxChroma outside lightness range = %v, want 0", got)
	}
}

func TestOklabDistance(t *testing.T) {
	if got := OklabDistance(ToLab(RGBBlack), ToLab(RGBWhite)); math.Abs(got-1.0) > 0.05 {
		t.Errorf("black to white = %.4f, want ~1.0", got)
	}
	red := ToLab(RGB{R: 255})
	if got := OklabDistance(red, red); got != 0 {
		t.Errorf("same colour distance = %v, want 0", got)
	}

	lch := LCH{L: 0.7, C: 0.1, H: 140}
	direct := lch.Lab()
	if got := OklabDistance(direct, ToLab(lch.RGB())); got > 0.01 {
		t.Errorf("LCH.Lab disagrees with sRGB conversion by %v", got)
	}
}
