package constraint

import (
	"strings"
	"testing"

	"github.com/jmylchreest/ansigen/internal/colour"
)

func TestBuiltinsValidate(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			m, err := Builtin(name)
			if err != nil {
				t.Fatalf("Builtin(%q) error: %v", name, err)
			}
			if m.Name != name {
				t.Errorf("Name = %q, want %q", m.Name, name)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	want := []string{"minimal", "oklch-apca", "oklch-wcag", "rgb-wcag"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("solarised")
	if err == nil {
		t.Fatal("expected error for unknown flavour")
	}
	if !strings.Contains(err.Error(), "oklch-apca") {
		t.Errorf("error should list available flavours, got %q", err)
	}
}

func TestBuiltinReturnsCopy(t *testing.T) {
	a, _ := Builtin(DefaultName)
	a.Pairs[0].Min = 99
	a.Slots[colour.Red].Hue = 180

	b, _ := Builtin(DefaultName)
	if b.Pairs[0].Min == 99 || b.Slots[colour.Red].Hue == 180 {
		t.Error("Builtin should return an independent model each call")
	}
}

func TestMinimal(t *testing.T) {
	m := Minimal()
	if m.Space != SpaceRGB {
		t.Errorf("Space = %s, want rgb", m.Space)
	}
	if len(m.Pairs) != 1 {
		t.Fatalf("expected a single pair, got %d", len(m.Pairs))
	}
	p := m.Pairs[0]
	if p.FG != colour.White || p.BG != colour.Black || p.Min != 4.5 || m.MetricFor(p) != MetricWCAG {
		t.Errorf("unexpected pair %+v", p)
	}
	for i := 1; i < colour.BrightWhite; i++ {
		for _, r := range m.Slots[i].Channels() {
			if r.Min != 0 || r.Max != 255 {
				t.Errorf("slot %d channel range %v, want [0,255]", i, r)
			}
		}
	}
}

func TestMetricFor(t *testing.T) {
	m := OKLCHAPCA()
	if got := m.MetricFor(Pair{}); got != MetricAPCA {
		t.Errorf("MetricFor(default) = %s, want apca", got)
	}
	if got := m.MetricFor(Pair{Metric: MetricWCAG}); got != MetricWCAG {
		t.Errorf("MetricFor(wcag) = %s, want wcag", got)
	}
}

func TestCovered(t *testing.T) {
	m := OKLCHAPCA()
	covered := m.Covered()
	if !covered[colour.White][colour.Black] {
		t.Error("white on black should be covered")
	}
	if !covered[colour.BrightRed][colour.Red] {
		t.Error("br.red on red should be covered")
	}
	if covered[colour.Black][colour.White] {
		t.Error("black on white should not be covered")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Model)
		want   string
	}{
		{
			name:   "unfixed black",
			mutate: func(m *Model) { m.Slots[colour.Black].Fixed = false },
			want:   "slot 0 (black) must be fixed",
		},
		{
			name:   "wrong white",
			mutate: func(m *Model) { m.Slots[colour.BrightWhite].Value = colour.RGB{R: 250, G: 250, B: 250} },
			want:   "slot 15 (br.white) must be fixed to #ffffff",
		},
		{
			name:   "inverted lightness",
			mutate: func(m *Model) { m.Slots[colour.Red].Lightness = Range{0.8, 0.2} },
			want:   "lightness min 0.8 exceeds max 0.2",
		},
		{
			name:   "chroma out of bounds",
			mutate: func(m *Model) { m.Slots[colour.Blue].Chroma = Range{0, 0.6} },
			want:   "chroma range",
		},
		{
			name:   "self base slot",
			mutate: func(m *Model) { m.Slots[colour.BrightRed].BaseSlot = colour.BrightRed },
			want:   "invalid base slot",
		},
		{
			name:   "negative base slot",
			mutate: func(m *Model) { m.Slots[colour.BrightBlue].BaseSlot = -5 },
			want:   "invalid base slot -5",
		},
		{
			name:   "pair on itself",
			mutate: func(m *Model) { m.Pairs = append(m.Pairs, Pair{FG: 3, BG: 3, Min: 10}) },
			want:   "foreground and background are both slot 3",
		},
		{
			name:   "pair out of range",
			mutate: func(m *Model) { m.Pairs = append(m.Pairs, Pair{FG: 16, BG: 0, Min: 10}) },
			want:   "slot index out of range",
		},
		{
			name:   "target below minimum",
			mutate: func(m *Model) { m.Pairs = append(m.Pairs, Pair{FG: 1, BG: 0, Min: 60, Target: 30}) },
			want:   "below minimum",
		},
		{
			name:   "missing metric",
			mutate: func(m *Model) { m.Metric = MetricDefault },
			want:   "model metric must be apca or wcag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := OKLCHAPCA()
			tt.mutate(m)
			err := m.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestValidateRGBChannels(t *testing.T) {
	m := RGBWCAG()
	m.Slots[colour.Green].Blue = Range{-5, 300}
	err := m.Validate()
	if err == nil || !strings.Contains(err.Error(), "blue range") {
		t.Errorf("expected blue channel error, got %v", err)
	}
}

func TestRange(t *testing.T) {
	r := Range{0.2, 0.6}
	if got := r.Span(); got < 0.399 || got > 0.401 {
		t.Errorf("Span() = %v, want 0.4", got)
	}
	if got := r.Clamp(0.9); got != 0.6 {
		t.Errorf("Clamp(0.9) = %v, want 0.6", got)
	}
	if got := r.Clamp(0.1); got != 0.2 {
		t.Errorf("Clamp(0.1) = %v, want 0.2", got)
	}
	if !r.Contains(0.6000001, 1e-6) {
		t.Error("Contains should allow eps slack")
	}
	if r.Contains(0.7, 1e-6) {
		t.Error("Contains(0.7) should be false")
	}
}

func TestParseEnums(t *testing.T) {
	if s, err := ParseSpace("RGB"); err != nil || s != SpaceRGB {
		t.Errorf("ParseSpace(RGB) = %v, %v", s, err)
	}
	if _, err := ParseSpace("hsl"); err == nil {
		t.Error("ParseSpace(hsl) should fail")
	}
	if m, err := ParseMetric("wcag21"); err != nil || m != MetricWCAG {
		t.Errorf("ParseMetric(wcag21) = %v, %v", m, err)
	}
	if _, err := ParseMetric("delta-e"); err == nil {
		t.Error("ParseMetric(delta-e) should fail")
	}
	if p, err := ParsePolarity("light-on-dark"); err != nil || p != PolarityLightOnDark {
		t.Errorf("ParsePolarity(light-on-dark) = %v, %v", p, err)
	}
}

func TestClone(t *testing.T) {
	m := OKLCHAPCA()
	c := m.Clone()
	c.Pairs[0].Min = 1
	c.Slots[colour.Red].Hue = 99
	if m.Pairs[0].Min == 1 || m.Slots[colour.Red].Hue == 99 {
		t.Error("Clone should not share state with the original")
	}
}
