package constraint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/ansigen/internal/colour"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadYAMLExtends(t *testing.T) {
	path := writeFile(t, "soft.yaml", `
extends: oklch-apca
name: soft
weights:
  chroma_reward: 50
slots:
  - index: 1
    hue: 30
    chroma: [0.05, 0.12]
extra_pairs:
  - fg: 3
    bg: 4
    min: 25
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Name != "soft" {
		t.Errorf("Name = %q, want soft", m.Name)
	}
	if m.Weights.ChromaReward != 50 {
		t.Errorf("ChromaReward = %v, want 50", m.Weights.ChromaReward)
	}
	if m.Weights.PassBonus != DefaultWeights().PassBonus {
		t.Error("unset weights should keep their defaults")
	}
	red := m.Slots[colour.Red]
	if red.Hue != 30 || red.Chroma != (Range{0.05, 0.12}) {
		t.Errorf("red slot not overridden: %+v", red)
	}
	if red.Lightness != OKLCHAPCA().Slots[colour.Red].Lightness {
		t.Error("red lightness should be inherited")
	}
	base := OKLCHAPCA()
	if len(m.Pairs) != len(base.Pairs)+1 {
		t.Fatalf("expected %d pairs, got %d", len(base.Pairs)+1, len(m.Pairs))
	}
	last := m.Pairs[len(m.Pairs)-1]
	if last.FG != colour.Yellow || last.BG != colour.Blue || last.Min != 25 {
		t.Errorf("unexpected appended pair %+v", last)
	}
}

func TestLoadTOMLReplacesPairs(t *testing.T) {
	path := writeFile(t, "strict.toml", `
extends = "oklch-wcag"
metric = "wcag"

[[pairs]]
fg = 7
bg = 0
min = 12.0

[[pairs]]
fg = 1
bg = 0
min = 4.5
target = 5.0
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Name != "strict" {
		t.Errorf("Name = %q, want name taken from the file", m.Name)
	}
	if len(m.Pairs) != 2 {
		t.Fatalf("expected pairs to be replaced, got %d", len(m.Pairs))
	}
	if !m.Pairs[1].HasTarget() || m.Pairs[1].Target != 5 {
		t.Errorf("unexpected pair %+v", m.Pairs[1])
	}
}

func TestLoadJSONStandalone(t *testing.T) {
	path := writeFile(t, "mono.json", `{
  "name": "mono",
  "space": "rgb",
  "metric": "wcag",
  "slots": [{"index": 7, "red": [200, 220], "green": [200, 220], "blue": [200, 220]}],
  "pairs": [{"fg": 7, "bg": 0, "min": 7}]
}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Space != SpaceRGB || m.Metric != MetricWCAG {
		t.Errorf("space/metric = %s/%s", m.Space, m.Metric)
	}
	if !m.Slots[colour.Black].Fixed || !m.Slots[colour.BrightWhite].Fixed {
		t.Error("slots 0 and 15 must stay fixed")
	}
	if got := m.Slots[colour.White].Red; got != (Range{200, 220}) {
		t.Errorf("white red range = %v", got)
	}
	if got := m.Slots[colour.Red].Red; got != (Range{0, 255}) {
		t.Errorf("unset slots should span the full channel range, got %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{name: "unknown extension", file: "x.ini", content: "", want: "unsupported constraint file extension"},
		{name: "unknown base", file: "x.yaml", content: "extends: nope\n", want: "unknown constraint model"},
		{name: "unknown weight", file: "x.yaml", content: "extends: minimal\nweights:\n  sparkle: 1\n", want: `unknown weight "sparkle"`},
		{name: "bad range", file: "x.yaml", content: "extends: oklch-apca\nslots:\n  - index: 2\n    lightness: [0.5]\n", want: "must be [min, max]"},
		{name: "slot index", file: "x.yaml", content: "extends: oklch-apca\nslots:\n  - index: 20\n", want: "slot index 20 out of range"},
		{name: "unfix black", file: "x.yaml", content: "extends: minimal\nslots:\n  - index: 0\n    fixed: \"#101010\"\n", want: "must be fixed to #000000"},
		{name: "negative base", file: "x.yaml", content: "extends: oklch-apca\nslots:\n  - index: 9\n    base: -5\n", want: "invalid base slot -5"},
		{name: "space change", file: "x.yaml", content: "extends: oklch-apca\nspace: rgb\n", want: "cannot change space"},
		{name: "malformed", file: "x.json", content: "{", want: "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	m, err := Resolve("")
	if err != nil || m.Name != DefaultName {
		t.Fatalf("Resolve(\"\") = %v, %v", m, err)
	}

	path := writeFile(t, "mine.yml", "extends: minimal\nname: mine\n")
	m, err = Resolve(path)
	if err != nil {
		t.Fatalf("Resolve(%q) error: %v", path, err)
	}
	if m.Name != "mine" {
		t.Errorf("Name = %q, want mine", m.Name)
	}

	if _, err := Resolve("missing.toml"); err == nil {
		t.Error("Resolve of a missing file should fail")
	}
}
