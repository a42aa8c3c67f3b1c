package constraint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/ansigen/internal/colour"
)

// file is the on-disk constraint model. Every field is optional when Extends names a built-in.
type file struct {
	Extends     string             `json:"extends" yaml:"extends" toml:"extends"`
	Name        string             `json:"name" yaml:"name" toml:"name"`
	Description string             `json:"description" yaml:"description" toml:"description"`
	Space       string             `json:"space" yaml:"space" toml:"space"`
	Metric      string             `json:"metric" yaml:"metric" toml:"metric"`
	Weights     map[string]float64 `json:"weights" yaml:"weights" toml:"weights"`
	Slots       []fileSlot         `json:"slots" yaml:"slots" toml:"slots"`
	Pairs       []filePair         `json:"pairs" yaml:"pairs" toml:"pairs"`
	ExtraPairs  []filePair         `json:"extra_pairs" yaml:"extra_pairs" toml:"extra_pairs"`
}

type fileSlot struct {
	Index        int       `json:"index" yaml:"index" toml:"index"`
	Fixed        string    `json:"fixed" yaml:"fixed" toml:"fixed"`
	Hue          *float64  `json:"hue" yaml:"hue" toml:"hue"`
	HueTolerance *float64  `json:"hue_tolerance" yaml:"hue_tolerance" toml:"hue_tolerance"`
	Lightness    []float64 `json:"lightness" yaml:"lightness" toml:"lightness"`
	Chroma       []float64 `json:"chroma" yaml:"chroma" toml:"chroma"`
	Base         *int      `json:"base" yaml:"base" toml:"base"`
	MaxHueDrift  *float64  `json:"max_hue_drift" yaml:"max_hue_drift" toml:"max_hue_drift"`
	Red          []float64 `json:"red" yaml:"red" toml:"red"`
	Green        []float64 `json:"green" yaml:"green" toml:"green"`
	Blue         []float64 `json:"blue" yaml:"blue" toml:"blue"`
}

type filePair struct {
	FG       int     `json:"fg" yaml:"fg" toml:"fg"`
	BG       int     `json:"bg" yaml:"bg" toml:"bg"`
	Metric   string  `json:"metric" yaml:"metric" toml:"metric"`
	Min      float64 `json:"min" yaml:"min" toml:"min"`
	Target   float64 `json:"target" yaml:"target" toml:"target"`
	Polarity string  `json:"polarity" yaml:"polarity" toml:"polarity"`
}

// Resolve returns a built-in flavour by name, or loads a constraint file when ref looks like a
// path (has a known extension or exists on disk).
func Resolve(ref string) (*Model, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = DefaultName
	}
	if m, err := Builtin(ref); err == nil {
		return m, nil
	}
	if _, err := os.Stat(ref); err == nil || isConstraintFile(ref) {
		return Load(ref)
	}
	return Builtin(ref)
}

func isConstraintFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml", ".json":
		return true
	}
	return false
}

// Load reads a constraint model from a YAML, TOML or JSON file and validates it.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user supplied constraint file
	if err != nil {
		return nil, fmt.Errorf("failed to read constraint file: %w", err)
	}

	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".json":
		err = json.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unsupported constraint file extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	m, err := f.build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid constraint model %s: %w", path, err)
	}
	return m, nil
}

func (f *file) build() (*Model, error) {
	var m *Model
	if f.Extends != "" {
		base, err := Builtin(f.Extends)
		if err != nil {
			return nil, err
		}
		m = base
		m.Name = ""
	} else {
		space, err := ParseSpace(f.Space)
		if err != nil {
			return nil, err
		}
		m = blank(space)
	}

	if f.Name != "" {
		m.Name = f.Name
	}
	if f.Description != "" {
		m.Description = f.Description
	}
	if f.Space != "" && f.Extends != "" {
		space, err := ParseSpace(f.Space)
		if err != nil {
			return nil, err
		}
		if space != m.Space {
			return nil, fmt.Errorf("cannot change space of %s from %s to %s", f.Extends, m.Space, space)
		}
	}
	if f.Metric != "" {
		metric, err := ParseMetric(f.Metric)
		if err != nil {
			return nil, err
		}
		m.Metric = metric
	}

	if err := applyWeights(&m.Weights, f.Weights); err != nil {
		return nil, err
	}

	for _, fs := range f.Slots {
		if err := fs.apply(m); err != nil {
			return nil, err
		}
	}

	if f.Pairs != nil {
		m.Pairs = nil
	}
	for _, fp := range append(slices.Clone(f.Pairs), f.ExtraPairs...) {
		p, err := fp.pair()
		if err != nil {
			return nil, err
		}
		m.Pairs = append(m.Pairs, p)
	}
	return m, nil
}

// blank returns an unconstrained model in the given space with the mandatory fixed slots.
func blank(space Space) *Model {
	m := &Model{Space: space, Metric: MetricAPCA, Weights: DefaultWeights()}
	for i := range m.Slots {
		switch space {
		case SpaceRGB:
			full := Range{0, 255}
			m.Slots[i] = channelSlot(i, full, full, full)
		default:
			m.Slots[i] = hueSlot(i, 0, 180, Range{0, 1}, Range{0, colour.MaxSearchChroma})
		}
	}
	m.Slots[colour.Black] = fixedSlot(colour.Black, colour.RGBBlack)
	m.Slots[colour.BrightWhite] = fixedSlot(colour.BrightWhite, colour.RGBWhite)
	return m
}

func (fs fileSlot) apply(m *Model) error {
	if fs.Index < 0 || fs.Index >= colour.PaletteSize {
		return fmt.Errorf("slot index %d out of range", fs.Index)
	}
	s := &m.Slots[fs.Index]

	if fs.Fixed != "" {
		c, err := colour.ParseHex(fs.Fixed)
		if err != nil {
			return fmt.Errorf("slot %d: %w", fs.Index, err)
		}
		*s = fixedSlot(fs.Index, c)
		return nil
	}
	s.Fixed = false

	if fs.Hue != nil {
		s.Hue = colour.NormaliseHue(*fs.Hue)
	}
	if fs.HueTolerance != nil {
		s.HueTolerance = *fs.HueTolerance
	}
	if fs.Base != nil {
		s.BaseSlot = *fs.Base
	}
	if fs.MaxHueDrift != nil {
		s.MaxHueDrift = *fs.MaxHueDrift
	}

	for _, r := range []struct {
		label  string
		values []float64
		target *Range
	}{
		{"lightness", fs.Lightness, &s.Lightness},
		{"chroma", fs.Chroma, &s.Chroma},
		{"red", fs.Red, &s.Red},
		{"green", fs.Green, &s.Green},
		{"blue", fs.Blue, &s.Blue},
	} {
		if r.values == nil {
			continue
		}
		if len(r.values) != 2 {
			return fmt.Errorf("slot %d: %s must be [min, max], got %v", fs.Index, r.label, r.values)
		}
		*r.target = Range{Min: r.values[0], Max: r.values[1]}
	}
	return nil
}

func (fp filePair) pair() (Pair, error) {
	metric, err := ParseMetric(fp.Metric)
	if err != nil {
		return Pair{}, err
	}
	polarity, err := ParsePolarity(fp.Polarity)
	if err != nil {
		return Pair{}, err
	}
	return Pair{FG: fp.FG, BG: fp.BG, Metric: metric, Min: fp.Min, Target: fp.Target, Polarity: polarity}, nil
}

// weightFields maps file keys to the fields of w.
func weightFields(w *Weights) map[string]*float64 {
	return map[string]*float64{
		"pass_bonus":          &w.PassBonus,
		"excess_reward":       &w.ExcessReward,
		"shortfall_penalty":   &w.ShortfallPenalty,
		"target_under":        &w.TargetUnder,
		"target_over":         &w.TargetOver,
		"wcag_scale":          &w.WCAGScale,
		"drift_bonus":         &w.DriftBonus,
		"drift_penalty":       &w.DriftPenalty,
		"gamut_penalty":       &w.GamutPenalty,
		"hue_spacing_floor":   &w.HueSpacingFloor,
		"hue_spacing_reward":  &w.HueSpacingReward,
		"hue_spacing_penalty": &w.HueSpacingPenalty,
		"chroma_reward":       &w.ChromaReward,
		"distinct_floor":      &w.DistinctFloor,
		"distinct_reward":     &w.DistinctReward,
		"distinct_penalty":    &w.DistinctPenalty,
		"readable_bonus":      &w.ReadableBonus,
		"readable_apca":       &w.ReadableAPCA,
		"readable_wcag":       &w.ReadableWCAG,
	}
}

func applyWeights(w *Weights, overrides map[string]float64) error {
	fields := weightFields(w)
	for key, value := range overrides {
		field, ok := fields[key]
		if !ok {
			return fmt.Errorf("unknown weight %q", key)
		}
		*field = value
	}
	return nil
}
