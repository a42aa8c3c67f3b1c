package genetic

import (
	"math"

	"github.com/jmylchreest/ansigen/internal/colour"
	"github.com/jmylchreest/ansigen/internal/constraint"
)

// Base colour slots used by the hue spacing and chroma bonuses (red..cyan), and the distinctness
// bonus (red..white).
const (
	firstBase    = colour.Red
	lastBase     = colour.Cyan
	lastDistinct = colour.White
)

// PairScore is the evaluated contribution of one contrast pair.
type PairScore struct {
	Pair   constraint.Pair
	Metric constraint.Metric
	// Value is the raw metric: signed Lc for APCA, the ratio for WCAG.
	Value float64
	// Magnitude is the value the minimum is compared against.
	Magnitude float64
	Met       bool
	Score     float64
}

// DriftScore is the hue drift of a bright slot from its base slot.
type DriftScore struct {
	Slot  int
	Base  int
	Drift float64
	Score float64
}

// Breakdown itemises every term of a fitness score.
type Breakdown struct {
	Total float64

	Pairs     []PairScore
	PairTotal float64

	Drift      []DriftScore
	DriftTotal float64

	OutOfGamut []int
	GamutTotal float64

	MinHueSpacing   float64
	HueSpacingPair  [2]int
	HueSpacingTotal float64

	BaseChroma  float64
	ChromaTotal float64

	MinDistance   float64
	DistancePair  [2]int
	DistinctTotal float64

	ReadablePairs int
	ReadableTotal float64
}

// Passed returns the number of satisfied contrast pairs.
func (b *Breakdown) Passed() int {
	n := 0
	for _, p := range b.Pairs {
		if p.Met {
			n++
		}
	}
	return n
}

// Failed returns the number of violated contrast pairs.
func (b *Breakdown) Failed() int {
	return len(b.Pairs) - b.Passed()
}

// Evaluator scores palettes against a model. It holds no per-candidate state and is safe for
// concurrent use.
type Evaluator struct {
	model      *constraint.Model
	covered    [colour.PaletteSize][colour.PaletteSize]bool
	fixedLCH   [colour.PaletteSize]colour.LCH
	driftSlots []int
	readable   float64
	needWCAG   bool
	needAPCA   bool
}

// NewEvaluator prepares the lookup tables for a model.
func NewEvaluator(m *constraint.Model) *Evaluator {
	e := &Evaluator{
		model:    m,
		covered:  m.Covered(),
		readable: m.ReadableThreshold(),
	}

	for i := range m.Slots {
		s := &m.Slots[i]
		if s.Fixed {
			e.fixedLCH[i] = colour.ToLCH(s.Value)
			continue
		}
		if m.Space == constraint.SpaceOKLCH && s.BaseSlot >= 0 && s.MaxHueDrift > 0 {
			e.driftSlots = append(e.driftSlots, i)
		}
	}

	e.needWCAG = m.Metric == constraint.MetricWCAG
	e.needAPCA = m.Metric == constraint.MetricAPCA
	for _, p := range m.Pairs {
		switch m.MetricFor(p) {
		case constraint.MetricWCAG:
			e.needWCAG = true
		case constraint.MetricAPCA:
			e.needAPCA = true
		}
	}
	return e
}

// Model returns the model the evaluator scores against.
func (e *Evaluator) Model() *constraint.Model {
	return e.model
}

// Evaluate returns the fitness of a palette; higher is better.
func (e *Evaluator) Evaluate(p *Palette) float64 {
	var v view
	e.fromPalette(p, &v)
	return e.score(&v, nil)
}

// Explain returns the itemised fitness of a palette.
func (e *Evaluator) Explain(p *Palette) Breakdown {
	var v view
	e.fromPalette(p, &v)
	var b Breakdown
	e.score(&v, &b)
	return b
}

// ExplainRGB scores concrete colours as they are, including slots the model would fix.
func (e *Evaluator) ExplainRGB(colours [colour.PaletteSize]colour.RGB) Breakdown {
	var v view
	v.rgb = colours
	for i, c := range colours {
		v.lch[i] = colour.ToLCH(c)
	}
	e.luminance(&v)
	var b Breakdown
	e.score(&v, &b)
	return b
}

// view is a palette converted once into every representation the terms need.
type view struct {
	rgb        [colour.PaletteSize]colour.RGB
	lch        [colour.PaletteSize]colour.LCH
	outOfGamut [colour.PaletteSize]bool
	wcagY      [colour.PaletteSize]float64
	apcaY      [colour.PaletteSize]float64
}

func (e *Evaluator) fromPalette(p *Palette, v *view) {
	m := e.model
	for i := range p {
		s := &m.Slots[i]
		switch {
		case s.Fixed:
			v.rgb[i] = s.Value
			v.lch[i] = e.fixedLCH[i]
		case m.Space == constraint.SpaceRGB:
			v.rgb[i] = colour.FromFloat(p[i][0], p[i][1], p[i][2])
			if i <= lastDistinct {
				v.lch[i] = colour.ToLCH(v.rgb[i])
			}
		default:
			lch := p[i].LCH()
			v.lch[i] = lch
			v.rgb[i] = lch.RGB()
			v.outOfGamut[i] = !lch.InGamut()
		}
	}
	e.luminance(v)
}

func (e *Evaluator) luminance(v *view) {
	for i, c := range v.rgb {
		if e.needWCAG {
			v.wcagY[i] = colour.Luminance(c)
		}
		if e.needAPCA {
			v.apcaY[i] = colour.APCALuminance(c)
		}
	}
}

// contrast returns the raw metric value of fg on bg.
func (e *Evaluator) contrast(v *view, metric constraint.Metric, fg, bg int) float64 {
	if metric == constraint.MetricWCAG {
		return colour.ContrastRatioFromLuminance(v.wcagY[fg], v.wcagY[bg])
	}
	return colour.APCAFromLuminance(v.apcaY[fg], v.apcaY[bg])
}

func magnitude(metric constraint.Metric, value float64, polarity constraint.Polarity) float64 {
	if metric == constraint.MetricWCAG {
		return value
	}
	switch polarity {
	case constraint.PolarityDarkOnLight:
		return math.Max(0, value)
	case constraint.PolarityLightOnDark:
		return math.Max(0, -value)
	default:
		return math.Abs(value)
	}
}

func (e *Evaluator) scorePair(v *view, p constraint.Pair) PairScore {
	w := &e.model.Weights
	metric := e.model.MetricFor(p)
	value := e.contrast(v, metric, p.FG, p.BG)
	mag := magnitude(metric, value, p.Polarity)

	scale := 1.0
	if metric == constraint.MetricWCAG {
		scale = w.WCAGScale
	}

	ps := PairScore{Pair: p, Metric: metric, Value: value, Magnitude: mag}
	switch {
	case mag < p.Min:
		ps.Score = -w.ShortfallPenalty * (p.Min - mag) * scale
	case p.HasTarget():
		ps.Met = true
		ps.Score = w.PassBonus -
			w.TargetUnder*math.Max(0, p.Target-mag)*scale -
			w.TargetOver*math.Max(0, mag-p.Target)*scale
	default:
		ps.Met = true
		ps.Score = w.PassBonus + w.ExcessReward*(mag-p.Min)*scale
	}
	return ps
}

func (e *Evaluator) score(v *view, b *Breakdown) float64 {
	m := e.model
	w := &m.Weights
	var total float64

	// Contrast pairs.
	var pairTotal float64
	for _, p := range m.Pairs {
		ps := e.scorePair(v, p)
		pairTotal += ps.Score
		if b != nil {
			b.Pairs = append(b.Pairs, ps)
		}
	}
	total += pairTotal

	// Bright/regular hue drift.
	var driftTotal float64
	for _, i := range e.driftSlots {
		s := &m.Slots[i]
		drift := colour.HueDistance(v.lch[i].H, v.lch[s.BaseSlot].H)
		score := w.DriftBonus
		if drift > s.MaxHueDrift {
			score = -w.DriftPenalty * (drift - s.MaxHueDrift)
		}
		driftTotal += score
		if b != nil {
			b.Drift = append(b.Drift, DriftScore{Slot: i, Base: s.BaseSlot, Drift: drift, Score: score})
		}
	}
	total += driftTotal

	// Gamut.
	var gamutTotal float64
	for i, out := range v.outOfGamut {
		if out {
			gamutTotal -= w.GamutPenalty
			if b != nil {
				b.OutOfGamut = append(b.OutOfGamut, i)
			}
		}
	}
	total += gamutTotal

	// Hue spacing among the chromatic base colours.
	minHue, hueA, hueB := 360.0, 0, 0
	for i := firstBase; i <= lastBase; i++ {
		for j := i + 1; j <= lastBase; j++ {
			if d := colour.HueDistance(v.lch[i].H, v.lch[j].H); d < minHue {
				minHue, hueA, hueB = d, i, j
			}
		}
	}
	hueTotal := w.HueSpacingReward * minHue
	if minHue < w.HueSpacingFloor {
		hueTotal = -w.HueSpacingPenalty * (w.HueSpacingFloor - minHue)
	}
	total += hueTotal

	// Base chroma.
	var chroma float64
	for i := firstBase; i <= lastBase; i++ {
		chroma += v.lch[i].C
	}
	chromaTotal := w.ChromaReward * chroma
	total += chromaTotal

	// Perceptual distinctness of base colours and white.
	minDist, distA, distB := math.Inf(1), 0, 0
	var labs [lastDistinct + 1]colour.Lab
	for i := firstBase; i <= lastDistinct; i++ {
		labs[i] = v.lch[i].Lab()
	}
	for i := firstBase; i <= lastDistinct; i++ {
		for j := i + 1; j <= lastDistinct; j++ {
			if d := colour.OklabDistance(labs[i], labs[j]); d < minDist {
				minDist, distA, distB = d, i, j
			}
		}
	}
	distinctTotal := w.DistinctReward * minDist
	if minDist < w.DistinctFloor {
		distinctTotal = -w.DistinctPenalty * (w.DistinctFloor - minDist)
	}
	total += distinctTotal

	// General readability of pairs outside the constraint table.
	readable := 0
	for fg := range colour.PaletteSize {
		for bg := range colour.PaletteSize {
			if fg == bg || e.covered[fg][bg] {
				continue
			}
			if magnitude(m.Metric, e.contrast(v, m.Metric, fg, bg), constraint.PolarityAny) >= e.readable {
				readable++
			}
		}
	}
	readableTotal := w.ReadableBonus * float64(readable)
	total += readableTotal

	if math.IsNaN(total) {
		total = math.Inf(-1)
	}

	if b != nil {
		b.Total = total
		b.PairTotal = pairTotal
		b.DriftTotal = driftTotal
		b.GamutTotal = gamutTotal
		b.MinHueSpacing = minHue
		b.HueSpacingPair = [2]int{hueA, hueB}
		b.HueSpacingTotal = hueTotal
		b.BaseChroma = chroma
		b.ChromaTotal = chromaTotal
		b.MinDistance = minDist
		b.DistancePair = [2]int{distA, distB}
		b.DistinctTotal = distinctTotal
		b.ReadablePairs = readable
		b.ReadableTotal = readableTotal
	}
	return total
}
