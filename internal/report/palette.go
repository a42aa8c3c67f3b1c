package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/ansigen/internal/colour"
	"github.com/jmylchreest/ansigen/internal/constraint"
	"github.com/jmylchreest/ansigen/internal/genetic"
)

// Colours is a concrete 16-colour palette.
type Colours = [colour.PaletteSize]colour.RGB

// paletteBackgrounds are the backgrounds shown as APCA columns in the palette table.
var paletteBackgrounds = []int{colour.Black, colour.Blue, colour.Cyan, colour.Green}

// PaletteTable lists every slot with its hex value, WCAG ratio on black and APCA Lc on the
// common backgrounds.
func (r *Reporter) PaletteTable(c Colours) string {
	headers := []string{"#", "Name", "", "Hex", "CR"}
	for _, bg := range paletteBackgrounds {
		headers = append(headers, "on "+colour.SlotName(bg))
	}
	t := NewTable(headers)
	t.SetPadding(1)
	t.SetTitle(r.bold.Render("Palette"))

	for i, fg := range c {
		cells := []Cell{
			{Text: fmt.Sprintf("%2d", i)},
			{Text: colour.SlotName(i)},
			{Text: "    ", Style: r.bgStyle(fg.Hex())},
			{Text: fg.Hex()},
		}

		if i == colour.Black {
			cells = append(cells, Cell{Text: "---"})
		} else {
			ratio := colour.ContrastRatio(fg, c[colour.Black])
			cells = append(cells, Cell{
				Text:  fmt.Sprintf("%s%5.1f", WCAGSymbol(ratio), ratio),
				Style: r.fgStyle(wcagColour(ratio)),
			})
		}

		for _, bgIdx := range paletteBackgrounds {
			bg := c[bgIdx]
			if i == bgIdx {
				cells = append(cells, Cell{Text: "  ---", Style: r.bgStyle(bg.Hex())})
				continue
			}
			cells = append(cells, Cell{
				Text:  FormatAPCA(colour.APCA(fg, bg)),
				Style: r.pairStyle(fg.Hex(), bg.Hex()),
			})
		}
		t.AddCells(cells)
	}
	return t.Render()
}

// pairTable renders APCA results for (fg, bg) pairs with an optional threshold per pair.
func (r *Reporter) pairTable(title string, c Colours, pairs [][2]int) string {
	t := NewTable([]string{"Pair", "APCA"})
	t.SetPadding(1)
	t.SetTitle(r.bold.Render(title))
	for _, p := range pairs {
		fg, bg := c[p[0]], c[p[1]]
		lc := colour.APCA(fg, bg)
		t.AddCells([]Cell{
			{Text: fmt.Sprintf(" %s on %s ", colour.SlotName(p[0]), colour.SlotName(p[1])), Style: r.pairStyle(fg.Hex(), bg.Hex())},
			{Text: FormatAPCA(lc), Style: r.fgStyle(apcaColour(lc))},
		})
	}
	return t.Render()
}

// BrightOnRegularTable shows each bright slot on its regular counterpart.
func (r *Reporter) BrightOnRegularTable(c Colours, m *constraint.Model) string {
	pairs := make([][2]int, 0, 8)
	for i := colour.Black; i <= colour.White; i++ {
		pairs = append(pairs, [2]int{i + 8, i})
	}
	title := "Bright on Regular"
	if lo, ok := threshold(m, colour.BrightRed, colour.Red); ok {
		title = fmt.Sprintf("Bright on Regular (%s)", lo)
	}
	return r.pairTable(title, c, pairs)
}

// OnBackgroundTable shows every base colour and white on one background slot.
func (r *Reporter) OnBackgroundTable(c Colours, m *constraint.Model, bg int) string {
	var pairs [][2]int
	for fg := colour.Black; fg <= colour.White; fg++ {
		if fg != bg {
			pairs = append(pairs, [2]int{fg, bg})
		}
	}
	title := "On " + colour.SlotName(bg)
	if lo, ok := threshold(m, colour.Black, bg); ok {
		title = fmt.Sprintf("On %s (%s)", colour.SlotName(bg), lo)
	}
	return r.pairTable(title, c, pairs)
}

// threshold describes the model's minimum for a pair, if the model constrains it.
func threshold(m *constraint.Model, fg, bg int) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, p := range m.Pairs {
		if p.FG == fg && p.BG == bg {
			return fmt.Sprintf("%s≥%g", strings.ToUpper(m.MetricFor(p).String()), p.Min), true
		}
	}
	return "", false
}

// ConstraintTable lists every pair of the model with its measured value and score.
func (r *Reporter) ConstraintTable(c Colours, b *genetic.Breakdown) string {
	t := NewTable([]string{"Pair", "Metric", "Value", "Min", "Target", "", "Score"})
	t.SetPadding(1)
	t.SetTitle(r.bold.Render(fmt.Sprintf("Constraints (%d/%d met)", b.Passed(), len(b.Pairs))))

	for _, ps := range b.Pairs {
		fg, bg := c[ps.Pair.FG], c[ps.Pair.BG]
		status, statusColour := "✓", colourPass
		if !ps.Met {
			status, statusColour = "✗", colourFail
		}
		target := "-"
		if ps.Pair.HasTarget() {
			target = fmt.Sprintf("%g", ps.Pair.Target)
		}
		t.AddCells([]Cell{
			{Text: fmt.Sprintf(" %s on %s ", colour.SlotName(ps.Pair.FG), colour.SlotName(ps.Pair.BG)), Style: r.pairStyle(fg.Hex(), bg.Hex())},
			{Text: ps.Metric.String()},
			{Text: formatMetric(ps.Metric, ps.Value)},
			{Text: fmt.Sprintf("%g", ps.Pair.Min)},
			{Text: target},
			{Text: status, Style: r.fgStyle(statusColour)},
			{Text: fmt.Sprintf("%8.1f", ps.Score)},
		})
	}
	return t.Render()
}

func formatMetric(m constraint.Metric, v float64) string {
	if m == constraint.MetricWCAG {
		return fmt.Sprintf("%.2f:1", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// Matrix renders the APCA contrast of every foreground on every background.
func (r *Reporter) Matrix(c Colours) string {
	var sb strings.Builder
	sb.WriteString(r.bold.Render("APCA Contrast Matrix (FG on BG)"))
	sb.WriteString("\n")

	sb.WriteString("FG\\BG")
	for bg := range colour.PaletteSize {
		fmt.Fprintf(&sb, " %02d  ", bg)
	}
	sb.WriteString("\n")

	for fg := range colour.PaletteSize {
		fmt.Fprintf(&sb, "  %02d  ", fg)
		for bg := range colour.PaletteSize {
			lc := colour.APCA(c[fg], c[bg])
			cell := fmt.Sprintf("%s%4.0f", APCASymbol(lc), lc)
			sb.WriteString(r.pairStyle(c[fg].Hex(), c[bg].Hex()).Render(cell))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Swatches renders two rows of background swatches labelled with their slot index.
func (r *Reporter) Swatches(c Colours) string {
	var sb strings.Builder
	sb.WriteString(" 0-7: ")
	for i := colour.Black; i <= colour.White; i++ {
		sb.WriteString(r.bgStyle(c[i].Hex()).Render(fmt.Sprintf("  %d  ", i)))
	}
	sb.WriteString("\n8-15: ")
	for i := colour.BrightBlack; i <= colour.BrightWhite; i++ {
		sb.WriteString(r.bgStyle(c[i].Hex()).Render(fmt.Sprintf(" %2d  ", i)))
	}
	sb.WriteString("\n")
	return sb.String()
}

// MinHueSpacing returns the smallest OKLCH hue separation among red..cyan and the slots that
// produce it.
func MinHueSpacing(c Colours) (float64, int, int) {
	minDist, a, b := 360.0, 0, 0
	for i := colour.Red; i <= colour.Cyan; i++ {
		for j := i + 1; j <= colour.Cyan; j++ {
			d := colour.HueDistance(colour.ToLCH(c[i]).H, colour.ToLCH(c[j]).H)
			if d < minDist {
				minDist, a, b = d, i, j
			}
		}
	}
	return minDist, a, b
}

// HueSpacing reports the minimum hue separation of the base colours.
func (r *Reporter) HueSpacing(c Colours) string {
	d, a, b := MinHueSpacing(c)
	status := HueSpacingStatus(d)
	var statusColour lipgloss.Color
	switch {
	case d >= 50:
		statusColour = colourPass
	case d >= 30:
		statusColour = colourWarn
	default:
		statusColour = colourFail
	}
	return fmt.Sprintf("%s\n  Min: %.0f° (%s/%s) %s\n",
		r.bold.Render("Hue Spacing (ideal: 60°)"),
		d, colour.SlotName(a), colour.SlotName(b),
		r.fgStyle(statusColour).Render(status))
}

// Summary lists the fitness terms of a breakdown.
func (r *Reporter) Summary(b *genetic.Breakdown) string {
	t := NewTable([]string{"Term", "Measure", "Score"})
	t.SetPadding(2)
	t.SetTitle(r.bold.Render("Fitness"))

	t.AddRow([]string{"contrast pairs", fmt.Sprintf("%d met, %d failed", b.Passed(), b.Failed()), fmt.Sprintf("%.1f", b.PairTotal)})
	if len(b.Drift) > 0 {
		worst := 0.0
		for _, d := range b.Drift {
			worst = max(worst, d.Drift)
		}
		t.AddRow([]string{"hue drift", fmt.Sprintf("max %.1f°", worst), fmt.Sprintf("%.1f", b.DriftTotal)})
	}
	if len(b.OutOfGamut) > 0 {
		names := make([]string, len(b.OutOfGamut))
		for i, idx := range b.OutOfGamut {
			names[i] = colour.SlotName(idx)
		}
		t.AddRow([]string{"out of gamut", strings.Join(names, ", "), fmt.Sprintf("%.1f", b.GamutTotal)})
	}
	t.AddRow([]string{"hue spacing", fmt.Sprintf("min %.1f° (%s/%s)", b.MinHueSpacing,
		colour.SlotName(b.HueSpacingPair[0]), colour.SlotName(b.HueSpacingPair[1])), fmt.Sprintf("%.1f", b.HueSpacingTotal)})
	t.AddRow([]string{"base chroma", fmt.Sprintf("sum %.3f", b.BaseChroma), fmt.Sprintf("%.1f", b.ChromaTotal)})
	t.AddRow([]string{"distinctness", fmt.Sprintf("min ΔE %.3f (%s/%s)", b.MinDistance,
		colour.SlotName(b.DistancePair[0]), colour.SlotName(b.DistancePair[1])), fmt.Sprintf("%.1f", b.DistinctTotal)})
	t.AddRow([]string{"readable pairs", fmt.Sprintf("%d", b.ReadablePairs), fmt.Sprintf("%.1f", b.ReadableTotal)})
	t.AddRow([]string{"total", "", fmt.Sprintf("%.1f", b.Total)})
	return t.Render()
}

// Legend explains the APCA glyphs.
func (r *Reporter) Legend() string {
	return fmt.Sprintf("APCA: %s≥90 %s≥75(body) %s≥60(large) %s≥45(bold) %s<45\n",
		r.fgStyle(colourPreferred).Render("★"),
		r.fgStyle(colourPass).Render("✓"),
		r.fgStyle(colourWarn).Render("~"),
		r.fgStyle(colourOrange).Render("○"),
		r.fgStyle(colourFail).Render("✗"))
}

// Analysis renders the full report of a palette under a model.
func (r *Reporter) Analysis(c Colours, m *constraint.Model, b *genetic.Breakdown) {
	r.println(r.PaletteTable(c))
	r.println(r.Matrix(c))
	r.println(lipgloss.JoinHorizontal(lipgloss.Top,
		r.BrightOnRegularTable(c, m), "  ",
		r.OnBackgroundTable(c, m, colour.Blue), "  ",
		r.OnBackgroundTable(c, m, colour.Green), "  ",
		r.OnBackgroundTable(c, m, colour.Cyan),
	))
	r.printf("%s\n", r.Legend())
	r.println(r.Swatches(c))
	r.println(r.HueSpacing(c))
	if b != nil {
		r.println(r.ConstraintTable(c, b))
		r.println(r.Summary(b))
	}
}
