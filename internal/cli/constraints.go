package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/ansigen/internal/colour"
	"github.com/jmylchreest/ansigen/internal/constraint"
	"github.com/jmylchreest/ansigen/internal/report"
)

func newConstraintsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "constraints",
		Short: "Inspect constraint models",
		Long: `List the built-in constraint models or show the slots, contrast pairs and
weights of a built-in model or constraint file.

Examples:
  ansigen constraints list
  ansigen constraints show oklch-apca
  ansigen constraints show ./strict.yaml`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List built-in constraint models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listConstraints(cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name|file>",
		Short: "Show a constraint model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := constraint.Resolve(args[0])
			if err != nil {
				return err
			}
			return showConstraints(cmd.OutOrStdout(), m)
		},
	})

	return cmd
}

func listConstraints(w io.Writer) error {
	t := report.NewTable([]string{"Name", "Space", "Metric", "Pairs", "Description"})
	t.SetColumnMaxWidth(4, 60)
	for _, name := range constraint.Names() {
		m, err := constraint.Builtin(name)
		if err != nil {
			return err
		}
		label := m.Name
		if m.Name == constraint.DefaultName {
			label += " (default)"
		}
		t.AddRow([]string{label, m.Space.String(), m.Metric.String(), fmt.Sprintf("%d", len(m.Pairs)), m.Description})
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

func showConstraints(w io.Writer, m *constraint.Model) error {
	fmt.Fprintf(w, "%s (%s, %s)\n", m.Name, m.Space, m.Metric)
	if m.Description != "" {
		fmt.Fprintln(w, m.Description)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, slotTable(m))
	fmt.Fprintln(w)

	pairs := report.NewTable([]string{"FG", "BG", "Metric", "Min", "Target", "Polarity"})
	pairs.SetTitle(fmt.Sprintf("Contrast pairs (%d)", len(m.Pairs)))
	for _, p := range m.Pairs {
		target := "-"
		if p.HasTarget() {
			target = fmt.Sprintf("%g", p.Target)
		}
		pairs.AddRow([]string{
			colour.SlotName(p.FG), colour.SlotName(p.BG), m.MetricFor(p).String(),
			fmt.Sprintf("%g", p.Min), target, p.Polarity.String(),
		})
	}
	fmt.Fprintln(w, pairs.Render())
	fmt.Fprintln(w)

	weights, err := yaml.Marshal(m.Weights)
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}
	fmt.Fprintln(w, "Weights")
	fmt.Fprint(w, string(weights))
	return nil
}

func slotTable(m *constraint.Model) string {
	var t *report.Table
	if m.Space == constraint.SpaceRGB {
		t = report.NewTable([]string{"#", "Name", "Red", "Green", "Blue"})
	} else {
		t = report.NewTable([]string{"#", "Name", "Hue", "Lightness", "Chroma", "Drift"})
	}
	t.SetTitle("Slots")

	for i, s := range m.Slots {
		row := []string{fmt.Sprintf("%d", i), s.Name}
		switch {
		case s.Fixed:
			row = append(row, "fixed "+s.Value.Hex())
		case m.Space == constraint.SpaceRGB:
			row = append(row, formatRange(s.Red, "%.0f"), formatRange(s.Green, "%.0f"), formatRange(s.Blue, "%.0f"))
		default:
			hue := "any"
			if s.HueTolerance < 180 {
				hue = fmt.Sprintf("%.0f±%.0f", s.Hue, s.HueTolerance)
			}
			drift := ""
			if s.BaseSlot >= 0 && s.MaxHueDrift > 0 {
				drift = fmt.Sprintf("≤%.0f° of %s", s.MaxHueDrift, colour.SlotName(s.BaseSlot))
			}
			row = append(row, hue, formatRange(s.Lightness, "%.2f"), formatRange(s.Chroma, "%.3f"), drift)
		}
		t.AddRow(row)
	}
	return t.Render()
}

func formatRange(r constraint.Range, verb string) string {
	return strings.Join([]string{fmt.Sprintf(verb, r.Min), fmt.Sprintf(verb, r.Max)}, "-")
}
