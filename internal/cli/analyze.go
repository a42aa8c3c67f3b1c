package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/ansigen/internal/colour"
	"github.com/jmylchreest/ansigen/internal/compression"
	"github.com/jmylchreest/ansigen/internal/constraint"
	"github.com/jmylchreest/ansigen/internal/genetic"
	"github.com/jmylchreest/ansigen/internal/history"
	"github.com/jmylchreest/ansigen/internal/report"
	"github.com/jmylchreest/ansigen/internal/theme"
)

type analyzeOptions struct {
	constraints string
	colour      report.ColourMode
}

func newAnalyzeCmd(g *globalOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <theme>",
		Short: "Report the contrast and fitness of an existing palette",
		Long: `Analyze a Ghostty theme, or the palette recorded in a run history file, and
print the contrast tables, the APCA matrix, hue spacing and the fitness of the
palette under a constraint model.

Examples:
  ansigen analyze themes/ansigen-20250101-120000
  ansigen analyze ~/.config/ghostty/themes/mine --constraints oklch-wcag
  ansigen analyze runs/my-theme.json.xz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, g, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.constraints, "constraints", "c", constraint.DefaultName, "built-in constraint model or constraint file")
	addColourFlag(cmd.Flags(), &opts.colour)
	return cmd
}

func runAnalyze(cmd *cobra.Command, g *globalOptions, opts *analyzeOptions, path string) error {
	logger := g.logger(cmd.ErrOrStderr())
	out := cmd.OutOrStdout()

	model, err := constraint.Resolve(opts.constraints)
	if err != nil {
		return err
	}

	name, colours, err := loadPalette(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded palette", "name", name, "path", path, "constraints", model.Name)

	b := genetic.NewEvaluator(model).ExplainRGB(colours)
	rep := report.New(out, opts.colour)
	fmt.Fprintf(out, "%s\n\n", name)
	rep.Analysis(colours, model, &b)
	fmt.Fprintf(out, "Fitness under %s: %.2f\n", model.Name, b.Total)
	return nil
}

// loadPalette reads a run history (.json, optionally compressed) or a Ghostty theme.
func loadPalette(path string) (string, [colour.PaletteSize]colour.RGB, error) {
	base := path
	if compression.FormatFromPath(base) != compression.FormatNone {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if strings.EqualFold(filepath.Ext(base), ".json") {
		rec, err := history.Load(path)
		if err != nil {
			return "", [colour.PaletteSize]colour.RGB{}, err
		}
		colours, err := rec.Colours()
		if err != nil {
			return "", colours, fmt.Errorf("%s: %w", path, err)
		}
		return rec.Name, colours, nil
	}

	th, err := theme.ParseFile(path)
	if err != nil {
		return "", [colour.PaletteSize]colour.RGB{}, err
	}
	return th.Name, th.Colours, nil
}
