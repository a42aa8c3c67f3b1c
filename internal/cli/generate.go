package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/ansigen/internal/constraint"
	"github.com/jmylchreest/ansigen/internal/genetic"
	"github.com/jmylchreest/ansigen/internal/history"
	"github.com/jmylchreest/ansigen/internal/preview"
	"github.com/jmylchreest/ansigen/internal/report"
	"github.com/jmylchreest/ansigen/internal/theme"
)

type generateOptions struct {
	config      genetic.Config
	constraints string
	output      string
	name        string
	history     string
	previewPath string
	reload      bool
	dryRun      bool
	colour      report.ColourMode
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	opts := &generateOptions{config: genetic.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Search for a palette and write it as a Ghostty theme",
		Long: `Evolve a population of candidate palettes against a constraint model and write
the best one found as a Ghostty theme.

The constraint model is either a built-in flavour (see 'ansigen constraints list')
or a YAML, TOML or JSON file. Slots 0 (black) and 15 (bright white) are fixed to
#000000 and #ffffff.

Examples:
  # Default search (oklch-apca, 200000 palettes for 5000 generations)
  ansigen generate

  # Quick, reproducible run
  ansigen generate --population 20000 --generations 500 --seed 42

  # WCAG constraints in raw RGB, named theme, run history and preview image
  ansigen generate --constraints rgb-wcag --name "My Theme" \
    --history runs/my-theme.json.xz --preview-image my-theme.png

  # Custom constraint file, print the theme without writing anything
  ansigen generate --constraints ./strict.yaml --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.config.Seed = rand.Uint64() // #nosec G404 - search seed, not security
			}
			return runGenerate(cmd, g, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.config.PopulationSize, "population", opts.config.PopulationSize, "palettes per generation")
	f.IntVar(&opts.config.Generations, "generations", opts.config.Generations, "number of generations")
	f.Float64Var(&opts.config.MutationRate, "mutation-rate", opts.config.MutationRate, "per-component mutation probability")
	f.Float64Var(&opts.config.EliteRatio, "elite-ratio", opts.config.EliteRatio, "fraction of the population kept as elites and parents")
	f.Uint64Var(&opts.config.Seed, "seed", 0, "random seed (default: random, logged)")
	f.IntVar(&opts.config.Workers, "workers", 0, "worker goroutines (default: GOMAXPROCS)")
	f.IntVar(&opts.config.StagnationThreshold, "stagnation", opts.config.StagnationThreshold, "generations without improvement before boosting mutation")
	f.IntVar(&opts.config.LogEvery, "log-every", opts.config.LogEvery, "log progress every n generations (0 disables)")
	f.StringVarP(&opts.constraints, "constraints", "c", constraint.DefaultName, "built-in constraint model or constraint file")
	f.StringVarP(&opts.output, "output", "o", "", "theme output path (default: themes/ansigen-<timestamp>)")
	f.StringVarP(&opts.name, "name", "n", "", "theme name (default: output file name)")
	f.StringVar(&opts.history, "history", "", "write run history as JSON (.gz or .xz to compress)")
	f.StringVar(&opts.previewPath, "preview-image", "", "write a PNG swatch sheet")
	f.BoolVar(&opts.reload, "reload", false, "signal running ghostty instances to reload")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the theme without writing files")
	addColourFlag(f, &opts.colour)

	return cmd
}

// themePath resolves the output path: --output, else themes/<name>, else a timestamped default.
func (o *generateOptions) themePath(now time.Time) string {
	switch {
	case o.output != "":
		return o.output
	case o.name != "":
		return filepath.Join(theme.DefaultDir, theme.SafeName(o.name))
	default:
		return theme.DefaultPath(theme.DefaultDir, now)
	}
}

func runGenerate(cmd *cobra.Command, g *globalOptions, opts *generateOptions) error {
	logger := g.logger(cmd.ErrOrStderr())
	out := cmd.OutOrStdout()

	model, err := constraint.Resolve(opts.constraints)
	if err != nil {
		return err
	}

	cfg := opts.config
	cfg.MutationCeiling = max(cfg.MutationCeiling, cfg.MutationRate)

	eng, err := genetic.NewEngine(model, cfg, genetic.WithLogger(logger.Named("search")))
	if err != nil {
		return err
	}
	logger.Info("starting search", "constraints", model.Name, "seed", cfg.Seed)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := eng.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("search interrupted, using best palette so far", "generations", res.Generations)
	case err != nil:
		return fmt.Errorf("search failed: %w", err)
	}
	if res.Best.Generation < 0 {
		return fmt.Errorf("search stopped before any palette was evaluated")
	}

	now := time.Now()
	colours := res.Best.Palette.RGB(model)
	breakdown := eng.Evaluator().Explain(&res.Best.Palette)

	if !g.quiet {
		rep := report.New(out, opts.colour)
		rep.Analysis(colours, model, &breakdown)
		fmt.Fprintf(out, "Best fitness %.2f (generation %d of %d, seed %d, %s)\n\n",
			res.Best.Fitness, res.Best.Generation, res.Generations, res.Seed, res.Elapsed.Round(time.Millisecond))
	}

	path := opts.themePath(now)
	name := opts.name
	if name == "" {
		name = filepath.Base(path)
	}
	th := &theme.Theme{Name: name, Colours: colours}
	content, err := theme.NewLoader(logger).Render(th)
	if err != nil {
		return err
	}

	if opts.dryRun {
		fmt.Fprintf(out, "Would write: %s (%d bytes)\n\n", path, len(content))
		_, _ = out.Write(content)
		return nil
	}

	if err := theme.Write(path, content); err != nil {
		// Keep the result: the theme text is still on stdout.
		fmt.Fprintln(out, string(content))
		return fmt.Errorf("failed to write theme %s: %w", path, err)
	}
	fmt.Fprintf(out, "✓ Theme: %s\n", path)

	if opts.history != "" {
		rec := history.New(name, eng, cfg, res, &breakdown, now)
		if err := history.Save(opts.history, rec); err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
		fmt.Fprintf(out, "✓ History: %s\n", opts.history)
	}

	if opts.previewPath != "" {
		if err := preview.Write(opts.previewPath, name, colours); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Preview: %s\n", opts.previewPath)
	}

	if opts.reload {
		reloadGhostty(out, logger)
	}
	return nil
}

// reloadGhostty is best effort: the theme is already on disk.
func reloadGhostty(out io.Writer, logger hclog.Logger) {
	n, err := theme.Reload()
	if err != nil {
		logger.Warn("reload failed", "error", err)
		return
	}
	fmt.Fprintf(out, "✓ Reloaded %d ghostty instance(s)\n", n)
}
