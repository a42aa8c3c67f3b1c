// Package cli provides the command-line interface for ansigen.
package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/ansigen/internal/report"
	"github.com/jmylchreest/ansigen/internal/version"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbose bool
	quiet   bool
}

// logger builds the command logger: debug when verbose, silent when quiet, info otherwise.
func (g *globalOptions) logger(w io.Writer) hclog.Logger {
	switch {
	case g.quiet:
		return hclog.New(&hclog.LoggerOptions{
			Name:   "ansigen",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	case g.verbose:
		return hclog.New(&hclog.LoggerOptions{
			Name:   "ansigen",
			Output: w,
			Level:  hclog.Debug,
		})
	default:
		return hclog.New(&hclog.LoggerOptions{
			Name:   "ansigen",
			Output: w,
			Level:  hclog.Info,
		})
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "ansigen",
		Short: "Evolve 16-colour terminal palettes that meet contrast constraints",
		Long: `ansigen searches for a 16-colour ANSI terminal palette with a genetic algorithm.

Candidate palettes are scored against a constraint model: pairwise contrast
requirements (WCAG 2.1 ratio or APCA Lc), per-slot hue, lightness and chroma
bounds, and secondary goals such as hue spacing and perceptual distinctness.
The best palette is reported and written as a Ghostty theme.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateCmd(g))
	rootCmd.AddCommand(newAnalyzeCmd(g))
	rootCmd.AddCommand(newConstraintsCmd())
	rootCmd.AddCommand(newTemplateCmd(g))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// addColourFlag registers --colour on fs.
func addColourFlag(fs *pflag.FlagSet, mode *report.ColourMode) {
	fs.Var(mode, "colour", "colour output: auto, always or never")
}
