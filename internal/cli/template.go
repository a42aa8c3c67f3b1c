package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/ansigen/internal/theme"
)

type templateOptions struct {
	force    bool
	location string
}

func newTemplateCmd(g *globalOptions) *cobra.Command {
	opts := &templateOptions{}

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage the Ghostty theme template",
		Long: `Themes are rendered from an embedded Go text/template. Dump it to
~/.config/ansigen/templates/ghostty/ghostty.tmpl and edit it to change the theme
format; the custom template is used instead of the embedded one.

Template data is the theme ({{ .Name }}, {{ .Colours }}); helper functions are
hex, hexNoHash, rgb, slot and slotName.

Examples:
  ansigen template path
  ansigen template dump
  ansigen template dump --force
  ansigen template dump -l ./templates`,
	}

	loader := func(cmd *cobra.Command) *theme.Loader {
		l := theme.NewLoader(g.logger(cmd.ErrOrStderr()))
		if opts.location != "" {
			l.WithCustomBase(opts.location)
		}
		return l
	}

	dump := &cobra.Command{
		Use:   "dump",
		Short: "Write the embedded template for editing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := loader(cmd).Dump(opts.force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Template: %s\n", path)
			return nil
		},
	}
	dump.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing custom template")

	path := &cobra.Command{
		Use:   "path",
		Short: "Show where the custom template is looked up",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			l := loader(cmd)
			state := "not present, using embedded template"
			if l.HasCustom() {
				state = "custom template in use"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", l.CustomPath(), state)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.location, "location", "l", "", "template base directory (default: ~/.config/ansigen/templates)")
	cmd.AddCommand(dump, path)
	return cmd
}
