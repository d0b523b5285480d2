package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"deckforge/theme"
)

func newThemesCmd(flags *rootFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadRuntime(cmd, flags)
			if err != nil {
				return err
			}
			registry := theme.Default()
			if cfg.Render.ThemesDir != "" {
				if _, err := registry.LoadDir(cfg.Render.ThemesDir); err != nil {
					return newCommandError("list themes", cfg.Render.ThemesDir, err, "Check the theme files in the themes directory.")
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(registry.All())
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDECOR\tPRIMARY\tACCENT\tHEADING FONT")
			for _, t := range registry.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\t#%s\t#%s\t%s\n", t.ID, t.Name, t.Decor, t.Colors.Primary, t.Colors.Accent, t.Fonts.Heading)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output full themes as JSON")

	return cmd
}
