package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"deckforge/templates"
	"deckforge/utils"
)

func newTemplatesCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "templates [id]",
		Short: "List starter templates or print one as a deck document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tSLIDES\tDESCRIPTION")
				for _, s := range templates.List() {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Name, s.SlideCount, s.Description)
				}
				return w.Flush()
			}

			tpl, err := templates.Get(args[0])
			if err != nil {
				return newCommandError("get template", args[0], err, "Run 'deckforge templates' to list the template ids.")
			}
			data, err := json.MarshalIndent(tpl.Deck, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := utils.WriteFileAtomic(outPath, data, 0o644); err != nil {
				return newCommandError("write template", outPath, err, "Check that the output directory exists.")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Template %s written to %s\n", tpl.ID, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the deck document to this file")

	return cmd
}
