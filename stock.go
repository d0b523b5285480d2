package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deckforge/app"
	"deckforge/service"
)

type stockOptions struct {
	dir         string
	driveFolder string
	themes      []string
}

func newStockCmd(flags *rootFlags) *cobra.Command {
	opts := &stockOptions{}

	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Populate the stock background library",
		Long: "Generate the stock title backgrounds of each theme, or mirror them from a\n" +
			"Google Drive folder with --drive-folder. Existing files are kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStock(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "Target directory (default <background_base>/stock)")
	cmd.Flags().StringVar(&opts.driveFolder, "drive-folder", "", "Mirror this Drive folder instead of generating")
	cmd.Flags().StringSliceVar(&opts.themes, "themes", nil, "Only generate these themes")

	return cmd
}

func runStock(cmd *cobra.Command, flags *rootFlags, opts *stockOptions) error {
	cfg, log, err := loadRuntime(cmd, flags)
	if err != nil {
		return err
	}
	a, err := app.Initialize(cmd.Context(), cfg, log, app.Options{})
	if err != nil {
		return newCommandError("populate stock", "initializing services", err, "Check GOOGLE_APPLICATION_CREDENTIALS when mirroring Drive.")
	}
	defer a.Close()

	dir := opts.dir
	if dir == "" {
		if service.IsRemote(cfg.Assets.BackgroundBase) {
			return newCommandError("populate stock", cfg.Assets.BackgroundBase, fmt.Errorf("background base is not a local directory"), "Pass --dir.")
		}
		dir = service.JoinRef(cfg.Assets.BackgroundBase, "stock")
	}

	var res service.StockResult
	if opts.driveFolder != "" {
		res, err = a.Stock.Mirror(cmd.Context(), opts.driveFolder, dir)
	} else {
		res, err = a.Stock.Generate(cmd.Context(), dir, opts.themes)
	}
	if err != nil {
		return newCommandError("populate stock", dir, err, "Run with --log-level debug for details.")
	}

	out := cmd.OutOrStdout()
	for _, e := range res.Errors {
		fmt.Fprintf(out, "❌ %s\n", e)
	}
	fmt.Fprintf(out, "%d downloaded, %d skipped, %d failed out of %d\n", res.Downloaded, res.Skipped, len(res.Errors), res.Total)
	return nil
}
