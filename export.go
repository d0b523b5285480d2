package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"deckforge/app"
	"deckforge/models"
	"deckforge/service"
	"deckforge/theme"
	"deckforge/utils"
)

type exportOptions struct {
	pptxPath  string
	pdfPath   string
	htmlPath  string
	pngDir    string
	themeID   string
	themeFile string
	offline   bool
	date      string
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <deck.json>",
		Short: "Export a deck document to PPTX, PDF, HTML or page images",
		Long: "Export a deck document. Without output flags a PPTX named after the deck title\n" +
			"is written next to the input file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.pptxPath, "pptx", "", "Write the slide package to this path")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "Write the PDF to this path (needs Chrome)")
	cmd.Flags().StringVar(&opts.htmlPath, "html", "", "Write the HTML preview to this path")
	cmd.Flags().StringVar(&opts.pngDir, "png-dir", "", "Write one PNG per page into this directory (needs Chrome)")
	cmd.Flags().StringVar(&opts.themeID, "theme", "", "Theme id overriding the deck's theme")
	cmd.Flags().StringVar(&opts.themeFile, "theme-file", "", "YAML or JSON file with a custom theme")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Never fetch remote images")
	cmd.Flags().StringVar(&opts.date, "date", "", "Footer date as YYYY-MM-DD (default today)")

	return cmd
}

func readDeck(path string) (*models.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newCommandError("read deck", path, err, "Check that the file exists and is readable.")
	}
	deck, err := models.ParseDeck(data)
	if err != nil {
		return nil, newCommandError("read deck", path, err, "The deck must be a JSON document with a title and slides.")
	}
	if err := models.ValidateDeck(deck); err != nil {
		return nil, newCommandError("validate deck", path, err, "Fix the reported field and try again.")
	}
	models.NormalizeDeck(deck)
	return deck, nil
}

func runExport(cmd *cobra.Command, flags *rootFlags, deckPath string, opts *exportOptions) error {
	deck, err := readDeck(deckPath)
	if err != nil {
		return err
	}

	req := service.ExportRequest{Deck: deck, ThemeID: opts.themeID}
	if opts.themeFile != "" {
		t, err := theme.LoadFile(opts.themeFile)
		if err != nil {
			return newCommandError("load theme", opts.themeFile, err, "The theme file must be YAML or JSON with an id and colors.")
		}
		if err := models.ValidateTheme(t); err != nil {
			return newCommandError("load theme", opts.themeFile, err, "Colors are 6-digit hex values.")
		}
		req.Theme = t
	}
	if opts.date != "" {
		d, err := time.Parse(time.DateOnly, opts.date)
		if err != nil {
			return newCommandError("parse date", opts.date, err, "Use the YYYY-MM-DD form.")
		}
		req.Date = d
	}

	outputs := map[models.Format]string{}
	if opts.pptxPath != "" {
		outputs[models.FormatPPTX] = opts.pptxPath
	}
	if opts.pdfPath != "" {
		outputs[models.FormatPDF] = opts.pdfPath
	}
	if opts.htmlPath != "" {
		outputs[models.FormatHTML] = opts.htmlPath
	}
	if len(outputs) == 0 && opts.pngDir == "" {
		outputs[models.FormatPPTX] = filepath.Join(filepath.Dir(deckPath), utils.ExportFileName(deck.Title, string(models.FormatPPTX)))
	}
	for _, f := range []models.Format{models.FormatPPTX, models.FormatPDF, models.FormatHTML} {
		if _, ok := outputs[f]; ok {
			req.Formats = append(req.Formats, f)
		}
	}

	cfg, log, err := loadRuntime(cmd, flags)
	if err != nil {
		return err
	}
	a, err := app.Initialize(cmd.Context(), cfg, log, app.Options{Offline: opts.offline})
	if err != nil {
		return newCommandError("export", "initializing services", err, "Check the asset configuration.")
	}
	defer a.Close()

	var result *service.ExportResult
	if len(req.Formats) > 0 {
		result, err = a.Exporter.Export(cmd.Context(), req)
	} else {
		result, err = a.Exporter.Prepare(cmd.Context(), req)
	}
	if err != nil {
		return newCommandError("export", deckPath, err, "Run with --log-level debug for details.")
	}

	out := cmd.OutOrStdout()
	for _, f := range req.Formats {
		path := outputs[f]
		artifact := result.Artifacts[f]
		if err := utils.WriteFileAtomic(path, artifact.Data, 0o644); err != nil {
			return newCommandError("write artifact", path, err, "Check that the output directory exists and is writable.")
		}
		fmt.Fprintf(out, "✓ %s written: %s (%d bytes)\n", strings.ToUpper(string(f)), path, len(artifact.Data))
	}

	if opts.pngDir != "" {
		if err := writePages(cmd, a, result, opts.pngDir); err != nil {
			return err
		}
	}

	printReport(cmd, result.Report)
	return nil
}

func writePages(cmd *cobra.Command, a *app.App, result *service.ExportResult, dir string) error {
	shots, err := a.PDF.Screenshots(cmd.Context(), result.Plan, result.Assets)
	if err != nil {
		return newCommandError("capture pages", dir, err, "Install Chrome or set CHROME_PATH.")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newCommandError("capture pages", dir, err, "Check that the directory is writable.")
	}
	for i, png := range shots {
		path := filepath.Join(dir, fmt.Sprintf("page-%02d.png", i+1))
		if err := utils.WriteFileAtomic(path, png, 0o644); err != nil {
			return newCommandError("write page", path, err, "Check that the directory is writable.")
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d page images written to %s\n", len(shots), dir)
	return nil
}

func printReport(cmd *cobra.Command, report models.ExportReport) {
	out := cmd.OutOrStdout()
	for _, s := range report.Slides {
		if s.Degraded {
			fmt.Fprintf(out, "⚠️  slide %d (%s) degraded: %s\n", s.Index+1, s.Layout, s.Error)
		}
	}
	for _, a := range report.Assets {
		if a.State != models.AssetOK {
			fmt.Fprintf(out, "⚠️  asset %s %s: %s\n", a.Key, a.State, a.Error)
		}
	}
	fmt.Fprintf(out, "%d slides, %d degraded, %d assets unavailable\n",
		len(report.Slides), report.DegradedSlides(), report.FailedAssets())
}
