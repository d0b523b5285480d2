package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"deckforge/app/controller"
	"deckforge/app/router"
	"deckforge/config"
	"deckforge/db"
	"deckforge/logger"
	"deckforge/renderer/pdf"
	"deckforge/renderer/pptx"
	"deckforge/repository"
	"deckforge/service"
	"deckforge/theme"
)

// Application is written into the docProps of every package
const Application = "deckforge"

// Options tunes Initialize for the command being run
type Options struct {
	// Offline refuses every network fetch
	Offline bool
	// Storage connects to PostgreSQL when a database URL is configured
	Storage bool
}

// App holds the wired services of the process
type App struct {
	Config        *config.Config
	Log           *logger.Logger
	Themes        *theme.Registry
	Exporter      *service.ExportService
	PDF           *pdf.Renderer
	Illustrations *service.IllustrationService
	Stock         *service.StockService
	Decks         repository.DeckRepositoryInterface
	Records       repository.ExportRepositoryInterface

	pool *pgxpool.Pool
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config, log *logger.Logger, opts Options) (*App, error) {
	themes := theme.Default()
	if cfg.Render.ThemesDir != "" {
		n, err := themes.LoadDir(cfg.Render.ThemesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load themes: %w", err)
		}
		log.Infof("🎨 Loaded %d custom themes from %s", n, cfg.Render.ThemesDir)
	}

	// a local background base becomes the root of the file fetcher
	backgroundBase, assetDir := cfg.Assets.BackgroundBase, ""
	if !service.IsRemote(backgroundBase) {
		backgroundBase, assetDir = "", cfg.Assets.BackgroundBase
	}

	fetcher := &service.RoutingFetcher{
		HTTP:    service.NewHTTPFetcher(cfg.Assets.FetchTimeout, cfg.Assets.MaxFetchBytes),
		Files:   service.NewFileFetcher(assetDir),
		Offline: opts.Offline || cfg.Assets.Offline,
	}

	var drive service.DriveServiceInterface
	if cfg.Assets.GoogleCredentials != "" && !fetcher.Offline {
		ds, err := service.NewDriveService(ctx, cfg.Assets.GoogleCredentials)
		if err != nil {
			return nil, err
		}
		drive = ds
		fetcher.Drive = service.NewDriveFetcher(ds)
	} else {
		log.Debug("Google credentials not set, drive:// references are disabled")
	}

	cache := service.NewImageCache(cfg.Assets.CacheDir)
	if err := cache.EnsureDir(); err != nil {
		return nil, fmt.Errorf("failed to prepare image cache: %w", err)
	}

	illustrations := service.NewIllustrationService(
		service.PollinationsProvider{BaseURL: cfg.Illustration.BaseURL},
		fetcher,
		service.IllustrationConfig{
			StyleSuffix: cfg.Illustration.StyleSuffix,
			Width:       cfg.Illustration.Width,
			Height:      cfg.Illustration.Height,
			SlideSuffix: cfg.Illustration.SlideSuffix,
			SlideSize:   cfg.Illustration.SlideSize,
			StockSuffix: cfg.Illustration.StockSuffix,
			StockWidth:  cfg.Illustration.StockWidth,
			StockHeight: cfg.Illustration.StockHeight,
		},
	)

	resolver := service.NewAssetResolver(fetcher, illustrations, cache, service.AssetResolverConfig{
		Concurrency:    cfg.Assets.Concurrency,
		WhiteThreshold: uint8(cfg.Assets.WhiteThreshold),
		MaxDimension:   cfg.Assets.MaxDimension,
		JPEGQuality:    cfg.Assets.JPEGQuality,
		BackgroundBase: backgroundBase,
	}, log.With("component", "assets"))

	printer := pdf.NewChromePrinter(pdf.DetectChromePath(cfg.Chrome.ExecPath), cfg.Chrome.NoSandbox, cfg.Chrome.PrintTimeout)
	pdfRenderer := pdf.NewRenderer(printer)

	a := &App{
		Config:        cfg,
		Log:           log,
		Themes:        themes,
		PDF:           pdfRenderer,
		Illustrations: illustrations,
		Stock:         service.NewStockService(illustrations, fetcher, drive, cfg.Assets.MaxDimension, cfg.Assets.JPEGQuality, log.With("component", "stock")),
		Exporter: service.NewExportService(
			themes,
			resolver,
			cfg.Render.LayoutOptions(cfg.Assets.StockVariants),
			log.With("component", "export"),
			pptx.NewRenderer(Application),
			pdfRenderer,
			pdf.NewHTMLRenderer(),
		),
	}

	if opts.Storage {
		if err := a.connect(ctx); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *App) connect(ctx context.Context) error {
	connStr := db.ConnString(a.Config.Database.URL)
	if connStr == "" {
		a.Log.Warn("⚠️  No database configured, deck storage routes are disabled")
		return nil
	}

	pool, err := db.InitDB(ctx, connStr, a.Config.Database.MaxConns, a.Config.Database.MinConns, a.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.EnsureSchema(ctx, pool); err != nil {
		db.CloseDB(pool)
		return err
	}

	a.pool = pool
	a.Decks = repository.NewDeckRepository(pool)
	a.Records = repository.NewExportRepository(pool)
	return nil
}

// Handler builds the HTTP handler serving every route
func (a *App) Handler() http.Handler {
	controllers := &router.Controllers{
		Theme:        controller.NewThemeController(a.Themes, a.Log),
		Deck:         controller.NewDeckController(a.Decks, a.Records, a.Exporter, a.Log),
		Export:       controller.NewExportController(a.Exporter, a.PDF, a.Log),
		Illustration: controller.NewIllustrationController(a.Illustrations, a.Log),
	}
	return router.New(controllers, a.Log, a.Config.Server.MaxBodyBytes)
}

// Close releases the database pool
func (a *App) Close() {
	if a.pool != nil {
		db.CloseDB(a.pool)
		a.pool = nil
	}
}
