package config

import (
	"net"
	"strconv"
	"time"

	"deckforge/layout"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Log          LogConfig          `yaml:"log"`
	Render       RenderConfig       `yaml:"render"`
	Assets       AssetsConfig       `yaml:"assets"`
	Illustration IllustrationConfig `yaml:"illustration"`
	Chrome       ChromeConfig       `yaml:"chrome"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"20971520"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL disables storage.
type DatabaseConfig struct {
	URL      string `yaml:"url"       env:"DATABASE_URL"`
	MaxConns int32  `yaml:"max_conns" env:"DATABASE_MAX_CONNS" env-default:"10"`
	MinConns int32  `yaml:"min_conns" env:"DATABASE_MIN_CONNS" env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY" env-default:"false"`
}

// RenderConfig holds layout and page furniture settings.
type RenderConfig struct {
	CanvasWidth       float64 `yaml:"canvas_width"        env:"RENDER_CANVAS_WIDTH"        env-default:"960"`
	CanvasHeight      float64 `yaml:"canvas_height"       env:"RENDER_CANVAS_HEIGHT"       env-default:"540"`
	MinGridColumns    int     `yaml:"min_grid_columns"    env:"RENDER_MIN_GRID_COLUMNS"    env-default:"2"`
	MaxGridColumns    int     `yaml:"max_grid_columns"    env:"RENDER_MAX_GRID_COLUMNS"    env-default:"4"`
	AgendaThreshold   int     `yaml:"agenda_threshold"    env:"RENDER_AGENDA_THRESHOLD"    env-default:"2"`
	AgendaColumnSplit int     `yaml:"agenda_column_split" env:"RENDER_AGENDA_COLUMN_SPLIT" env-default:"6"`
	ConfidentialLabel string  `yaml:"confidential_label"  env:"RENDER_CONFIDENTIAL_LABEL"  env-default:"CONFIDENTIAL"`
	DateFormat        string  `yaml:"date_format"         env:"RENDER_DATE_FORMAT"         env-default:"Jan 2, 2006"`
	ClosingTitle      string  `yaml:"closing_title"       env:"RENDER_CLOSING_TITLE"       env-default:"Thank You"`
	ClosingSubtitle   string  `yaml:"closing_subtitle"    env:"RENDER_CLOSING_SUBTITLE"    env-default:"Q & A"`
	DefaultTheme      string  `yaml:"default_theme"       env:"RENDER_DEFAULT_THEME"       env-default:"premium"`
	ThemesDir         string  `yaml:"themes_dir"          env:"RENDER_THEMES_DIR"`
}

// AssetsConfig holds asset resolution settings.
type AssetsConfig struct {
	Concurrency       int           `yaml:"concurrency"        env:"ASSETS_CONCURRENCY"        env-default:"4"`
	WhiteThreshold    int           `yaml:"white_threshold"    env:"ASSETS_WHITE_THRESHOLD"    env-default:"230"`
	MaxDimension      int           `yaml:"max_dimension"      env:"ASSETS_MAX_DIMENSION"      env-default:"1600"`
	JPEGQuality       int           `yaml:"jpeg_quality"       env:"ASSETS_JPEG_QUALITY"       env-default:"85"`
	CacheDir          string        `yaml:"cache_dir"          env:"ASSETS_CACHE_DIR"          env-default:"cache/images"`
	BackgroundBase    string        `yaml:"background_base"    env:"ASSETS_BACKGROUND_BASE"    env-default:"static"`
	StockVariants     int           `yaml:"stock_variants"     env:"ASSETS_STOCK_VARIANTS"     env-default:"5"`
	FetchTimeout      time.Duration `yaml:"fetch_timeout"      env:"ASSETS_FETCH_TIMEOUT"      env-default:"20s"`
	MaxFetchBytes     int64         `yaml:"max_fetch_bytes"    env:"ASSETS_MAX_FETCH_BYTES"    env-default:"15728640"`
	Offline           bool          `yaml:"offline"            env:"ASSETS_OFFLINE"            env-default:"false"`
	GoogleCredentials string        `yaml:"google_credentials" env:"GOOGLE_APPLICATION_CREDENTIALS"`
}

// IllustrationConfig holds the illustration provider settings.
type IllustrationConfig struct {
	BaseURL     string `yaml:"base_url"      env:"ILLUSTRATION_BASE_URL"      env-default:"https://image.pollinations.ai/prompt/"`
	StyleSuffix string `yaml:"style_suffix"  env:"ILLUSTRATION_STYLE_SUFFIX"  env-default:", minimalistic vector art, corporate memphis style, trending on dribbble, white background"`
	Width       int    `yaml:"width"         env:"ILLUSTRATION_WIDTH"         env-default:"800"`
	Height      int    `yaml:"height"        env:"ILLUSTRATION_HEIGHT"        env-default:"600"`
	SlideSuffix string `yaml:"slide_suffix"  env:"ILLUSTRATION_SLIDE_SUFFIX"  env-default:", high quality, 8k"`
	SlideSize   int    `yaml:"slide_size"    env:"ILLUSTRATION_SLIDE_SIZE"    env-default:"1024"`
	StockSuffix string `yaml:"stock_suffix"  env:"ILLUSTRATION_STOCK_SUFFIX"  env-default:", high quality, 8k, wallpaper, no text"`
	StockWidth  int    `yaml:"stock_width"   env:"ILLUSTRATION_STOCK_WIDTH"   env-default:"1920"`
	StockHeight int    `yaml:"stock_height"  env:"ILLUSTRATION_STOCK_HEIGHT"  env-default:"1080"`
}

// ChromeConfig holds the headless browser settings used for PDF output.
type ChromeConfig struct {
	ExecPath     string        `yaml:"exec_path"     env:"CHROME_PATH"`
	NoSandbox    bool          `yaml:"no_sandbox"    env:"CHROME_NO_SANDBOX"    env-default:"true"`
	PrintTimeout time.Duration `yaml:"print_timeout" env:"CHROME_PRINT_TIMEOUT" env-default:"90s"`
}

// Addr returns the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LayoutOptions maps the render settings onto the planner options.
func (r RenderConfig) LayoutOptions(stockVariants int) layout.Options {
	return layout.Options{
		CanvasWidth:       r.CanvasWidth,
		CanvasHeight:      r.CanvasHeight,
		MinGridColumns:    r.MinGridColumns,
		MaxGridColumns:    r.MaxGridColumns,
		AgendaThreshold:   r.AgendaThreshold,
		AgendaColumnSplit: r.AgendaColumnSplit,
		ConfidentialLabel: r.ConfidentialLabel,
		DateFormat:        r.DateFormat,
		ClosingTitle:      r.ClosingTitle,
		ClosingSubtitle:   r.ClosingSubtitle,
		StockVariants:     stockVariants,
	}
}
