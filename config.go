package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pelletier/go-toml/v2"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// DefaultConfigFile is read when no --config flag is given.
const DefaultConfigFile = "folio.toml"

// Config holds all configuration for a folio site, decoded from folio.toml.
type Config struct {
	Site    SiteConfig    `toml:"site"`
	Content ContentConfig `toml:"content"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// SiteConfig is the [site] section: identity, metadata and navigation.
type SiteConfig struct {
	Name          string      `toml:"name"`
	URL           string      `toml:"url"`
	Description   string      `toml:"description"`
	Author        string      `toml:"author"`
	TitleTemplate string      `toml:"title_template"`
	Locale        string      `toml:"locale"`
	Lang          string      `toml:"lang"`
	Intro         []string    `toml:"intro"`
	Nav           []NavConfig `toml:"nav"`
}

// NavConfig is one navigation link.
type NavConfig struct {
	Href  string `toml:"href"`
	Label string `toml:"label"`
}

// ContentConfig is the [content] section controlling the article loader.
type ContentConfig struct {
	Dir           string   `toml:"dir"`
	Extensions    []string `toml:"extensions"`
	Policy        string   `toml:"policy"` // "skip" or "fail"
	SummaryLength int      `toml:"summary_length"`
	CacheTTL      Duration `toml:"cache_ttl"` // 0 reloads on every request
	HomeLimit     int      `toml:"home_limit"`
}

// ServerConfig is the [server] section.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	StaticDir       string   `toml:"static_dir"`
	RateLimit       float64  `toml:"rate_limit"` // requests per second per IP, 0 disables
	RateBurst       int      `toml:"rate_burst"`
	Metrics         bool     `toml:"metrics"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// LoggingConfig is the [logging] section.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // auto, text or json
}

// Duration decodes TOML strings such as "5m" into a time.Duration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the configuration used when folio.toml is absent.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Name:          "Blog",
			URL:           "http://localhost:3000",
			TitleTemplate: "%s | Blog",
			Locale:        "en_US",
			Lang:          "en",
		},
		Content: ContentConfig{
			Dir:           "content/posts",
			Policy:        "skip",
			SummaryLength: content.DefaultSummaryLength,
		},
		Server: ServerConfig{
			Addr:            ":3000",
			StaticDir:       "public",
			RateLimit:       20,
			RateBurst:       40,
			Metrics:         true,
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// LoadConfig reads path over DefaultConfig, applies FOLIO_* environment
// overrides and validates the result. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("folio: read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("folio: parse %s: %w", path, err)
		}
	}
	cfg.setDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("folio: invalid config: %w", err)
	}
	return cfg, nil
}

// setDefaults fills list settings left empty, after decoding, so a
// configured list replaces the default instead of extending it.
func (c *Config) setDefaults() {
	if len(c.Site.Nav) == 0 {
		c.Site.Nav = []NavConfig{
			{Href: "/", Label: "home"},
			{Href: "/blog", Label: "blog"},
		}
	}
	if len(c.Content.Extensions) == 0 {
		c.Content.Extensions = content.DefaultExtensions
	}
}

func (c *Config) applyEnv() {
	c.Site.URL = EnvOr("FOLIO_SITE_URL", c.Site.URL)
	c.Server.Addr = EnvOr("FOLIO_ADDR", c.Server.Addr)
	c.Content.Dir = EnvOr("FOLIO_CONTENT_DIR", c.Content.Dir)
	c.Logging.Level = EnvOr("FOLIO_LOG_LEVEL", c.Logging.Level)
}

// Validate checks every section and reports the failing keys.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Site),
		validation.Field(&c.Content),
		validation.Field(&c.Server),
		validation.Field(&c.Logging),
	)
}

func (s SiteConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.URL, validation.Required, is.URL),
	)
}

func (c ContentConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Policy, validation.By(func(any) error {
			_, err := content.ParsePolicy(c.Policy)
			return err
		})),
		validation.Field(&c.SummaryLength, validation.Min(0)),
		validation.Field(&c.HomeLimit, validation.Min(0)),
	)
}

func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required),
		validation.Field(&s.RateLimit, validation.Min(0.0)),
		validation.Field(&s.RateBurst, validation.Min(0)),
	)
}

func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.In("auto", "text", "json")),
	)
}

// LoaderConfig returns the content loader settings for this site.
func (c Config) LoaderConfig(logger *slog.Logger) (content.LoaderConfig, error) {
	policy, err := content.ParsePolicy(c.Content.Policy)
	if err != nil {
		return content.LoaderConfig{}, err
	}
	return content.LoaderConfig{
		Extensions:    c.Content.Extensions,
		Policy:        policy,
		SummaryLength: c.Content.SummaryLength,
		Logger:        logger,
	}, nil
}

// View converts the [site] section into the model every page receives.
func (s SiteConfig) View() views.Site {
	nav := make([]views.NavLink, 0, len(s.Nav))
	for _, n := range s.Nav {
		nav = append(nav, views.NavLink{Href: n.Href, Label: n.Label})
	}
	return views.Site{
		Name:          s.Name,
		URL:           s.URL,
		Description:   s.Description,
		Author:        s.Author,
		TitleTemplate: s.TitleTemplate,
		Locale:        s.Locale,
		Lang:          s.Lang,
		Intro:         FilterEmpty(s.Intro),
		Nav:           nav,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir overrides the directory served under /public.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithViews replaces the default page components. Nil fields keep the default.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithLogger replaces the logger built from the [logging] section.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithContentFS reads articles from fsys instead of Content.Dir.
func WithContentFS(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}

// WithClock sets the time source used for the home page greeting.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
