// Package folio serves a personal portfolio and blog from a directory of
// Markdown articles. It loads and indexes the articles on demand, renders
// the home, blog and article pages, and publishes a feed, sitemap and Open
// Graph cards. The same pages can be exported as a static site with Build.
//
// Pages are rendered through ViewFuncs, so users can replace any of the
// default html/template views with their own templ components.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// ViewFuncs holds the components the app calls when rendering pages. This
// is the inversion-of-control point that lets users own the templates.
type ViewFuncs struct {
	Home        func(views.HomePage) templ.Component
	Blog        func(views.BlogPage) templ.Component
	Article     func(views.ArticlePage) templ.Component
	NotFound    func(views.StatusPage) templ.Component
	ServerError func(views.StatusPage) templ.Component
}

// DefaultViews returns the embedded html/template views.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Blog:        views.Blog,
		Article:     views.Article,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

func (v *ViewFuncs) setDefaults() {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.Blog == nil {
		v.Blog = d.Blog
	}
	if v.Article == nil {
		v.Article = d.Article
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
}

// App is the central folio application. It wires together the content
// cache, handlers, middleware and views.
type App struct {
	Config  Config
	Echo    *echo.Echo
	Cache   *IndexCache
	Views   ViewFuncs
	Metrics *Metrics

	logger       *slog.Logger
	registry     *prometheus.Registry
	limiter      *RateLimiter
	contentFS    fs.FS
	customRoutes []func(*App)
	staticDir    string
	now          func() time.Time
}

// New creates an App with routes and middleware registered. The server is
// not started until Start is called.
func New(cfg Config, opts ...Option) (*App, error) {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		registry:  prometheus.NewRegistry(),
		staticDir: cfg.Server.StaticDir,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	a.Views.setDefaults()

	loaderCfg, err := cfg.LoaderConfig(a.logger)
	if err != nil {
		return nil, fmt.Errorf("folio: %w", err)
	}
	var loader *content.Loader
	if a.contentFS != nil {
		loader = content.NewLoader(a.contentFS, loaderCfg)
	} else {
		loader = content.NewDirLoader(cfg.Content.Dir, loaderCfg)
	}

	a.Metrics = NewMetrics(a.registry)
	a.Cache = NewIndexCache(loader, cfg.Content.CacheTTL.Duration, a.Metrics, a.logger)
	if cfg.Server.RateLimit > 0 {
		a.limiter = NewRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst, 10*time.Minute)
	}

	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

// Logger returns the app's structured logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Start serves HTTP on Config.Server.Addr until ctx is cancelled, then shuts
// down gracefully within Config.Server.ShutdownTimeout.
func (a *App) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		a.logger.Info("listening", slog.String("addr", a.Config.Server.Addr), slog.String("url", a.Config.Site.URL))
		errc <- a.Echo.Start(a.Config.Server.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := a.Config.Server.ShutdownTimeout.Duration
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	a.logger.Info("shutting down")
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("folio: shutdown: %w", err)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.StaticFS("/static", StaticAssets)
	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/og/:name", a.handleOG)

	e.GET("/", a.handleHome)
	e.GET("/blog", a.handleBlog)
	e.GET("/blog/:id", a.handleArticle)

	if a.Config.Server.Metrics {
		e.GET("/metrics", a.metricsHandler())
	}
}

// Close stops background work. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Close()
	}
	return nil
}

// staticFile reports whether name exists in the user's static directory.
func (a *App) staticFile(name string) (string, bool) {
	p := a.staticDir + "/" + name
	info, err := os.Stat(p)
	return p, err == nil && !info.IsDir()
}
