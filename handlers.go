package folio

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

func (a *App) handleHome(c echo.Context) error {
	ix, err := a.Cache.Index(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(a.homePage(ix)))
}

func (a *App) handleBlog(c echo.Context) error {
	ix, err := a.Cache.Index(c.Request().Context())
	if err != nil {
		return err
	}
	tag := strings.ToLower(strings.TrimSpace(c.QueryParam("tag")))
	return Render(c, a.Views.Blog(a.blogPage(ix, tag)))
}

func (a *App) handleArticle(c echo.Context) error {
	ix, err := a.Cache.Index(c.Request().Context())
	if err != nil {
		return err
	}
	art, err := ix.Get(c.Param("id"))
	if err != nil {
		return err
	}
	page, err := a.articlePage(ix, art)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Article(page))
}

func (a *App) handleSitemap(c echo.Context) error {
	ix, err := a.Cache.Index(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeSitemap(c.Response(), a.Config.Site.URL, ix.List())
}

func (a *App) handleFeed(c echo.Context) error {
	ix, err := a.Cache.Index(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeRSS(c.Response(), a.Config.Site, ix.List())
}

// handleRobots serves public/robots.txt when present and a generated one
// otherwise.
func (a *App) handleRobots(c echo.Context) error {
	if p, ok := a.staticFile("robots.txt"); ok {
		return c.File(p)
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return writeRobots(c.Response(), a.Config.Site.URL)
}

// handleOG serves /og/site.png and /og/{id}.png.
func (a *App) handleOG(c echo.Context) error {
	id, ok := strings.CutSuffix(c.Param("name"), ".png")
	if !ok || id == "" {
		return echo.ErrNotFound
	}
	card := siteCard(a.Config.Site)
	if id != content.SiteCardID {
		ix, err := a.Cache.Index(c.Request().Context())
		if err != nil {
			return err
		}
		art, err := ix.Get(id)
		if err != nil {
			return err
		}
		card = articleCard(a.Config.Site, art)
	}
	c.Response().Header().Set(echo.HeaderContentType, "image/png")
	c.Response().WriteHeader(http.StatusOK)
	return writeCard(c.Response(), card)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	switch {
	case errors.Is(err, content.ErrNotFound):
		code = http.StatusNotFound
	case errors.As(err, &he):
		code = he.Code
	}

	// Error pages must not outlive the failure in a shared cache.
	c.Response().Header().Set("Cache-Control", "no-store")

	path := c.Request().URL.Path
	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, a.Views.NotFound(a.statusPage(code, path)))
	case code >= 500:
		a.logger.Error("server error", slog.String("path", path), slog.Any("err", err))
		_ = RenderStatus(c, code, a.Views.ServerError(a.statusPage(code, path)))
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}
