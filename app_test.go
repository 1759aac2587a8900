package folio

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const (
	helloWorld = "---\ntitle: Hello World\npublishedDate: 2024-06-01\nsummary: A first post.\ntags: [go, web]\n---\n\n# Hello\n\nWelcome to **folio**.\n"
	olderPost  = "---\ntitle: Older Post\npublishedDate: 2024-01-01\ntags: [go]\n---\n\nAn older article body.\n"
	brokenPost = "---\npublishedDate: 2024-03-01\n---\n\nNo title here.\n"
)

func testContent() fstest.MapFS {
	return fstest.MapFS{
		"hello-world.md": {Data: []byte(helloWorld)},
		"older-post.md":  {Data: []byte(olderPost)},
		"broken.md":      {Data: []byte(brokenPost)},
	}
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Site.Name = "Jane Doe"
	cfg.Site.URL = "https://example.com"
	cfg.Site.Description = "Notes on software."
	cfg.Site.TitleTemplate = "%s | Jane Doe"
	cfg.Site.Intro = []string{"I build things."}
	cfg.Server.RateLimit = 0
	cfg.Server.StaticDir = t.TempDir()
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func morning() time.Time {
	return time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
}

func newTestApp(t *testing.T, cfg Config, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger()), WithClock(morning)}, opts...)
	app, err := New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func get(t *testing.T, app *App, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func parseHTML(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}
