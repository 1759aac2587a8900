package folio

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWritesSite(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Server.StaticDir, "avatar.txt"), []byte("me"), 0o644))
	app := newTestApp(t, cfg, WithContentFS(testContent()))
	out := t.TempDir()

	res, err := app.Build(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Articles)

	for _, name := range []string{
		"index.html",
		"blog.html",
		"404.html",
		"blog/hello-world.html",
		"blog/older-post.html",
		"feed.xml",
		"sitemap.xml",
		"robots.txt",
		"static/style.css",
		"public/avatar.txt",
		"og/site.png",
		"og/hello-world.png",
		"og/older-post.png",
	} {
		assert.FileExists(t, filepath.Join(out, name))
	}
	assert.Equal(t, 13, res.Files)
	assert.NoFileExists(t, filepath.Join(out, "blog/broken.html"))
	assert.NoFileExists(t, filepath.Join(out, buildLockFile))

	page, err := os.ReadFile(filepath.Join(out, "blog/hello-world.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>Hello World | Jane Doe</title>")

	f, err := os.Open(filepath.Join(out, "og/hello-world.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
}

func TestBuildIsRepeatable(t *testing.T) {
	app := newTestApp(t, testConfig(t), WithContentFS(testContent()))
	out := t.TempDir()

	_, err := app.Build(context.Background(), out)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(out, "sitemap.xml"))
	require.NoError(t, err)

	_, err = app.Build(context.Background(), out)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(out, "sitemap.xml"))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestBuildCopiesUserRobots(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Server.StaticDir, "robots.txt"), []byte("User-agent: *\nDisallow: /\n"), 0o644))
	app := newTestApp(t, cfg, WithContentFS(testContent()))
	out := t.TempDir()

	_, err := app.Build(context.Background(), out)
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(out, "robots.txt"))
	require.NoError(t, err)
	assert.Equal(t, "User-agent: *\nDisallow: /\n", string(got))
}

func TestBuildRefusesLockedDir(t *testing.T) {
	app := newTestApp(t, testConfig(t), WithContentFS(testContent()))
	out := t.TempDir()

	held := flock.New(filepath.Join(out, buildLockFile))
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer held.Unlock()

	_, err = app.Build(context.Background(), out)
	assert.ErrorIs(t, err, ErrBuildLocked)
}

func TestBuildFailsOnMissingContent(t *testing.T) {
	cfg := testConfig(t)
	cfg.Content.Dir = filepath.Join(t.TempDir(), "missing")
	app := newTestApp(t, cfg)

	_, err := app.Build(context.Background(), t.TempDir())
	require.Error(t, err)
}

func TestPagePath(t *testing.T) {
	tests := map[string]string{
		"/":            "index.html",
		"/blog":        "blog.html",
		"/blog/hello":  "blog/hello.html",
		"blog/hello/":  "blog/hello.html",
		"/../etc/pass": "etc/pass.html",
	}
	for in, want := range tests {
		if got := pagePath(in); got != want {
			t.Errorf("pagePath(%q) = %q, want %q", in, got, want)
		}
	}
}
