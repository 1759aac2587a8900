package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeSite creates a config file pointing at a fresh content directory.
func writeSite(t *testing.T, articles map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	posts := filepath.Join(dir, "posts")
	require.NoError(t, os.MkdirAll(posts, 0o755))
	for name, body := range articles {
		require.NoError(t, os.WriteFile(filepath.Join(posts, name), []byte(body), 0o644))
	}
	cfg := "[site]\nname = \"Test\"\nurl = \"https://example.com\"\n\n[content]\ndir = \"" + filepath.ToSlash(posts) + "\"\n"
	path := filepath.Join(dir, "folio.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

const (
	goodArticle  = "---\ntitle: Good\npublishedDate: 2024-06-01\ntags: [go]\n---\nBody.\n"
	olderArticle = "---\ntitle: Older\npublishedDate: 2024-01-01\n---\nBody.\n"
	badArticle   = "---\ntitle: Bad\npublishedDate: someday\n---\nBody.\n"
)

func TestToTitle(t *testing.T) {
	tests := map[string]string{
		"my-blog":    "My Blog",
		"myblog":     "Myblog",
		"jane_doe":   "Jane Doe",
		"--spaced--": "Spaced",
	}
	for in, want := range tests {
		if got := toTitle(in); got != want {
			t.Errorf("toTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunNewScaffoldsLoadableSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-site")
	var out bytes.Buffer
	require.NoError(t, runNew(&out, dir, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))

	assert.FileExists(t, filepath.Join(dir, "folio.toml"))
	assert.FileExists(t, filepath.Join(dir, ".gitignore"))
	assert.FileExists(t, filepath.Join(dir, "public", ".gitkeep"))
	post, err := os.ReadFile(filepath.Join(dir, "content", "posts", "hello-world.md"))
	require.NoError(t, err)
	assert.Contains(t, string(post), "publishedDate: 2024-06-01")
	assert.Contains(t, string(post), "**My Site**")

	cfg, err := folio.LoadConfig(filepath.Join(dir, "folio.toml"))
	require.NoError(t, err)
	assert.Equal(t, "My Site", cfg.Site.Name)
	assert.Equal(t, "%s | My Site", cfg.Site.TitleTemplate)

	assert.Error(t, runNew(&out, dir, time.Now()), "existing directory must be refused")
}

func TestListCommand(t *testing.T) {
	cfg := writeSite(t, map[string]string{
		"older.md": olderArticle,
		"good.md":  goodArticle,
		"bad.md":   badArticle,
	})

	out, err := execute(t, "list", "--config", cfg)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "good"), strings.Index(out, "older"), "newest first")
	assert.Contains(t, out, "2024-06-01")
	assert.Contains(t, out, "1 invalid file(s) skipped")
	assert.NotContains(t, out, "Bad")

	out, err = execute(t, "list", "--config", cfg, "--tag", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "Good")
	assert.NotContains(t, out, "Older")
}

func TestCheckCommand(t *testing.T) {
	cfg := writeSite(t, map[string]string{"good.md": goodArticle, "bad.md": badArticle})

	out, err := execute(t, "check", "-c", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 invalid article(s)")
	assert.Contains(t, out, "1 article(s) OK")
	assert.Contains(t, out, "bad.md")
	assert.Contains(t, out, "invalid publishedDate")

	cfg = writeSite(t, map[string]string{"good.md": goodArticle})
	out, err = execute(t, "check", "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "1 article(s) OK")
}

func TestCheckReportsAllWithFailFastPolicy(t *testing.T) {
	cfg := writeSite(t, map[string]string{
		"good.md":  goodArticle,
		"bad.md":   badArticle,
		"worse.md": "---\npublishedDate: 2024-01-01\n---\nNo title.\n",
	})
	f, err := os.OpenFile(cfg, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("policy = \"fail\"\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, err := execute(t, "check", "-c", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 invalid article(s)")
	assert.Contains(t, out, "bad.md")
	assert.Contains(t, out, "worse.md")
}

func TestRenderTablePadsRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"one"}, {"x", "y", "dropped"}})
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "y")
	assert.NotContains(t, out, "dropped")
	assert.Empty(t, renderTable(nil, nil))
}

func TestCheckCommandMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "folio.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[content]\ndir = \"nowhere\"\n"), 0o644))

	_, err := execute(t, "check", "-c", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read directory")
}

func TestBuildCommand(t *testing.T) {
	cfg := writeSite(t, map[string]string{"good.md": goodArticle})
	out := filepath.Join(t.TempDir(), "dist")

	stdout, err := execute(t, "build", "-c", cfg, "--out", out, "--log-format", "text", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Built 1 articles")
	assert.FileExists(t, filepath.Join(out, "blog", "good.html"))
}

func TestInvalidConfigFails(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "folio.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[site]\nurl = \"::nope\"\n"), 0o644))

	_, err := execute(t, "list", "-c", cfg)
	assert.Error(t, err)
}

func TestVersionSkipsConfig(t *testing.T) {
	out, err := execute(t, "version", "-c", filepath.Join(t.TempDir(), "broken.toml"))
	require.NoError(t, err)
	assert.Equal(t, "folio dev\n", out)
}
