package folio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/folio/content"
)

// ErrBuildLocked is returned when another build holds the output directory.
var ErrBuildLocked = errors.New("folio: output directory is locked by another build")

const buildLockFile = ".folio.lock"

// BuildResult summarizes a static export.
type BuildResult struct {
	Dir      string
	Files    int
	Articles int
}

type buildTask struct {
	path  string // relative to the output directory
	write func(io.Writer) error
}

// Build exports every page, the feed, sitemap, robots.txt, stylesheet, Open
// Graph cards and the user's static directory into outDir. Files are written
// concurrently. A lock file in outDir keeps two builds from interleaving.
func (a *App) Build(ctx context.Context, outDir string) (BuildResult, error) {
	res := BuildResult{Dir: outDir}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return res, fmt.Errorf("folio: create output dir: %w", err)
	}

	lock := flock.New(filepath.Join(outDir, buildLockFile))
	ok, err := lock.TryLock()
	if err != nil {
		return res, fmt.Errorf("folio: acquire build lock: %w", err)
	}
	if !ok {
		return res, ErrBuildLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			a.logger.Warn("failed to release build lock", slog.Any("err", err))
		}
		_ = os.Remove(lock.Path())
	}()

	ix, err := a.Cache.Index(ctx)
	if err != nil {
		return res, err
	}
	tasks, err := a.buildTasks(ctx, ix)
	if err != nil {
		return res, err
	}
	assets, err := a.assetTasks()
	if err != nil {
		return res, err
	}
	tasks = append(tasks, assets...)

	var written atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, t := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := writeOutput(filepath.Join(outDir, filepath.FromSlash(t.path)), t.write); err != nil {
				return fmt.Errorf("folio: write %s: %w", t.path, err)
			}
			written.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	res.Files = int(written.Load())
	res.Articles = ix.Len()
	a.logger.Info("site built",
		slog.String("dir", outDir),
		slog.Int("files", res.Files),
		slog.Int("articles", res.Articles),
	)
	return res, nil
}

func (a *App) buildTasks(ctx context.Context, ix *content.Index) ([]buildTask, error) {
	site := a.Config.Site
	list := ix.List()

	tasks := []buildTask{
		{"index.html", func(w io.Writer) error { return a.Views.Home(a.homePage(ix)).Render(ctx, w) }},
		{"blog.html", func(w io.Writer) error { return a.Views.Blog(a.blogPage(ix, "")).Render(ctx, w) }},
		{"404.html", func(w io.Writer) error {
			return a.Views.NotFound(a.statusPage(http.StatusNotFound, "/404")).Render(ctx, w)
		}},
		{"feed.xml", func(w io.Writer) error { return writeRSS(w, site, list) }},
		{"sitemap.xml", func(w io.Writer) error { return writeSitemap(w, site.URL, list) }},
		{"og/" + content.SiteCardID + ".png", func(w io.Writer) error { return writeCard(w, siteCard(site)) }},
	}
	if _, ok := a.staticFile("robots.txt"); !ok {
		tasks = append(tasks, buildTask{"robots.txt", func(w io.Writer) error { return writeRobots(w, site.URL) }})
	}

	for _, art := range ix.Articles() {
		page, err := a.articlePage(ix, art)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks,
			buildTask{pagePath(art.Link()), func(w io.Writer) error { return a.Views.Article(page).Render(ctx, w) }},
			buildTask{"og/" + art.ID + ".png", func(w io.Writer) error { return writeCard(w, articleCard(site, art)) }},
		)
	}
	return tasks, nil
}

// assetTasks copies the embedded stylesheet to static/ and the user's
// static directory to public/, mirroring the server routes.
func (a *App) assetTasks() ([]buildTask, error) {
	tasks, err := copyTasks(StaticAssets, "static")
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(a.staticDir)
	if err != nil || !info.IsDir() {
		return tasks, nil
	}
	public, err := copyTasks(os.DirFS(a.staticDir), "public")
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, public...)
	if _, ok := a.staticFile("robots.txt"); ok {
		tasks = append(tasks, buildTask{"robots.txt", copyFrom(os.DirFS(a.staticDir), "robots.txt")})
	}
	return tasks, nil
}

func copyTasks(fsys fs.FS, prefix string) ([]buildTask, error) {
	var tasks []buildTask
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		tasks = append(tasks, buildTask{prefix + "/" + p, copyFrom(fsys, p)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("folio: walk %s: %w", prefix, err)
	}
	return tasks, nil
}

func copyFrom(fsys fs.FS, name string) func(io.Writer) error {
	return func(w io.Writer) error {
		f, err := fsys.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	}
}

// writeOutput writes to a temporary file next to path and renames it into
// place, so readers never see a partial page.
func writeOutput(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
