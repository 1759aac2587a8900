package content

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-slug"
)

// ErrorPolicy decides what happens when a single content file is invalid.
type ErrorPolicy int

const (
	// SkipInvalid logs the failure, records it in LoadResult.Skipped and
	// keeps loading the remaining files.
	SkipInvalid ErrorPolicy = iota
	// FailFast aborts the load on the first invalid file.
	FailFast
)

// ParsePolicy maps a config value ("skip" or "fail") to an ErrorPolicy.
func ParsePolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return SkipInvalid, nil
	case "fail", "fail-fast", "strict":
		return FailFast, nil
	default:
		return SkipInvalid, fmt.Errorf("content: unknown error policy %q", s)
	}
}

func (p ErrorPolicy) String() string {
	if p == FailFast {
		return "fail"
	}
	return "skip"
}

// DefaultExtensions lists the file extensions treated as articles.
var DefaultExtensions = []string{".md", ".mdx", ".markdown"}

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// Extensions limits which files are read; defaults to DefaultExtensions.
	Extensions []string
	// Policy controls per-file failure handling; defaults to SkipInvalid.
	Policy ErrorPolicy
	// SummaryLength is the rune budget of summaries derived from the body.
	SummaryLength int
	// Logger receives a warning per skipped file. Defaults to slog.Default().
	Logger *slog.Logger
}

// Loader reads every article in a single directory.
type Loader struct {
	fsys   fs.FS
	dir    string
	exts   map[string]struct{}
	policy ErrorPolicy
	limit  int
	logger *slog.Logger
}

// LoadResult is the outcome of a successful Load.
type LoadResult struct {
	Articles []Article
	Skipped  []*ArticleParseError
}

// NewLoader reads articles from the root of fsys.
func NewLoader(fsys fs.FS, cfg LoaderConfig) *Loader {
	return newLoader(fsys, ".", cfg)
}

// NewDirLoader reads articles from dir on the local filesystem.
func NewDirLoader(dir string, cfg LoaderConfig) *Loader {
	return newLoader(os.DirFS(dir), dir, cfg)
}

func newLoader(fsys fs.FS, label string, cfg LoaderConfig) *Loader {
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	limit := cfg.SummaryLength
	if limit <= 0 {
		limit = DefaultSummaryLength
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fsys:   fsys,
		dir:    label,
		exts:   set,
		policy: cfg.Policy,
		limit:  limit,
		logger: logger,
	}
}

// Dir returns the directory the loader reads from.
func (l *Loader) Dir() string { return l.dir }

// Load parses every article file in the directory. Files are visited in
// name order, so when two files produce the same id the first one wins.
//
// A directory that cannot be read returns *LoadDirectoryError. Invalid files
// are handled per the configured ErrorPolicy.
func (l *Loader) Load(ctx context.Context) (LoadResult, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return LoadResult{}, &LoadDirectoryError{Dir: l.dir, Err: err}
	}

	var res LoadResult
	seen := make(map[string]string)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return LoadResult{}, err
		}
		name := entry.Name()
		if entry.IsDir() || !l.accepts(name) {
			continue
		}

		article, err := l.loadFile(name)
		if err == nil {
			if first, dup := seen[article.ID]; dup {
				err = fmt.Errorf("%w %q (already defined by %s)", ErrDuplicateID, article.ID, first)
			}
		}
		if err != nil {
			perr := &ArticleParseError{File: name, Err: err}
			if l.policy == FailFast {
				return LoadResult{}, perr
			}
			l.logger.Warn("skipping invalid article", "dir", l.dir, "file", name, "reason", err.Error())
			res.Skipped = append(res.Skipped, perr)
			continue
		}
		seen[article.ID] = name
		res.Articles = append(res.Articles, article)
	}
	return res, nil
}

func (l *Loader) accepts(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return false
	}
	_, ok := l.exts[strings.ToLower(path.Ext(name))]
	return ok
}

func (l *Loader) loadFile(name string) (Article, error) {
	f, err := l.fsys.Open(name)
	if err != nil {
		return Article{}, err
	}
	defer f.Close()
	src, err := io.ReadAll(f)
	if err != nil {
		return Article{}, err
	}
	return ParseArticle(name, src, l.limit)
}

// ParseArticle builds an Article from the source of file name. The id is the
// file's base name without extension, normalized to a slug.
func ParseArticle(name string, src []byte, summaryLength int) (Article, error) {
	id, err := articleID(name)
	if err != nil {
		return Article{}, err
	}

	h, body, err := parseHeader(src)
	if err != nil {
		return Article{}, err
	}
	if err := h.Validate(); err != nil {
		return Article{}, err
	}
	published, err := parseDate(h.PublishedDate)
	if err != nil {
		return Article{}, err
	}

	summary := h.Summary
	if summary == "" {
		summary = BodyExcerpt(body, summaryLength)
	}

	return Article{
		ID:            id,
		Title:         h.Title,
		PublishedDate: published,
		Summary:       summary,
		Tags:          h.Tags,
		Image:         h.Image,
		Body:          body,
		SourcePath:    name,
	}, nil
}

func articleID(name string) (string, error) {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	id, err := slug.Normalize(base)
	if err != nil {
		return "", fmt.Errorf("%w from %q: %v", ErrInvalidID, base, err)
	}
	if id == "" {
		return "", fmt.Errorf("%w from %q", ErrInvalidID, base)
	}
	if id == SiteCardID {
		return "", fmt.Errorf("%w: %q is reserved", ErrInvalidID, id)
	}
	return id, nil
}
