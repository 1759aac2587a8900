package folio

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/eringen/folio/content"
)

// IndexCache memoizes the content index for a TTL. With a TTL of zero every
// call loads the directory afresh, so edits show up on the next request.
type IndexCache struct {
	mu      sync.RWMutex
	index   *content.Index
	fetched time.Time
	ttl     time.Duration
	loader  *content.Loader
	metrics *Metrics
	logger  *slog.Logger
}

// NewIndexCache creates an IndexCache backed by loader. m may be nil.
func NewIndexCache(loader *content.Loader, ttl time.Duration, m *Metrics, logger *slog.Logger) *IndexCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &IndexCache{loader: loader, ttl: ttl, metrics: m, logger: logger}
}

func (c *IndexCache) valid() bool {
	return c.index != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *IndexCache) Invalidate() {
	c.mu.Lock()
	c.index = nil
	c.mu.Unlock()
}

// Index returns the current content index, loading it when the cached copy
// is missing or stale. It tries a read lock first and only takes the write
// lock when a reload is needed.
func (c *IndexCache) Index(ctx context.Context) (*content.Index, error) {
	if c.ttl <= 0 {
		return c.fetch(ctx)
	}

	c.mu.RLock()
	if c.valid() {
		ix := c.index
		c.mu.RUnlock()
		return ix, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.index, nil
	}
	ix, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.index = ix
	c.fetched = time.Now()
	return ix, nil
}

func (c *IndexCache) fetch(ctx context.Context) (*content.Index, error) {
	start := time.Now()
	res, err := c.loader.Load(ctx)
	if c.metrics != nil {
		c.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.LoadErrors.Inc()
		}
		return nil, err
	}
	ix := content.NewIndex(res.Articles)
	if c.metrics != nil {
		c.metrics.ArticlesLoaded.Set(float64(ix.Len()))
		c.metrics.SkippedFiles.Add(float64(len(res.Skipped)))
	}
	c.logger.Debug("content loaded",
		slog.String("dir", c.loader.Dir()),
		slog.Int("articles", ix.Len()),
		slog.Int("skipped", len(res.Skipped)),
		slog.Duration("took", time.Since(start)),
	)
	return ix, nil
}
