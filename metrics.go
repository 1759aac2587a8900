package folio

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the content pipeline collectors. HTTP metrics are recorded
// separately by the echoprometheus middleware on the same registry.
type Metrics struct {
	// ArticlesLoaded is the number of articles in the most recent index.
	ArticlesLoaded prometheus.Gauge
	// SkippedFiles counts article files rejected by the loader.
	SkippedFiles prometheus.Counter
	// LoadErrors counts loads that failed as a whole.
	LoadErrors prometheus.Counter
	// LoadDuration measures content directory loads in seconds.
	LoadDuration prometheus.Histogram
}

// NewMetrics registers the content collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ArticlesLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "folio",
			Name:      "articles_loaded",
			Help:      "Number of articles in the most recent content index",
		}),
		SkippedFiles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "content_skipped_files_total",
			Help:      "Total number of article files skipped as invalid",
		}),
		LoadErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "content_load_errors_total",
			Help:      "Total number of failed content directory loads",
		}),
		LoadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "folio",
			Name:      "content_load_duration_seconds",
			Help:      "Content directory load duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
}
