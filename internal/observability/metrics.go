package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// newsroom pipeline.
type Metrics struct {
	ArticlesGenerated prometheus.Counter
	GenerationErrors  prometheus.Counter
	ArticlesPruned    prometheus.Counter
	NewsroomRunning   prometheus.Gauge

	// Batch metrics.
	BatchDuration prometheus.Histogram

	// LLM metrics.
	LLMRequests    *prometheus.CounterVec // labels: outcome={success,error,parse_error}
	LLMAPIDuration prometheus.Histogram
	LLMEnabled     prometheus.Gauge

	// Syndication metrics.
	ArticlesSyndicated prometheus.Counter
	SyndicationErrors  prometheus.Counter
}

// NewMetrics creates and registers all newsroom metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ArticlesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gazette",
			Name:      "articles_generated_total",
			Help:      "Total articles generated and persisted.",
		}),
		GenerationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gazette",
			Name:      "generation_errors_total",
			Help:      "Total article generation failures.",
		}),
		ArticlesPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gazette",
			Name:      "articles_pruned_total",
			Help:      "Total articles dropped by the post-batch prune.",
		}),
		NewsroomRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gazette",
			Name:      "newsroom_running",
			Help:      "1 when the newsroom is active, 0 when shut down.",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gazette",
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete article generation batch.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}),
		LLMRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gazette",
			Name:      "llm_requests_total",
			Help:      "LLM completion requests by outcome.",
		}, []string{"outcome"}),
		LLMAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gazette",
			Name:      "llm_api_duration_seconds",
			Help:      "LLM completion request duration in seconds.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		LLMEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gazette",
			Name:      "llm_enabled",
			Help:      "1 when articles are written by the model, 0 when placeholders are used.",
		}),
		ArticlesSyndicated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gazette",
			Name:      "articles_syndicated_total",
			Help:      "Total articles published to the syndication topic.",
		}),
		SyndicationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gazette",
			Name:      "syndication_errors_total",
			Help:      "Total syndication publish failures.",
		}),
	}

	prometheus.MustRegister(
		m.ArticlesGenerated,
		m.GenerationErrors,
		m.ArticlesPruned,
		m.NewsroomRunning,
		m.BatchDuration,
		m.LLMRequests,
		m.LLMAPIDuration,
		m.LLMEnabled,
		m.ArticlesSyndicated,
		m.SyndicationErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ArticlesGenerated:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "gazette", Name: "articles_generated_total"}),
		GenerationErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "gazette", Name: "generation_errors_total"}),
		ArticlesPruned:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "gazette", Name: "articles_pruned_total"}),
		NewsroomRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "gazette", Name: "newsroom_running"}),
		BatchDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "gazette", Name: "batch_duration_seconds"}),
		LLMRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "gazette", Name: "llm_requests_total"}, []string{"outcome"}),
		LLMAPIDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "gazette", Name: "llm_api_duration_seconds"}),
		LLMEnabled:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "gazette", Name: "llm_enabled"}),
		ArticlesSyndicated: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "gazette", Name: "articles_syndicated_total"}),
		SyndicationErrors:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "gazette", Name: "syndication_errors_total"}),
	}
}
