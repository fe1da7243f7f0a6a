// Package metrics defines Prometheus metrics for the resale analyzer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resale"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 while the process is serving traffic.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 while all collaborators are available.",
	})
)

// Vision metrics.
var (
	VisionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "vision_duration_seconds",
		Help:      "Duration of vision identification calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	VisionFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vision_failures_total",
		Help:      "Total number of failed vision identification calls.",
	})

	VisionTokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vision_tokens_total",
		Help:      "Total tokens consumed by vision calls.",
	}, []string{"kind"}) // kind: prompt | completion
)

// Market search metrics.
var (
	SearchCallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_calls_total",
		Help:      "Total cumulative market search calls.",
	})

	SearchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_errors_total",
		Help:      "Total number of failed market search calls.",
	})

	SearchFallbackDepth = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_fallback_depth",
		Help:      "Query-broadening level that produced the final snapshot (1 = exact).",
		Buckets:   []float64{1, 2, 3},
	})

	SearchDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "search_daily_usage",
		Help:      "Search calls consumed within the rolling 24-hour window.",
	})

	SearchBudgetHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_budget_hits_total",
		Help:      "Total number of times the daily search budget was exhausted.",
	})
)

// Pricing metrics.
var (
	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_total",
		Help:      "Total price recommendations produced, by confidence grade.",
	}, []string{"confidence"})

	SuggestedPrice = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "suggested_price_dollars",
		Help:      "Distribution of suggested prices.",
		Buckets:   prometheus.ExponentialBuckets(5, 2, 12), // 5 .. ~10k
	})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "End-to-end duration of analyze requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)
