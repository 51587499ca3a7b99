// ABOUTME: Prometheus collectors for the answer engine and HTTP API
// ABOUTME: Registered on a private registry served at /metrics
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// answersTotal counts answered queries by source.
	answersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faqbot_answers_total",
			Help: "Total number of answered queries grouped by source",
		},
		[]string{"source"},
	)

	// answerConfidence tracks the similarity score attached to answers.
	answerConfidence = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "faqbot_answer_confidence",
			Help:    "Similarity confidence of answered queries",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
		[]string{"source"},
	)

	// fallbackFailuresTotal counts fallback calls converted to diagnostics.
	fallbackFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "faqbot_fallback_failures_total",
			Help: "Total number of fallback completions that failed",
		},
	)

	// indexRebuildSeconds tracks how long index rebuilds take.
	indexRebuildSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "faqbot_index_rebuild_duration_seconds",
			Help:    "Duration of FAQ index rebuilds in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	// corpusSize is the number of FAQs in the current index.
	corpusSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "faqbot_corpus_size",
			Help: "Number of FAQ entries in the current index",
		},
	)

	// activeSessions is the number of sessions held in memory.
	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "faqbot_active_sessions",
			Help: "Number of conversation sessions held in memory",
		},
	)

	// httpRequestsTotal counts HTTP requests by route and status.
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faqbot_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDurationSeconds tracks HTTP latency by route.
	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "faqbot_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Registry holds every collector above
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		answersTotal,
		answerConfidence,
		fallbackFailuresTotal,
		indexRebuildSeconds,
		corpusSize,
		activeSessions,
		httpRequestsTotal,
		httpRequestDurationSeconds,
	)
}

// ObserveAnswer records one answered query
func ObserveAnswer(source string, confidence float64, fallbackFailed bool) {
	answersTotal.WithLabelValues(source).Inc()
	answerConfidence.WithLabelValues(source).Observe(confidence)
	if fallbackFailed {
		fallbackFailuresTotal.Inc()
	}
}

// ObserveRebuild records an index rebuild
func ObserveRebuild(d time.Duration, size int) {
	indexRebuildSeconds.Observe(d.Seconds())
	corpusSize.Set(float64(size))
}

// SetSessions records the number of live sessions
func SetSessions(n int) {
	activeSessions.Set(float64(n))
}

// ObserveHTTP records one served HTTP request
func ObserveHTTP(method, path, status string, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, path).Observe(d.Seconds())
}
