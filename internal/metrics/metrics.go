// Package metrics exposes Prometheus instrumentation for ranking, course
// matching, embedding calls and the HTTP API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ranking Metrics
	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "career_ranking_duration_seconds",
			Help:    "Duration of a full transition ranking pass in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RankedJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_ranked_jobs_total",
			Help: "Jobs considered by the ranker, by outcome",
		},
		[]string{"outcome"}, // "edge", "excluded"
	)

	// Course Matching Metrics
	CourseMatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "career_course_match_duration_seconds",
			Help:    "Duration of a course matching pass in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CourseCandidatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_course_candidates_total",
			Help: "Courses seen by the matcher, by pipeline stage outcome",
		},
		[]string{"stage"}, // "overlap_excluded", "duplicate", "unembedded", "scored"
	)

	// Embedding Metrics
	EmbeddingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_embedding_requests_total",
			Help: "Embedding requests by backend and status",
		},
		[]string{"backend", "status"},
	)

	EmbeddingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "career_embedding_duration_seconds",
			Help:    "Embedding request latency in seconds",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"backend"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "career_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_recommendations_total",
			Help: "Recommendation requests by result status",
		},
		[]string{"status"}, // "ok", "cannot_rank", "not_found", "error"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "career_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordRanking records a finished ranking pass over total jobs that
// produced edges transitions.
func RecordRanking(duration time.Duration, total, edges int) {
	RankingDuration.Observe(duration.Seconds())
	RankedJobsTotal.WithLabelValues("edge").Add(float64(edges))
	RankedJobsTotal.WithLabelValues("excluded").Add(float64(total - edges))
}

// RecordCourseStage counts courses leaving the matcher at a given stage.
func RecordCourseStage(stage string, n int) {
	if n <= 0 {
		return
	}
	CourseCandidatesTotal.WithLabelValues(stage).Add(float64(n))
}

// RecordEmbedding records an embedding request
func RecordEmbedding(backend string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	EmbeddingRequestsTotal.WithLabelValues(backend, status).Inc()
	EmbeddingDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
