package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var latencyBuckets = []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5}

var (
	Registry = prometheus.NewRegistry()

	FaceOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "face_outcomes_total",
		Help: "Face extraction and recognition outcomes by operation and kind",
	}, []string{"operation", "kind"})

	ExtractionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "face_extraction_duration_seconds",
		Help:    "Time spent turning an upload into a face descriptor",
		Buckets: latencyBuckets,
	}, []string{"operation"})

	MatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "face_match_duration_seconds",
		Help:    "Time spent loading candidates and scanning them",
		Buckets: latencyBuckets,
	})

	CandidatesScanned = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "face_match_candidates",
		Help:    "Number of stored descriptors scanned per recognition",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	DescriptorRefreshes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "face_descriptor_refreshes_total",
		Help: "Background descriptor recomputations by result",
	}, []string{"result"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_server_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: latencyBuckets,
	}, []string{"method", "route", "status_class"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		FaceOutcomes,
		ExtractionDuration,
		MatchDuration,
		CandidatesScanned,
		DescriptorRefreshes,
		requestDuration,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func StatusClass(status int) string {
	return fmt.Sprintf("%dxx", status/100)
}

// RequestMetricMiddleware records the duration of every request by route
// template so ids do not explode label cardinality.
func RequestMetricMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.WithLabelValues(ctx.Request.Method, route, StatusClass(ctx.Writer.Status())).Observe(time.Since(start).Seconds())
	}
}
