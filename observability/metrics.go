package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "arena_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	tournamentOperations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "arena_tournament_operation_duration_seconds",
		Help:    "Duration of tournament mutations by operation and result",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "result"})

	versionConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_tournament_version_conflicts_total",
		Help: "Compare-and-swap conflicts seen while writing tournaments",
	}, []string{"operation"})

	assistRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_assist_requests_total",
		Help: "Text generation requests by prompt kind and result",
	}, []string{"kind", "result"})

	promotedTournaments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arena_tournaments_promoted_total",
		Help: "Tournaments moved from UPCOMING to LIVE by the scheduler",
	})

	feedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arena_feed_subscribers",
		Help: "Active tournament collection subscriptions",
	})

	websocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arena_websocket_clients",
		Help: "Connected websocket clients",
	})
)

func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveOperation records a tournament mutation; result is "ok" or an error class.
func ObserveOperation(operation, result string, duration time.Duration) {
	tournamentOperations.WithLabelValues(operation, result).Observe(duration.Seconds())
}

func IncVersionConflict(operation string) {
	versionConflicts.WithLabelValues(operation).Inc()
}

func ObserveAssist(kind, result string) {
	assistRequests.WithLabelValues(kind, result).Inc()
}

func AddPromoted(n int) {
	promotedTournaments.Add(float64(n))
}

func SetFeedSubscribers(count int) {
	feedSubscribers.Set(float64(count))
}

func SetWebSocketClients(count int) {
	if count < 0 {
		count = 0
	}
	websocketClients.Set(float64(count))
}
