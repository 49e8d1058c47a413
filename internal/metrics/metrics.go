// Package metrics provides the Prometheus registry for the racehub client.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "racehub",
		Name:      "api_requests_total",
		Help:      "Total number of backend requests by endpoint and status code",
	}, []string{"endpoint", "code"})
	APIRetriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "racehub",
		Name:      "api_retries_total",
		Help:      "Total number of retried backend requests",
	}, []string{"method"})
	RaceReloadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "racehub",
		Name:      "race_reloads_total",
		Help:      "Total number of race collection reloads by outcome",
	}, []string{"outcome"})
)

// Gauge metrics
var (
	RacesLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "racehub",
		Name:      "races_loaded",
		Help:      "Number of races in the current snapshot",
	})
	RaceIndexHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "racehub",
		Name:      "race_index_hit_ratio",
		Help:      "Hit ratio of race lookups by id against the current snapshot",
	})
)

// Histogram metrics
var (
	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "racehub",
		Name:      "api_request_duration_seconds",
		Help:      "Latency of backend requests in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"endpoint"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(APIRequestsTotal)
		registry.MustRegister(APIRetriesTotal)
		registry.MustRegister(RaceReloadsTotal)

		// Register gauge metrics
		registry.MustRegister(RacesLoaded)
		registry.MustRegister(RaceIndexHitRatio)

		// Register histogram metrics
		registry.MustRegister(APIRequestDuration)

		// Register workflow metrics
		registry.MustRegister(SearchWorkflowTotal)
		registry.MustRegister(ResultLookupsTotal)
		registry.MustRegister(ViewRendersTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAPIRequest records one backend call. code is 0 for transport failures.
func RecordAPIRequest(endpoint string, code int, duration time.Duration) {
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	APIRequestsTotal.WithLabelValues(endpoint, label).Inc()
	APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordAPIRetry records a retried request.
func RecordAPIRetry(method string) {
	APIRetriesTotal.WithLabelValues(method).Inc()
}

// RecordReload records a race collection reload.
func RecordReload(outcome string, races int) {
	RaceReloadsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		RacesLoaded.Set(float64(races))
	}
}

// UpdateRaceIndexHitRatio updates the id index hit ratio gauge.
func UpdateRaceIndexHitRatio(ratio float64) {
	RaceIndexHitRatio.Set(ratio)
}
