package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request outcomes for the API.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the request metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{
		requests: requests,
		duration: duration,
	}
}

// ObserveRequest records one completed request.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if m.requests != nil {
		m.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Inc()
	}
	if m.duration != nil {
		m.duration.WithLabelValues(method, normalizeLabel(route)).Observe(elapsed.Seconds())
	}
}

// LedgerMetrics records ledger store activity.
type LedgerMetrics struct {
	collectionSize *prometheus.GaugeVec
	saves          prometheus.Counter
	saveFailures   prometheus.Counter
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	collectionSize := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ledger_collection_size",
		Help: "Records held in memory per collection.",
	}, []string{"collection"})
	saves := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_saves_total",
		Help: "Successful full-state saves.",
	})
	saveFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_save_failures_total",
		Help: "Failed full-state saves.",
	})
	reg.MustRegister(collectionSize, saves, saveFailures)
	return &LedgerMetrics{
		collectionSize: collectionSize,
		saves:          saves,
		saveFailures:   saveFailures,
	}
}

// SetCollectionSize records the current size of the named collection.
func (m *LedgerMetrics) SetCollectionSize(collection string, size int) {
	if m == nil || m.collectionSize == nil {
		return
	}
	m.collectionSize.WithLabelValues(normalizeLabel(collection)).Set(float64(size))
}

// IncSave increments the successful save counter.
func (m *LedgerMetrics) IncSave() {
	if m == nil || m.saves == nil {
		return
	}
	m.saves.Inc()
}

// IncSaveFailure increments the failed save counter.
func (m *LedgerMetrics) IncSaveFailure() {
	if m == nil || m.saveFailures == nil {
		return
	}
	m.saveFailures.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
