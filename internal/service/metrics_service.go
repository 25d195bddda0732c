package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and keeps a few
// counters for the JSON summary endpoint.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	cacheLatency     prometheus.Observer
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	bookingOutcomes  *prometheus.CounterVec
	alternatives     *prometheus.HistogramVec
	sweepDuration    prometheus.Observer
	sweepConflicts   *prometheus.GaugeVec
	notifyDeliveries *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	cacheHitCount        uint64
	cacheMissCount       uint64
	confirmedCount       uint64
	rejectedCount        uint64
	sweepCount           uint64
	lastSweepConflicts   int64
}

// MetricsSnapshot is the JSON view of the service counters.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	BookingsConfirmed        uint64    `json:"bookings_confirmed"`
	BookingsRejected         uint64    `json:"bookings_rejected"`
	Sweeps                   uint64    `json:"sweeps"`
	LastSweepConflicts       int64     `json:"last_sweep_conflicts"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "conflict_cache_latency_seconds",
		Help:    "Latency for conflict report cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "conflict_cache_hits_total",
		Help: "Total conflict report cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "conflict_cache_misses_total",
		Help: "Total conflict report cache misses",
	})

	bookingOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_requests_total",
		Help: "Booking requests by resource type and outcome",
	}, []string{"resource_type", "outcome"})

	alternatives := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scheduling_alternatives",
		Help:    "Number of viable alternatives found per search",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	}, []string{"operation"})

	sweepDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "conflict_sweep_duration_seconds",
		Help:    "Duration of conflict sweeps",
		Buckets: prometheus.DefBuckets,
	})

	sweepConflicts := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "conflict_sweep_conflicts",
		Help: "Conflicts found by the latest sweep per severity",
	}, []string{"severity"})

	notifyDeliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Notification deliveries by result",
	}, []string{"result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheHits, cacheMisses,
		bookingOutcomes, alternatives, sweepDuration, sweepConflicts, notifyDeliveries, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		cacheLatency:     cacheLatency,
		cacheHits:        cacheHits,
		cacheMisses:      cacheMisses,
		bookingOutcomes:  bookingOutcomes,
		alternatives:     alternatives,
		sweepDuration:    sweepDuration,
		sweepConflicts:   sweepConflicts,
		notifyDeliveries: notifyDeliveries,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records a conflict cache lookup.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
		return
	}
	m.cacheMisses.Inc()
	atomic.AddUint64(&m.cacheMissCount, 1)
}

// RecordBookingOutcome counts one finished booking request.
func (m *MetricsService) RecordBookingOutcome(resourceType, outcome string) {
	if m == nil {
		return
	}
	m.bookingOutcomes.WithLabelValues(resourceType, outcome).Inc()
	if outcome == "CONFIRMED" {
		atomic.AddUint64(&m.confirmedCount, 1)
	} else {
		atomic.AddUint64(&m.rejectedCount, 1)
	}
}

// ObserveAlternatives records how many viable alternatives a search found.
func (m *MetricsService) ObserveAlternatives(operation string, count int) {
	if m == nil {
		return
	}
	m.alternatives.WithLabelValues(operation).Observe(float64(count))
}

// ObserveSweep records a finished conflict sweep.
func (m *MetricsService) ObserveSweep(report *models.ConflictReport, duration time.Duration) {
	if m == nil || report == nil {
		return
	}
	m.sweepDuration.Observe(duration.Seconds())
	counts := report.CountBySeverity()
	for _, severity := range []models.ConflictSeverity{models.SeverityLow, models.SeverityMedium, models.SeverityHigh} {
		m.sweepConflicts.WithLabelValues(string(severity)).Set(float64(counts[severity]))
	}
	atomic.AddUint64(&m.sweepCount, 1)
	atomic.StoreInt64(&m.lastSweepConflicts, int64(len(report.Conflicts)))
}

// RecordNotification counts a notification delivery attempt result.
func (m *MetricsService) RecordNotification(delivered bool) {
	if m == nil {
		return
	}
	result := "failed"
	if delivered {
		result = "delivered"
	}
	m.notifyDeliveries.WithLabelValues(result).Inc()
}

// Snapshot returns aggregated counters for the summary endpoint.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		CacheHits:                atomic.LoadUint64(&m.cacheHitCount),
		CacheMisses:              atomic.LoadUint64(&m.cacheMissCount),
		BookingsConfirmed:        atomic.LoadUint64(&m.confirmedCount),
		BookingsRejected:         atomic.LoadUint64(&m.rejectedCount),
		Sweeps:                   atomic.LoadUint64(&m.sweepCount),
		LastSweepConflicts:       atomic.LoadInt64(&m.lastSweepConflicts),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
