package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Window registry metrics
	WindowsOpen   prometheus.Gauge
	WindowsOpened *prometheus.CounterVec
	RegistryApps  prometheus.Gauge

	// Storage metrics
	StorageOps      *prometheus.CounterVec
	StorageDuration *prometheus.HistogramVec

	// Notification metrics
	Notifications *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	OpenWindows       int64   `json:"open_windows"`
	ActiveConnections int64   `json:"active_connections"`
	AverageLatencyMs  float64 `json:"average_latency_ms"`
	UptimeSeconds     float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a metrics collector backed by its own registry, so
// several servers (or tests) can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_windows_open",
				Help: "Number of open windows",
			},
		),
		WindowsOpened: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_windows_opened_total",
				Help: "Total number of windows opened, by app",
			},
			[]string{"app"},
		),
		RegistryApps: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_registry_apps",
				Help: "Number of registered applications",
			},
		),

		StorageOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_storage_operations_total",
				Help: "Total number of key-value backend operations",
			},
			[]string{"collection", "op", "status"},
		),
		StorageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_storage_operation_duration_seconds",
				Help:    "Key-value backend operation duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"collection", "op"},
		),

		Notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_notifications_total",
				Help: "Cross-app notifications, by target and outcome",
			},
			[]string{"target", "outcome"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "webdesk_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry for custom collectors and tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the exposition handler for this collector's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordStorageOp records one key-value backend operation
func (m *Metrics) RecordStorageOp(collection, op, status string, duration time.Duration) {
	m.StorageOps.WithLabelValues(collection, op, status).Inc()
	m.StorageDuration.WithLabelValues(collection, op).Observe(duration.Seconds())
}

// RecordNotification records a cross-app notification outcome
func (m *Metrics) RecordNotification(target string, delivered bool) {
	outcome := "dropped"
	if delivered {
		outcome = "delivered"
	}
	m.Notifications.WithLabelValues(target, outcome).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// SetWindowsOpen sets the number of open windows
func (m *Metrics) SetWindowsOpen(count int) {
	m.WindowsOpen.Set(float64(count))
	m.mu.Lock()
	m.snapshot.OpenWindows = int64(count)
	m.mu.Unlock()
}

// IncWindowsOpened increments the opened-windows counter for an app
func (m *Metrics) IncWindowsOpened(app string) {
	m.WindowsOpened.WithLabelValues(app).Inc()
}

// SetRegistryApps sets the number of registered apps
func (m *Metrics) SetRegistryApps(count int) {
	m.RegistryApps.Set(float64(count))
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns the current values for the JSON health endpoint
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AverageLatencyMs = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
