package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the Prometheus metrics exposed by the service.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	syncItems       *prometheus.CounterVec
	syncRuns        *prometheus.CounterVec
	jobRuns         *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
}

// New initializes the registry and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "accounting_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "accounting_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	syncItems := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "accounting_sync_items_total",
		Help: "Upstream records processed by the sync engine by domain and outcome.",
	}, []string{"domain", "outcome"})
	syncRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "accounting_sync_runs_total",
		Help: "Sync passes by domain and result.",
	}, []string{"domain", "result"})

	jobRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "accounting_job_runs_total",
		Help: "Background task executions by task type and status.",
	}, []string{"task", "status"})
	jobDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "accounting_job_duration_seconds",
		Help:    "Background task duration by task type.",
		Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300},
	}, []string{"task"})

	registry.MustRegister(requests, duration, syncItems, syncRuns, jobRuns, jobDuration)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		syncItems:       syncItems,
		syncRuns:        syncRuns,
		jobRuns:         jobRuns,
		jobDuration:     jobDuration,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveSyncItem records the outcome of one reconciled upstream record.
func (m *Metrics) ObserveSyncItem(domain, outcome string) {
	if m == nil {
		return
	}
	m.syncItems.WithLabelValues(domain, outcome).Inc()
}

// ObserveSyncRun records a finished pass; failed is true when the pass aborted.
func (m *Metrics) ObserveSyncRun(domain string, failed bool) {
	if m == nil {
		return
	}
	result := "ok"
	if failed {
		result = "error"
	}
	m.syncRuns.WithLabelValues(domain, result).Inc()
}

// ObserveJob records one finished background task and returns err untouched.
func (m *Metrics) ObserveJob(task string, started time.Time, err error) error {
	if m == nil {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.jobRuns.WithLabelValues(task, status).Inc()
	m.jobDuration.WithLabelValues(task).Observe(time.Since(started).Seconds())
	return err
}

// Registerer exposes the registry for additional collectors.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}
