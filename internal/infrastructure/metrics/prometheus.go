// Package metrics exposes enrollment and HTTP metrics to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	applead "github.com/RobertWLight/BSC/internal/application/lead"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Prometheus metric names.
const (
	MetricHTTPRequestsTotal          = "bsc_http_requests_total"
	MetricHTTPRequestDurationSeconds = "bsc_http_request_duration_seconds"
	MetricLeadsCapturedTotal         = "bsc_leads_captured_total"
	MetricFicaCalculationsTotal      = "bsc_fica_calculations_total"
	MetricFicaNetSavingsDollars      = "bsc_fica_net_savings_dollars"
	MetricApplicationsSubmittedTotal = "bsc_applications_submitted_total"
)

var (
	_ appenrollment.Recorder = (*Metrics)(nil)
	_ applead.Recorder       = (*Metrics)(nil)
)

// Metrics owns a private registry and every collector the server exports.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests          *prometheus.CounterVec
	httpDuration          *prometheus.HistogramVec
	leadsCaptured         *prometheus.CounterVec
	ficaCalculations      prometheus.Counter
	ficaNetSavings        prometheus.Histogram
	applicationsSubmitted prometheus.Counter
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHTTPRequestsTotal,
			Help: "Total HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricHTTPRequestDurationSeconds,
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		leadsCaptured: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricLeadsCapturedTotal,
			Help: "Leads captured by employee-count bucket",
		}, []string{"bucket"}),
		ficaCalculations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricFicaCalculationsTotal,
			Help: "FICA savings calculations stored",
		}),
		ficaNetSavings: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricFicaNetSavingsDollars,
			Help:    "Annual net savings of stored FICA calculations",
			Buckets: []float64{0, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
		}),
		applicationsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricApplicationsSubmittedTotal,
			Help: "Applications moved to submitted",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.leadsCaptured,
		m.ficaCalculations,
		m.ficaNetSavings,
		m.applicationsSubmitted,
	)
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// LeadCaptured counts a captured lead
func (m *Metrics) LeadCaptured(bucket string) {
	m.leadsCaptured.WithLabelValues(bucket).Inc()
}

// CalculationCompleted counts a stored calculation and observes its savings
func (m *Metrics) CalculationCompleted(netSavings decimal.Decimal) {
	m.ficaCalculations.Inc()
	m.ficaNetSavings.Observe(netSavings.InexactFloat64())
}

// ApplicationSubmitted counts a submission
func (m *Metrics) ApplicationSubmitted() {
	m.applicationsSubmitted.Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// GinMiddleware records request counts and latency keyed by route pattern.
// Unmatched routes are grouped under "unmatched".
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
