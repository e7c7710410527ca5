package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PrometheusAdapter struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	domainEvents    *prometheus.CounterVec
}

func NewPrometheusAdapter() *PrometheusAdapter {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	domainEvents := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "club_domain_events_total",
			Help: "Domain events such as reservations and reports",
		},
		[]string{"event"},
	)

	registry.MustRegister(
		requestsTotal,
		requestDuration,
		domainEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &PrometheusAdapter{
		registry:        registry,
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
		domainEvents:    domainEvents,
	}
}

// RecordMetrics is deferred by handlers, so the status is the one already written.
func (p *PrometheusAdapter) RecordMetrics(c *gin.Context, start time.Time) {
	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	method := c.Request.Method

	p.requestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
	p.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
}

func (p *PrometheusAdapter) RecordEvent(event string) {
	p.domainEvents.WithLabelValues(event).Inc()
}

func (p *PrometheusAdapter) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
