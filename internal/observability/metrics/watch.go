package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
)

type WatchMetrics struct {
	registry *prometheus.Registry

	pollTotal    *prometheus.CounterVec
	pollDuration *prometheus.HistogramVec
	applications *prometheus.GaugeVec
}

func NewWatchMetrics(service string) *WatchMetrics {
	registry := prometheus.NewRegistry()

	pollTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beswan",
			Subsystem: "watch",
			Name:      "poll_total",
			Help:      "Total statistics polls by status.",
		},
		[]string{"service", "status"},
	)
	pollDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "beswan",
			Subsystem: "watch",
			Name:      "poll_duration_seconds",
			Help:      "Statistics poll duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	applications := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "beswan",
			Subsystem: "watch",
			Name:      "applications",
			Help:      "Applications in the active period by review status.",
		},
		[]string{"service", "application_status"},
	)

	registry.MustRegister(pollTotal, pollDuration, applications)

	return &WatchMetrics{
		registry:     registry,
		pollTotal:    pollTotal,
		pollDuration: pollDuration,
		applications: applications,
	}
}

func (m *WatchMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WatchMetrics) ObservePoll(service string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	m.pollTotal.WithLabelValues(service, status).Inc()
	m.pollDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WatchMetrics) SetStatistics(service string, stats domain.Statistics) {
	m.applications.WithLabelValues(service, "total").Set(float64(stats.Total))
	for status, count := range stats.ByStatus {
		m.applications.WithLabelValues(service, status).Set(float64(count))
	}
}
