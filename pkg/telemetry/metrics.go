package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics for adcflow. All record methods are
// no-ops when metrics are disabled.
type Metrics struct {
	config MetricsConfig

	// Apply run metrics
	appliesStarted   prometheus.Counter
	appliesCompleted *prometheus.CounterVec
	applyDuration    *prometheus.HistogramVec
	activeApplies    prometheus.Gauge

	// Write metrics
	writes        *prometheus.CounterVec
	writeDuration *prometheus.HistogramVec

	// Error metrics
	errorsByClass *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector with the given configuration.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return &Metrics{config: cfg}, nil
	}

	namespace := cfg.Namespace
	buckets := cfg.DurationBuckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		appliesStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "applies_started_total",
				Help:      "Total number of apply runs started",
			},
		),
		appliesCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "applies_completed_total",
				Help:      "Total number of apply runs completed",
			},
			[]string{"status"},
		),
		applyDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "apply_duration_seconds",
				Help:      "Duration of apply runs in seconds",
				Buckets:   buckets,
			},
			[]string{"status"},
		),
		activeApplies: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_applies",
				Help:      "Current number of in-flight apply runs",
			},
		),

		writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "writes_total",
				Help:      "Total number of configuration writes",
			},
			[]string{"phase", "status"},
		),
		writeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "write_duration_seconds",
				Help:      "Duration of configuration writes in seconds",
				Buckets:   buckets,
			},
			[]string{"phase"},
		),

		errorsByClass: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_by_class_total",
				Help:      "Total number of errors by error class",
			},
			[]string{"class"},
		),
	}

	registry.MustRegister(
		m.appliesStarted,
		m.appliesCompleted,
		m.applyDuration,
		m.activeApplies,
		m.writes,
		m.writeDuration,
		m.errorsByClass,
	)

	return m, nil
}

// RecordApplyStarted increments the counters for a started apply run.
func (m *Metrics) RecordApplyStarted() {
	if m.appliesStarted == nil {
		return
	}
	m.appliesStarted.Inc()
	m.activeApplies.Inc()
}

// RecordApplyCompleted records a completed apply run with its status and
// duration.
func (m *Metrics) RecordApplyCompleted(status string, duration time.Duration) {
	if m.appliesCompleted == nil {
		return
	}
	m.appliesCompleted.WithLabelValues(status).Inc()
	m.applyDuration.WithLabelValues(status).Observe(duration.Seconds())
	m.activeApplies.Dec()
}

// RecordWrite records one resolved configuration write.
func (m *Metrics) RecordWrite(phase, status string, duration time.Duration) {
	if m.writes == nil {
		return
	}
	m.writes.WithLabelValues(phase, status).Inc()
	m.writeDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordError records an error by class.
func (m *Metrics) RecordError(class string) {
	if m.errorsByClass == nil {
		return
	}
	m.errorsByClass.WithLabelValues(class).Inc()
}

// Timer provides a convenient way to time operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// StartMetricsServer starts an HTTP server to expose metrics.
func (m *Metrics) StartMetricsServer(logger *Logger) error {
	if !m.config.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(m.config.Path, m.Handler())

	server := &http.Server{
		Addr:              m.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.WithError(err).Error("metrics server error")
			}
		}
	}()

	return nil
}
