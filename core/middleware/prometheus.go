package middleware

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// PrometheusCollector is a MetricsCollector backed by Prometheus.
// Routing keys are not used as labels to keep cardinality bounded.
type PrometheusCollector struct {
	published *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// NewPrometheusCollector creates the collector's metrics under namespace and
// registers them with reg.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	c := &PrometheusCollector{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "Settled publishes by exchange and outcome.",
		}, []string{"exchange", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_confirm_seconds",
			Help:      "Time from publish to broker confirmation.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"exchange", "status"}),
	}
	for _, col := range []prometheus.Collector{c.published, c.latency} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("pubmux/middleware: register metrics: %w", err)
		}
	}
	return c, nil
}

func (c *PrometheusCollector) MessagePublished(exchange, _ string, duration time.Duration, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	c.published.WithLabelValues(exchange, status).Inc()
	c.latency.WithLabelValues(exchange, status).Observe(duration.Seconds())
}
