// Package metrics exports broker client outcomes to Prometheus.
package metrics

import (
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/broker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "broker_gateway"

// BrokerMetrics implements broker.Observer.
type BrokerMetrics struct {
	attempts        *prometheus.CounterVec
	attemptDuration *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	results         *prometheus.CounterVec
}

func NewBrokerMetrics(reg prometheus.Registerer) *BrokerMetrics {
	factory := promauto.With(reg)

	return &BrokerMetrics{
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "broker_attempts_total",
				Help:      "Broker HTTP attempts by service and outcome",
			},
			[]string{"service", "outcome"},
		),
		attemptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "broker_attempt_duration_seconds",
				Help:      "Duration of a single Broker attempt",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"service"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Response cache lookups by service and result",
			},
			[]string{"service", "result"},
		),
		results: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "broker_requests_total",
				Help:      "Logical Broker requests by service and final error code",
			},
			[]string{"service", "code"},
		),
	}
}

func (m *BrokerMetrics) ObserveAttempt(service broker.ServiceID, outcome string, duration time.Duration) {
	m.attempts.WithLabelValues(string(service), outcome).Inc()
	m.attemptDuration.WithLabelValues(string(service)).Observe(duration.Seconds())
}

func (m *BrokerMetrics) ObserveCache(service broker.ServiceID, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(string(service), result).Inc()
}

func (m *BrokerMetrics) ObserveResult(service broker.ServiceID, code broker.ErrorCode) {
	label := string(code)
	if label == "" {
		label = "ok"
	}
	m.results.WithLabelValues(string(service), label).Inc()
}
