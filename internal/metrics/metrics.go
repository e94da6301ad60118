// Package metrics содержит метрики Prometheus приложения.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics хранит все метрики сервиса.
type Metrics struct {
	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Решения контроля доступа: authorized, unauthorized, permitted, denied
	AccessDecisions *prometheus.CounterVec

	// Ошибки провайдера учётных записей по коду
	IdentityErrors *prometheus.CounterVec

	// Неудачные публикации аудита
	AuditPublishFailures prometheus.Counter
}

// New создаёт метрики и регистрирует их в registry.
func New(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventos_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eventos_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AccessDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventos_access_decisions_total",
				Help: "Access control decisions",
			},
			[]string{"decision"},
		),
		IdentityErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventos_identity_errors_total",
				Help: "Identity provider errors by code",
			},
			[]string{"code"},
		),
		AuditPublishFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "eventos_audit_publish_failures_total",
				Help: "Audit messages that could not be published",
			},
		),
	}
}

// Noop возвращает метрики, зарегистрированные в отдельном реестре; удобно для тестов.
func Noop() *Metrics {
	return New(prometheus.NewRegistry())
}
