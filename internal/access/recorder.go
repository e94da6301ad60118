package access

import "github.com/prometheus/client_golang/prometheus"

// PrometheusRecorder считает решения в счётчике с меткой decision.
type PrometheusRecorder struct {
	counter *prometheus.CounterVec
}

// NewPrometheusRecorder создаёт Recorder поверх счётчика.
func NewPrometheusRecorder(counter *prometheus.CounterVec) *PrometheusRecorder {
	return &PrometheusRecorder{counter: counter}
}

// Record увеличивает счётчик для решения d.
func (r *PrometheusRecorder) Record(d Decision) {
	r.counter.WithLabelValues(string(d)).Inc()
}
