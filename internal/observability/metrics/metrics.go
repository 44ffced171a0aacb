// Package metrics defines the service metrics recorded by the scrim and
// results modules, with a Prometheus implementation and a no-op one for tests.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operations records the lifecycle of a service operation.
type Operations interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
}

// ResultsMetrics adds the OCR pipeline counters.
type ResultsMetrics interface {
	Operations
	RecordRowsWritten(ctx context.Context, source string, n int)
	RecordRowsDiscarded(ctx context.Context, reason string, n int)
	RecordScreenshotProcessed(ctx context.Context, success bool)
}

// Prometheus implements ResultsMetrics with client_golang collectors.
type Prometheus struct {
	attempts   *prometheus.CounterVec
	successes  *prometheus.CounterVec
	failures   *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	rows       *prometheus.CounterVec
	discarded  *prometheus.CounterVec
	screenshot *prometheus.CounterVec
}

// NewPrometheus registers the collectors on reg.
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	m := &Prometheus{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operation_attempts_total", Help: "Service operations started.",
		}, []string{"service", "operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operation_success_total", Help: "Service operations that succeeded.",
		}, []string{"service", "operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operation_failures_total", Help: "Service operations that returned an error.",
		}, []string{"service", "operation"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "operation_duration_seconds", Help: "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "result_rows_written_total", Help: "Result records written.",
		}, []string{"source"}),
		discarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "result_rows_discarded_total", Help: "Parsed rows dropped before scoring.",
		}, []string{"reason"}),
		screenshot: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "screenshots_processed_total", Help: "Screenshots run through OCR.",
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.successes, m.failures, m.durations, m.rows, m.discarded, m.screenshot} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Prometheus) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(service, operation).Inc()
}

func (m *Prometheus) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(service, operation).Inc()
}

func (m *Prometheus) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(service, operation).Inc()
}

func (m *Prometheus) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.durations.WithLabelValues(service, operation).Observe(d.Seconds())
}

func (m *Prometheus) RecordRowsWritten(_ context.Context, source string, n int) {
	m.rows.WithLabelValues(source).Add(float64(n))
}

func (m *Prometheus) RecordRowsDiscarded(_ context.Context, reason string, n int) {
	m.discarded.WithLabelValues(reason).Add(float64(n))
}

func (m *Prometheus) RecordScreenshotProcessed(_ context.Context, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.screenshot.WithLabelValues(outcome).Inc()
}

// NoOp discards every measurement.
type NoOp struct{}

func (NoOp) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoOp) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoOp) RecordOperationFailure(context.Context, string, string)                 {}
func (NoOp) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoOp) RecordRowsWritten(context.Context, string, int)                         {}
func (NoOp) RecordRowsDiscarded(context.Context, string, int)                       {}
func (NoOp) RecordScreenshotProcessed(context.Context, bool)                        {}

var (
	_ ResultsMetrics = (*Prometheus)(nil)
	_ ResultsMetrics = NoOp{}
)
