package metrics

import (
	"time"

	"go-hospital-scheduling/pkg/apperror"

	"github.com/prometheus/client_golang/prometheus"
)

// SchedulerMetrics counts usecase mutations by outcome and times them.
type SchedulerMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	compensations     *prometheus.CounterVec
}

func NewSchedulerMetrics(reg prometheus.Registerer) *SchedulerMetrics {
	m := &SchedulerMetrics{
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "scheduler",
			Name:      "operations_total",
			Help:      "Mutating operations by resource, operation and outcome",
		}, []string{"resource", "operation", "outcome"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hospital",
			Subsystem: "scheduler",
			Name:      "operation_duration_seconds",
			Help:      "Latency of mutating operations including store round trips",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "operation"}),
		compensations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "scheduler",
			Name:      "occupancy_compensations_total",
			Help:      "Doctor schedule restores after a failed appointment save",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.operationsTotal, m.operationDuration, m.compensations)
	return m
}

// Outcome labels an operation result: "ok" or the error kind.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(apperror.KindOf(err))
}

// ObserveOperation records one finished operation started at start.
func (m *SchedulerMetrics) ObserveOperation(resource, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(resource, operation, Outcome(err)).Inc()
	m.operationDuration.WithLabelValues(resource, operation).Observe(time.Since(start).Seconds())
}

func (m *SchedulerMetrics) ObserveCompensation(failed bool) {
	if m == nil {
		return
	}
	status := "restored"
	if failed {
		status = "failed"
	}
	m.compensations.WithLabelValues(status).Inc()
}
