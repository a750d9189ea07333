package installer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts controller outcomes. A nil *Metrics records nothing.
type Metrics struct {
	operations        *prometheus.CounterVec
	artifacts         *prometheus.CounterVec
	priorReadFailures prometheus.Counter
	removed           prometheus.Counter
}

// NewMetrics registers the controller metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileform_operations_total",
				Help: "Controller operations by result. Result values: done, awaiting, error.",
			},
			[]string{
				"operation", // install, update, uninstall
				"result",
			},
		),
		artifacts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileform_artifacts_written_total",
				Help: "Artifacts written, by output syntax.",
			},
			[]string{"syntax"},
		),
		priorReadFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileform_prior_read_failures_total",
				Help: "Previous artifacts that could not be read on update.",
			},
		),
		removed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fileform_artifacts_removed_total",
				Help: "Artifacts removed by uninstall.",
			},
		),
	}
}

func (m *Metrics) operation(op, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) artifactWritten(syntax string) {
	if m == nil {
		return
	}
	m.artifacts.WithLabelValues(syntax).Inc()
}

func (m *Metrics) priorReadFailed() {
	if m == nil {
		return
	}
	m.priorReadFailures.Inc()
}

func (m *Metrics) artifactRemoved() {
	if m == nil {
		return
	}
	m.removed.Inc()
}
