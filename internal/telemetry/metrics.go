package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Decisions          *prometheus.CounterVec
	Outcomes           *prometheus.CounterVec
	Actions            *prometheus.CounterVec
	DecayRuns          prometheus.Counter
	DecisionConfidence prometheus.Histogram
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifesim_decisions_total",
			Help: "Decisions made, by decision type",
		}, []string{"type"}),

		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifesim_outcomes_total",
			Help: "Decision outcomes processed, by outcome",
		}, []string{"outcome"}),

		// result: "ok", "not_found", "requirements_not_met", "error"
		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifesim_actions_total",
			Help: "Action executions, by action and result",
		}, []string{"action", "result"}),

		DecayRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "lifesim_decay_runs_total",
			Help: "Time-passage simulations applied to agents",
		}),

		DecisionConfidence: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lifesim_decision_confidence",
			Help:    "Confidence of chosen options",
			Buckets: []float64{50, 60, 70, 80, 90, 100},
		}),
	}
}

// RecordDecision counts a decision and observes its confidence.
func (m *Metrics) RecordDecision(decisionType string, confidence float64) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(decisionType).Inc()
	m.DecisionConfidence.Observe(confidence)
}

// RecordOutcome counts a processed outcome.
func (m *Metrics) RecordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(outcome).Inc()
}

// RecordAction counts an action execution attempt.
func (m *Metrics) RecordAction(action, result string) {
	if m == nil {
		return
	}
	m.Actions.WithLabelValues(action, result).Inc()
}

// RecordDecay counts one time-passage run.
func (m *Metrics) RecordDecay() {
	if m == nil {
		return
	}
	m.DecayRuns.Inc()
}
