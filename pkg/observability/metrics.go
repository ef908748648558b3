package observability

import (
	"context"

	"github.com/aretw0/witgo/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the Prometheus collectors fed by the driver's lifecycle
// hooks.
type Metrics struct {
	turns          *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
	actionErrors   *prometheus.CounterVec
	messages       prometheus.Counter
	staleDrops     prometheus.Counter
}

// NewMetrics creates and registers the collectors on reg
// (prometheus.DefaultRegisterer when nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "witgo_converse_turns_total",
			Help: "Total decision-endpoint turns, by classified kind.",
		}, []string{"kind"}),
		actionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "witgo_action_duration_seconds",
			Help: "Duration of action handler invocations.",
		}, []string{"action"}),
		actionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "witgo_action_errors_total",
			Help: "Action handler invocations that returned an error.",
		}, []string{"action"}),
		messages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "witgo_messages_total",
			Help: "Bot messages delivered to the terminal handler.",
		}),
		staleDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "witgo_stale_runs_total",
			Help: "Conversation runs stopped because a newer run superseded them.",
		}),
	}
	reg.MustRegister(m.turns, m.actionDuration, m.actionErrors, m.messages, m.staleDrops)
	return m
}

// TurnCounter exposes the turn counter for a kind label, mainly for tests.
func (m *Metrics) TurnCounter(kind string) prometheus.Counter {
	return m.turns.WithLabelValues(kind)
}

// ActionErrorCounter exposes the error counter for an action label, mainly
// for tests.
func (m *Metrics) ActionErrorCounter(action string) prometheus.Counter {
	return m.actionErrors.WithLabelValues(action)
}

// Hooks returns the lifecycle hooks feeding these collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(_ context.Context, ev *domain.TurnEvent) {
			m.turns.WithLabelValues(ev.Kind).Inc()
		},
		OnActionReturn: func(_ context.Context, ev *domain.ActionEvent) {
			m.actionDuration.WithLabelValues(ev.Action).Observe(ev.Duration.Seconds())
			if ev.IsError {
				m.actionErrors.WithLabelValues(ev.Action).Inc()
			}
		},
		OnMessage: func(_ context.Context, ev *domain.MessageEvent) {
			m.messages.Inc()
		},
		OnStale: func(_ context.Context, ev *domain.TurnEvent) {
			m.staleDrops.Inc()
		},
	}
}
