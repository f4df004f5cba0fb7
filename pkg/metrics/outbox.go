package metrics

import "github.com/prometheus/client_golang/prometheus"

// OutboxMetrics tracks the publisher loop.
type OutboxMetrics struct {
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

func NewOutboxMetrics(reg prometheus.Registerer) *OutboxMetrics {
	if reg == nil {
		return &OutboxMetrics{}
	}
	m := &OutboxMetrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_published_total",
			Help: "Outbox events delivered to Pub/Sub.",
		}, []string{"event_type"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_failed_total",
			Help: "Outbox publish attempts that failed.",
		}, []string{"event_type", "terminal"}),
	}
	reg.MustRegister(m.published, m.failed)
	return m
}

func (m *OutboxMetrics) Published(eventType string) {
	if m == nil || m.published == nil {
		return
	}
	m.published.WithLabelValues(label(eventType)).Inc()
}

func (m *OutboxMetrics) Failed(eventType string, terminal bool) {
	if m == nil || m.failed == nil {
		return
	}
	t := "false"
	if terminal {
		t = "true"
	}
	m.failed.WithLabelValues(label(eventType), t).Inc()
}
