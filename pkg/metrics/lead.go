package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lead_relay"

// LeadMetrics счётчики исходов заявок и время отправки в Telegram.
type LeadMetrics struct {
	submissions   *prometheus.CounterVec
	relayDuration *prometheus.HistogramVec
	rateLimited   prometheus.Counter
}

func NewLeadMetrics(reg prometheus.Registerer) (*LeadMetrics, error) {
	m := &LeadMetrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Lead submissions by outcome.",
		}, []string{"outcome"}),
		relayDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "relay_duration_seconds",
			Help:      "Telegram sendMessage latency.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"result"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limit.",
		}),
	}

	for _, c := range []prometheus.Collector{m.submissions, m.relayDuration, m.rateLimited} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("reg.Register: %w", err)
		}
	}

	return m, nil
}

func (m *LeadMetrics) ObserveOutcome(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *LeadMetrics) ObserveRelay(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	m.relayDuration.WithLabelValues(result).Observe(d.Seconds())
}

func (m *LeadMetrics) ObserveRateLimited() {
	m.rateLimited.Inc()
}
