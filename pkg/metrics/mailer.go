package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MailerMetrics records outcomes of notification dispatch.
type MailerMetrics struct {
	duration *prometheus.HistogramVec
	sent     *prometheus.CounterVec
	failed   *prometheus.CounterVec
	skipped  *prometheus.CounterVec
}

// NewMailerMetrics registers the mailer metrics on the provided registerer.
func NewMailerMetrics(reg prometheus.Registerer) *MailerMetrics {
	if reg == nil {
		return &MailerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mail_send_duration_seconds",
		Help:    "Duration of outbound mail API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	sent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_sent_total",
		Help: "Successfully dispatched notification emails.",
	}, []string{"kind"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_failed_total",
		Help: "Notification emails that errored during dispatch.",
	}, []string{"kind"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_skipped_total",
		Help: "Notification emails suppressed by inactive templates or missing config.",
	}, []string{"kind"})
	reg.MustRegister(duration, sent, failed, skipped)
	return &MailerMetrics{
		duration: duration,
		sent:     sent,
		failed:   failed,
		skipped:  skipped,
	}
}

// ObserveDuration records how long the send took for the given kind.
func (m *MailerMetrics) ObserveDuration(kind string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

// IncSent increments the delivered counter for the given kind.
func (m *MailerMetrics) IncSent(kind string) {
	if m == nil || m.sent == nil {
		return
	}
	m.sent.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncFailed increments the failure counter for the given kind.
func (m *MailerMetrics) IncFailed(kind string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncSkipped increments the suppressed counter for the given kind.
func (m *MailerMetrics) IncSkipped(kind string) {
	if m == nil || m.skipped == nil {
		return
	}
	m.skipped.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(kind string) string {
	if kind == "" {
		return "unknown"
	}
	return kind
}
