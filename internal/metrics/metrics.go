package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nikmy/timebot/internal/commands"
)

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func New(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "commands",
			Name:      "request_count",
			Help:      "Number of chat commands handled.",
		}, []string{"platform", "command", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "commands",
			Name:      "request_latency_seconds",
			Help:      "Duration of chat command handling.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"platform", "command"}),
	}

	reg.MustRegister(m.requests, m.latency)
	return m
}

// Middleware instruments next with request count and latency labelled by platform.
func (m *Metrics) Middleware(platform string, next commands.Handler) commands.Handler {
	return &middleware{
		platform: platform,
		next:     next,
		metrics:  m,
	}
}

type middleware struct {
	platform string
	next     commands.Handler
	metrics  *Metrics
}

func (mw *middleware) Handle(ctx context.Context, cmd commands.Command, r commands.Responder) (err error) {
	defer func(begin time.Time) {
		mw.metrics.requests.WithLabelValues(mw.platform, cmd.Name, outcome(err)).Inc()
		mw.metrics.latency.WithLabelValues(mw.platform, cmd.Name).Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.Handle(ctx, cmd, r)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case commands.IsRejection(err):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}
