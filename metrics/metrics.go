// Package metrics exposes prometheus counters for the session lifecycle and HTTP latency.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Rejection reasons used as label values
const (
	ReasonInvalidResponse = "invalid_response"
	ReasonInvalidToken    = "invalid_token"
	ReasonInconsistent    = "inconsistent_session"
)

type Collector struct {
	established  prometheus.Counter
	rejected     *prometheus.CounterVec
	cleared      prometheus.Counter
	expired      prometheus.Counter
	httpDuration *prometheus.HistogramVec
}

// NewCollector creates the collector and registers it with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		established: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farm_session_established_total",
			Help: "Sessions established from an AuthResponse",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farm_session_rejected_total",
			Help: "AuthResponses rejected, by reason",
		}, []string{"reason"}),
		cleared: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farm_session_cleared_total",
			Help: "Explicit logouts",
		}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farm_session_expired_total",
			Help: "Sessions dropped after their token expired",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "farm_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(c.established, c.rejected, c.cleared, c.expired, c.httpDuration)
	return c
}

func (c *Collector) RecordEstablished() {
	c.established.Inc()
}

func (c *Collector) RecordRejected(reason string) {
	c.rejected.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordCleared() {
	c.cleared.Inc()
}

func (c *Collector) RecordExpired() {
	c.expired.Inc()
}

func (c *Collector) RecordRequest(method, route string, status int, d time.Duration) {
	c.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
