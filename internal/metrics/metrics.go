package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"route", "method", "status"},
	)
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	InFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "http_in_flight_requests", Help: "In-flight HTTP requests"},
	)

	// MembershipOps counts membership operations by op and outcome.
	MembershipOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "community_membership_ops_total", Help: "Community join/leave operations"},
		[]string{"op", "outcome"},
	)
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_rate_limited_total", Help: "Requests rejected by the rate limiter"},
		[]string{"route"},
	)
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "community_events_published_total", Help: "Domain events published"},
		[]string{"key", "status"},
	)
	EventsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "community_events_consumed_total", Help: "Domain events handled by the notifier"},
		[]string{"key", "status"},
	)
)

func MustRegister() {
	prometheus.MustRegister(RequestsTotal, ReqDuration, InFlight, MembershipOps, RateLimited, EventsPublished)
}

func MustRegisterConsumer() {
	prometheus.MustRegister(EventsConsumed)
}
