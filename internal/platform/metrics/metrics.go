package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Callers may hold
// a nil *Metrics (tests, dev wiring); every method is nil-safe.
type Metrics struct {
	RegistrationsCreated prometheus.Counter
	UsersUpdated         prometheus.Counter
	ListCacheHits        prometheus.Counter
	ListCacheMisses      prometheus.Counter
	RequestDuration      *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "troywings_registrations_created_total",
			Help: "Total number of users registered",
		}),
		UsersUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "troywings_users_updated_total",
			Help: "Total number of user records updated",
		}),
		ListCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "troywings_user_list_cache_hits_total",
			Help: "User list reads served from the cache",
		}),
		ListCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "troywings_user_list_cache_misses_total",
			Help: "User list reads that fell through to the store",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "troywings_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "status"}),
	}
}

// IncrementRegistrationsCreated increments the registration counter by 1.
func (m *Metrics) IncrementRegistrationsCreated() {
	if m == nil {
		return
	}
	m.RegistrationsCreated.Inc()
}

// IncrementUsersUpdated increments the update counter by 1.
func (m *Metrics) IncrementUsersUpdated() {
	if m == nil {
		return
	}
	m.UsersUpdated.Inc()
}

// RecordCacheHit records a user list cache hit.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.ListCacheHits.Inc()
}

// RecordCacheMiss records a user list cache miss.
func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.ListCacheMisses.Inc()
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, status).Observe(seconds)
}
