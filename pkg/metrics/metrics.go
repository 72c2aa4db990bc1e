package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics Prometheus collectors of the service
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge
	DBQueryDuration   *prometheus.HistogramVec

	ConflictsDetected  *prometheus.CounterVec
	BookingTransitions *prometheus.CounterVec
	DishToggles        *prometheus.CounterVec
}

// New registers collectors in the default Prometheus registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry registers collectors in reg
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		ConflictsDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_detected_total",
			Help:        "Conflicting bookings found by conflict detection",
			ConstLabels: labels,
		}, []string{"venue", "operation"}),
		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Booking status transition attempts",
			ConstLabels: labels,
		}, []string{"from", "to", "outcome"}),
		DishToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "catering_dish_toggles_total",
			Help:        "Catering dish toggle attempts",
			ConstLabels: labels,
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.DBQueryDuration,
		m.ConflictsDetected,
		m.BookingTransitions,
		m.DishToggles,
	)

	return m
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method, route string, status int, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordConflicts adds n detected conflicts for a venue
func (m *Metrics) RecordConflicts(venue, operation string, n int) {
	if n <= 0 {
		return
	}
	m.ConflictsDetected.WithLabelValues(venue, operation).Add(float64(n))
}

// RecordTransition counts a status transition attempt
func (m *Metrics) RecordTransition(from, to, outcome string) {
	m.BookingTransitions.WithLabelValues(from, to, outcome).Inc()
}

// RecordDishToggle counts a dish toggle attempt
func (m *Metrics) RecordDishToggle(outcome string) {
	m.DishToggles.WithLabelValues(outcome).Inc()
}

// Nop satisfies the recorder interfaces when metrics are disabled
type Nop struct{}

func (Nop) RecordConflicts(string, string, int)      {}
func (Nop) RecordTransition(string, string, string) {}
func (Nop) RecordDishToggle(string)                 {}
