// File: internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration observes HTTP handler latency by method.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "A histogram of request latencies.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	AppointmentsBooked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_appointments_booked_total",
		Help: "Number of appointments successfully booked.",
	})

	AppointmentStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_appointment_status_changes_total",
		Help: "Appointment status transitions by target status.",
	}, []string{"status"})

	PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_payments_recorded_total",
		Help: "Payments recorded by method.",
	}, []string{"method"})

	PaymentsRefunded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_payments_refunded_total",
		Help: "Payments refunded.",
	})

	// AuthLogins counts login attempts by result: success, invalid_credentials or error.
	AuthLogins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_auth_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_cache_lookups_total",
		Help: "Cache lookups by result (hit or miss).",
	}, []string{"result"})
)
