package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type BusinessMetrics struct {
	CustomersCreatedTotal    prometheus.Counter
	ReservationsCreatedTotal prometheus.Counter
	UpcomingReservations     prometheus.Gauge
}

var Business = BusinessMetrics{
	CustomersCreatedTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "restaurant_customers_created_total",
			Help: "Total number of customers successfully created.",
		},
	),
	ReservationsCreatedTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "restaurant_reservations_created_total",
			Help: "Total number of reservations successfully created.",
		},
	),
	UpcomingReservations: promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "restaurant_upcoming_reservations",
			Help: "Reservations starting within the next 24 hours, set by the daily report job.",
		},
	),
}
