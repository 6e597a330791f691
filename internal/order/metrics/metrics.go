package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the order module.
type Metrics struct {
	OrdersPlaced    prometheus.Counter
	OrdersCompleted prometheus.Counter
	OrdersCancelled prometheus.Counter
	PlaceDuration   prometheus.Histogram
}

// New creates a new Metrics instance with all order module metrics registered.
func New() *Metrics {
	return &Metrics{
		OrdersPlaced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_orders_placed_total",
			Help: "Total number of orders placed",
		}),
		OrdersCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_orders_completed_total",
			Help: "Total number of orders completed",
		}),
		OrdersCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_orders_cancelled_total",
			Help: "Total number of orders cancelled",
		}),
		PlaceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "backoffice_order_place_duration_seconds",
			Help:    "Duration of order placement requests",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementOrdersPlaced records a successful placement.
func (m *Metrics) IncrementOrdersPlaced() {
	m.OrdersPlaced.Inc()
}

// IncrementOrdersCompleted records a completed order.
func (m *Metrics) IncrementOrdersCompleted() {
	m.OrdersCompleted.Inc()
}

// IncrementOrdersCancelled records a cancelled order.
func (m *Metrics) IncrementOrdersCancelled() {
	m.OrdersCancelled.Inc()
}

// ObservePlace records the duration of a placement request.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObservePlace(start time.Time) {
	m.PlaceDuration.Observe(time.Since(start).Seconds())
}
