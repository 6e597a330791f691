package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the payment module.
type Metrics struct {
	PaymentsCreated   prometheus.Counter
	PaymentsProcessed prometheus.Counter
	PaymentsFailed    prometheus.Counter
	PaymentsRefunded  prometheus.Counter
	ProcessDuration   prometheus.Histogram
}

// New creates a new Metrics instance with all payment module metrics registered.
func New() *Metrics {
	return &Metrics{
		PaymentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_payments_created_total",
			Help: "Total number of payments created",
		}),
		PaymentsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_payments_processed_total",
			Help: "Total number of payments processed",
		}),
		PaymentsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_payments_failed_total",
			Help: "Total number of payments marked failed",
		}),
		PaymentsRefunded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_payments_refunded_total",
			Help: "Total number of payments refunded",
		}),
		ProcessDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "backoffice_payment_process_duration_seconds",
			Help:    "Duration of payment processing requests",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementPaymentsCreated records a created payment.
func (m *Metrics) IncrementPaymentsCreated() {
	m.PaymentsCreated.Inc()
}

// IncrementPaymentsProcessed records a settled payment.
func (m *Metrics) IncrementPaymentsProcessed() {
	m.PaymentsProcessed.Inc()
}

// IncrementPaymentsFailed records a failed payment.
func (m *Metrics) IncrementPaymentsFailed() {
	m.PaymentsFailed.Inc()
}

// IncrementPaymentsRefunded records a refunded payment.
func (m *Metrics) IncrementPaymentsRefunded() {
	m.PaymentsRefunded.Inc()
}

// ObserveProcess records the duration of a processing request.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveProcess(start time.Time) {
	m.ProcessDuration.Observe(time.Since(start).Seconds())
}
