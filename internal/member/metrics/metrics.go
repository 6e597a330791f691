package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the member module.
type Metrics struct {
	MembersRegistered prometheus.Counter
	RegisterDuration  prometheus.Histogram
}

// New creates a new Metrics instance with all member module metrics registered.
func New() *Metrics {
	return &Metrics{
		MembersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_members_registered_total",
			Help: "Total number of members registered",
		}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "backoffice_member_register_duration_seconds",
			Help:    "Duration of member registration requests",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementMembersRegistered records a successful registration.
func (m *Metrics) IncrementMembersRegistered() {
	m.MembersRegistered.Inc()
}

// ObserveRegister records the duration of a registration request.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}
