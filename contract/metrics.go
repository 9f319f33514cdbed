package contract

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts operation outcomes and value moved. A nil *Metrics records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	pledged    prometheus.Counter
	tokensPaid prometheus.Counter
}

// NewMetrics registers the ledger metrics on reg. A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "zetasbox",
				Subsystem: "ledger",
				Name:      "operations_total",
				Help:      "Ledger operations by name and result code",
			},
			[]string{"op", "result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "zetasbox",
				Subsystem: "ledger",
				Name:      "operation_duration_seconds",
				Help:      "Ledger operation duration in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"op"},
		),
		pledged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "zetasbox",
			Subsystem: "ledger",
			Name:      "pledged_total",
			Help:      "Pledge currency accepted by committed donations",
		}),
		tokensPaid: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "zetasbox",
			Subsystem: "ledger",
			Name:      "tokens_settled_total",
			Help:      "Tokens paid out by committed settlements",
		}),
	}
}

// observe records one finished operation. result is "ok" or the failure code.
func (m *Metrics) observe(op string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = CodeOf(err)
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func (m *Metrics) addPledged(amount uint64) {
	if m == nil {
		return
	}
	m.pledged.Add(float64(amount))
}

func (m *Metrics) addTokensPaid(amount uint64) {
	if m == nil {
		return
	}
	m.tokensPaid.Add(float64(amount))
}
