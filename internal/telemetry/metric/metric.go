package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the driver instrumentation. It satisfies driver.Observer.
type Metrics struct {
	// Connection metrics
	ConnectionsOpen  prometheus.Gauge
	ConnectionsTotal prometheus.Counter

	// Query metrics
	QueriesTotal  *prometheus.CounterVec
	QueryDuration prometheus.Histogram
}

// New creates the metric set registered against r.
func New(r prometheus.Registerer) *Metrics {
	factory := promauto.With(r)

	return &Metrics{
		ConnectionsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "reefdb",
			Subsystem: "driver",
			Name:      "connections_open",
			Help:      "Connections currently open.",
		}),
		ConnectionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "reefdb",
			Subsystem: "driver",
			Name:      "connections_total",
			Help:      "Connections opened since start.",
		}),
		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reefdb",
			Subsystem: "driver",
			Name:      "queries_total",
			Help:      "Query exchanges by outcome.",
		}, []string{"status"}),
		QueryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "reefdb",
			Subsystem: "driver",
			Name:      "query_duration_seconds",
			Help:      "Query round-trip duration.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// ConnectionOpened implements driver.Observer.
func (m *Metrics) ConnectionOpened() {
	m.ConnectionsTotal.Inc()
	m.ConnectionsOpen.Inc()
}

// ConnectionClosed implements driver.Observer.
func (m *Metrics) ConnectionClosed() {
	m.ConnectionsOpen.Dec()
}

// QueryDone implements driver.Observer.
func (m *Metrics) QueryDone(d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.QueriesTotal.WithLabelValues(status).Inc()
	m.QueryDuration.Observe(d.Seconds())
}
