package metric

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/reefdb-go/pkg/driver"
)

// Compile-time check that Metrics plugs into the driver.
var _ driver.Observer = (*Metrics)(nil)

func TestMetrics_ConnectionLifecycle(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ConnectionOpened()
	m.ConnectionOpened()
	m.ConnectionClosed()

	if got := testutil.ToFloat64(m.ConnectionsOpen); got != 1 {
		t.Errorf("connections_open = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ConnectionsTotal); got != 2 {
		t.Errorf("connections_total = %v, want 2", got)
	}
}

func TestMetrics_QueryDone(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.QueryDone(5*time.Millisecond, nil)
	m.QueryDone(10*time.Millisecond, nil)
	m.QueryDone(time.Millisecond, errors.New("decode failed"))

	if got := testutil.ToFloat64(m.QueriesTotal.WithLabelValues("ok")); got != 2 {
		t.Errorf("queries_total{status=ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.QueriesTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("queries_total{status=error} = %v, want 1", got)
	}
}

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.QueryDone(time.Millisecond, nil)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"reefdb_driver_connections_open",
		"reefdb_driver_queries_total",
		"reefdb_driver_query_duration_seconds",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}
