package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegister_ReusesExistingCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	newCounter := func() *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_events_total",
			Help: "Test events",
		}, []string{"kind"})
	}

	first, err := Register(reg, newCounter())
	if err != nil {
		t.Fatalf("register first: %v", err)
	}
	second, err := Register(reg, newCounter())
	if err != nil {
		t.Fatalf("register second: %v", err)
	}
	if first != second {
		t.Fatalf("expected the existing collector to be returned")
	}
}

func TestRegister_ConflictingCollectorFails(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	if _, err := Register(reg, prometheus.NewCounter(prometheus.CounterOpts{Name: "test_conflict", Help: "a"})); err != nil {
		t.Fatalf("register counter: %v", err)
	}
	_, err := Register(reg, prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_conflict", Help: "b"}))
	if err == nil {
		t.Fatalf("expected conflicting registration to fail")
	}
}
