package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersAllMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	if m.ConnectionState == nil {
		t.Error("ConnectionState is nil")
	}
	if m.ReconnectAttempts == nil {
		t.Error("ReconnectAttempts is nil")
	}
	if m.FramesSent == nil {
		t.Error("FramesSent is nil")
	}
	if m.HandshakeDuration == nil {
		t.Error("HandshakeDuration is nil")
	}
}

func TestFramesSentCountsByMessageType(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.FramesSent.WithLabelValues("HelloRequest").Inc()
	m.FramesSent.WithLabelValues("HelloRequest").Inc()
	m.FramesSent.WithLabelValues("PingRequest").Inc()

	if got := testutil.ToFloat64(m.FramesSent.WithLabelValues("HelloRequest")); got != 2 {
		t.Errorf("HelloRequest count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.FramesSent.WithLabelValues("PingRequest")); got != 1 {
		t.Errorf("PingRequest count = %v, want 1", got)
	}
}

func TestEntityCountGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.EntityCount.Set(12)
	if got := testutil.ToFloat64(m.EntityCount); got != 12 {
		t.Errorf("EntityCount = %v, want 12", got)
	}
}

func TestNoopUsesIsolatedRegistry(t *testing.T) {
	m1 := Noop()
	m2 := Noop()

	m1.ReconnectAttempts.Inc()
	if got := testutil.ToFloat64(m2.ReconnectAttempts); got != 0 {
		t.Errorf("second Noop() instance affected by first: got %v, want 0", got)
	}
}
