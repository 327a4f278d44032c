// Package metrics provides Prometheus instrumentation for the ESPHome
// Native API client, grouped by subsystem the same way the teacher's
// internal/metrics groups mesh-agent counters/gauges under one namespace.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "esphome_client"

// Metrics bundles every counter/gauge/histogram this client exposes.
type Metrics struct {
	ConnectionState      *prometheus.GaugeVec
	ReconnectAttempts    prometheus.Counter
	FramesSent           *prometheus.CounterVec
	FramesReceived       *prometheus.CounterVec
	PingRTT              prometheus.Histogram
	EntityCount          prometheus.Gauge
	DecodeBufferedBytes  prometheus.Gauge
	HandshakeDuration    prometheus.Histogram
}

// New registers and returns a fresh set of metrics against registry.
func New(registry prometheus.Registerer) *Metrics {
	f := promauto.With(registry)
	return &Metrics{
		ConnectionState: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connection_state",
			Help:      "Current connection state (1 for the active state, 0 otherwise), labeled by state name.",
		}, []string{"state"}),
		ReconnectAttempts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconnect_attempts_total",
			Help:      "Total number of reconnection attempts made.",
		}),
		FramesSent: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_sent_total",
			Help:      "Total frames sent, labeled by message type name.",
		}, []string{"message_type"}),
		FramesReceived: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_received_total",
			Help:      "Total frames received, labeled by message type name.",
		}, []string{"message_type"}),
		PingRTT: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ping_rtt_seconds",
			Help:      "Round-trip time of ping/pong liveness checks.",
			Buckets:   prometheus.DefBuckets,
		}),
		EntityCount: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entity_count",
			Help:      "Number of entities currently known from the device's catalog.",
		}),
		DecodeBufferedBytes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "decode_buffered_bytes",
			Help:      "Bytes currently held in the frame decode buffer awaiting a complete frame.",
		}),
		HandshakeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handshake_duration_seconds",
			Help:      "Time taken to complete the handshake and auth sequence.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

var (
	defaultOnce sync.Once
	defaultM    *Metrics
)

// Default returns a process-wide singleton registered against the default
// Prometheus registry, for callers that don't need a dedicated registry.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultM = New(prometheus.DefaultRegisterer)
	})
	return defaultM
}

// Noop returns a Metrics instance registered against an isolated registry,
// for callers (tests, library consumers who don't want global metrics)
// that need a valid *Metrics without touching the default registry.
func Noop() *Metrics {
	return New(prometheus.NewRegistry())
}
