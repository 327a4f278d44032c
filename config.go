package esphome

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/LRuesink-WebArray/esphome-native-api/internal/metrics"
)

// ConnectionConfig is the immutable input a Client is constructed from, per
// spec.md §3 — a plain struct, not a file format; the reference CLI layers
// YAML loading on top of this (see cmd/esphome-cli), the library itself
// never parses config files.
type ConnectionConfig struct {
	Host string
	Port int

	// Password, if set, is sent in ConnectRequest during the handshake.
	Password string

	// NoisePSK, if non-nil, enables the Noise_NNpsk0 encrypted transport
	// using these 32 raw bytes as the pre-shared key.
	NoisePSK *[32]byte

	// ClientInfo is the banner this client announces in HelloRequest.
	ClientInfo string

	ConnectTimeout    time.Duration
	ReconnectInterval time.Duration
	PingInterval      time.Duration
	PingTimeout       time.Duration

	// ReconnectDisabled opts out of spec.md §6's "reconnect enabled"
	// default. Left at its zero value, reconnection (both the bootstrap
	// retry policy on the first connect attempt and the steady-state
	// policy afterward) is enabled; set true to disable both.
	ReconnectDisabled bool

	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

const defaultClientInfo = "esphome-native-api"

// withDefaults returns a copy of cfg with spec.md §6's defaults applied:
// port 6053, reconnectInterval 5s, pingInterval 20s, pingTimeout 5s,
// connectTimeout 10s, reconnect enabled.
func (c ConnectionConfig) withDefaults() ConnectionConfig {
	out := c
	if out.Port == 0 {
		out.Port = 6053
	}
	if out.ClientInfo == "" {
		out.ClientInfo = defaultClientInfo
	}
	if out.ConnectTimeout == 0 {
		out.ConnectTimeout = 10 * time.Second
	}
	if out.ReconnectInterval == 0 {
		out.ReconnectInterval = 5 * time.Second
	}
	if out.PingInterval == 0 {
		out.PingInterval = 20 * time.Second
	}
	if out.PingTimeout == 0 {
		out.PingTimeout = 5 * time.Second
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.Metrics == nil {
		out.Metrics = metrics.Noop()
	}
	return out
}

// Address returns the dial target "host:port".
func (c ConnectionConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c ConnectionConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("esphome: config: host is required")
	}
	return nil
}
