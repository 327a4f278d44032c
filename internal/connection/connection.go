package connection

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LRuesink-WebArray/esphome-native-api/internal/api"
	"github.com/LRuesink-WebArray/esphome-native-api/internal/frame"
	"github.com/LRuesink-WebArray/esphome-native-api/internal/metrics"
	"github.com/LRuesink-WebArray/esphome-native-api/internal/noise"
	"github.com/LRuesink-WebArray/esphome-native-api/internal/recovery"
	"github.com/LRuesink-WebArray/esphome-native-api/internal/wire"
)

// Config carries everything the Connection component needs to dial,
// optionally Noise-handshake, and maintain liveness on a socket. It is the
// internal counterpart of the public ConnectionConfig; the root package
// translates its caller-facing config into this one.
type Config struct {
	Address        string // host:port
	ConnectTimeout time.Duration
	PingInterval   time.Duration
	PingTimeout    time.Duration

	// NoisePSK, when non-nil, enables the encrypted transport variant and
	// is used as the Noise_NNpsk0 pre-shared key.
	NoisePSK *[32]byte

	// ExpectPing is the initial value of the ping gate: when false, the
	// keepalive loop sends no pings. The Client facade passes true and
	// later calls SetPingEnabled(false) once a device identifies itself as
	// deep-sleep capable, per spec.md §4.3's deep-sleep suppression rule.
	ExpectPing bool

	// Reconnecting, when true, starts the Connection in StateReconnecting
	// instead of StateIdle, so State() reports an in-flight retry while the
	// Client facade redials after having been connected before. The Client
	// facade sets this for every Connect call after the first successful
	// one, per spec.md §4.3.
	Reconnecting bool

	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Timers  TimerProvider
}

// FrameHandler is invoked for every decoded, decrypted application frame
// that is not a ping/pong or a DisconnectRequest (those are handled
// internally, mirroring the
// teacher's Manager.readLoop split between internally-handled and
// callback-forwarded frame types).
type FrameHandler func(msgType uint32, payload []byte)

// DisconnectHandler is invoked exactly once when the connection leaves the
// Open state, whether by explicit Close, a DisconnectRequest from the
// device, or a read/write error.
type DisconnectHandler func(err error)

// Connection owns one TCP socket to a device: dialing, the optional Noise
// handshake, frame encode/decode, and ping/pong liveness. It does not know
// about Hello/Connect/DeviceInfo — that sequencing lives in
// internal/handshake, layered on top once the Connection reaches StateOpen.
type Connection struct {
	cfg Config

	state stateBox

	mu      sync.Mutex
	conn    net.Conn
	session *noise.Session
	preamble byte

	onFrame      FrameHandler
	onDisconnect DisconnectHandler

	closeOnce sync.Once
	closed    chan struct{}
	ready     chan struct{}

	lastPingSent time.Time
	pendingPing  bool
	pingEnabled  atomic.Bool
}

// New constructs a Connection in StateIdle, or StateReconnecting if
// cfg.Reconnecting is set. Call Connect to dial.
func New(cfg Config) *Connection {
	if cfg.Timers == nil {
		cfg.Timers = RealTimerProvider
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	c := &Connection{
		cfg:    cfg,
		closed: make(chan struct{}),
		ready:  make(chan struct{}),
	}
	c.pingEnabled.Store(cfg.ExpectPing)
	if cfg.Reconnecting {
		c.setState(StateReconnecting)
	} else {
		c.setState(StateIdle)
	}
	return c
}

// setState stores s and, if metrics are configured, reflects the
// transition on the connection_state gauge (1 for the now-current state,
// 0 for whatever state preceded it).
func (c *Connection) setState(s State) {
	if c.cfg.Metrics != nil {
		old := c.state.load()
		if old != s {
			c.cfg.Metrics.ConnectionState.WithLabelValues(old.String()).Set(0)
		}
		c.cfg.Metrics.ConnectionState.WithLabelValues(s.String()).Set(1)
	}
	c.state.store(s)
}

// SetPingEnabled toggles whether the keepalive loop sends pings, without
// tearing down and restarting the loop. The Client facade calls this once
// a device's DeviceInfoResponse reveals HasDeepSleep, per spec.md §4.3's
// deep-sleep suppression rule — ping requirements aren't known until after
// the connection is already open and pinging.
func (c *Connection) SetPingEnabled(enabled bool) { c.pingEnabled.Store(enabled) }

// OnFrame registers the callback for application frames. Must be called
// before Connect.
func (c *Connection) OnFrame(h FrameHandler) { c.onFrame = h }

// OnDisconnect registers the callback fired when the connection drops.
// Must be called before Connect.
func (c *Connection) OnDisconnect(h DisconnectHandler) { c.onDisconnect = h }

// State returns the current connection state.
func (c *Connection) State() State { return c.state.load() }

// Connect dials the device, optionally performs the Noise handshake, and
// starts the read/keepalive loops. It blocks until the socket is ready for
// application-level frames (StateOpen) or ctx/ConnectTimeout expires.
func (c *Connection) Connect(ctx context.Context) error {
	if c.state.load() == StateDestroyed {
		return fmt.Errorf("connection: destroyed")
	}
	from := c.state.load()
	if !c.state.compareAndSwap(StateIdle, StateConnecting) &&
		!c.state.compareAndSwap(StateReconnecting, StateConnecting) {
		return fmt.Errorf("connection: cannot connect from state %s", c.state.load())
	}
	if c.cfg.Metrics != nil {
		c.cfg.Metrics.ConnectionState.WithLabelValues(from.String()).Set(0)
		c.cfg.Metrics.ConnectionState.WithLabelValues(StateConnecting.String()).Set(1)
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(dialCtx, "tcp", c.cfg.Address)
	if err != nil {
		c.setState(StateIdle)
		return fmt.Errorf("connection: dial %s: %w", c.cfg.Address, err)
	}

	c.preamble = frame.PreamblePlain
	if c.cfg.NoisePSK != nil {
		c.setState(StateHandshakingNoise)
		session, err := noise.PerformHandshake(dialCtx, conn, *c.cfg.NoisePSK)
		if err != nil {
			conn.Close()
			c.setState(StateIdle)
			return fmt.Errorf("connection: noise handshake: %w", err)
		}
		c.mu.Lock()
		c.session = session
		c.mu.Unlock()
		c.preamble = frame.PreambleEncrypted
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.setState(StateOpen)
	close(c.ready)

	go c.readLoop()
	if c.cfg.PingInterval > 0 {
		go c.keepaliveLoop()
	}

	return nil
}

// Send encodes and writes one application message. Safe for concurrent use.
func (c *Connection) Send(msgType uint32, payload []byte) error {
	if c.state.load() != StateOpen {
		return fmt.Errorf("connection: send while not open (state=%s)", c.state.load())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var buf []byte
	if c.session != nil {
		plaintext := wire.AppendVarint(make([]byte, 0, 10+len(payload)), uint64(msgType))
		plaintext = append(plaintext, payload...)
		sealed, err := c.session.SealFrame(plaintext)
		if err != nil {
			return fmt.Errorf("connection: seal frame: %w", err)
		}
		buf = frame.EncodeOpaque(c.preamble, sealed)
	} else {
		buf = frame.Encode(c.preamble, msgType, payload)
	}

	_, err := c.conn.Write(buf)
	if err != nil {
		return fmt.Errorf("connection: write: %w", err)
	}
	if c.cfg.Metrics != nil {
		c.cfg.Metrics.FramesSent.WithLabelValues(api.TypeName(msgType)).Inc()
	}
	return nil
}

// Close tears down the socket and signals disconnect exactly once, safe to
// call multiple times or concurrently (mirrors the teacher's
// sync.Once-guarded peer.Connection.Close).
func (c *Connection) Close(cause error) {
	c.closeOnce.Do(func() {
		c.setState(StateIdle)
		c.mu.Lock()
		if c.conn != nil {
			c.conn.Close()
		}
		if c.session != nil {
			c.session.Close()
		}
		c.mu.Unlock()
		close(c.closed)
		if c.onDisconnect != nil {
			c.onDisconnect(cause)
		}
	})
}

// Destroy permanently shuts down the connection: the socket is torn down
// exactly as Close does, but the resulting state is StateDestroyed rather
// than StateIdle, so every subsequent Connect call fails instead of
// redialing. Destroyed is terminal from any state and Destroy is itself
// idempotent.
func (c *Connection) Destroy(cause error) {
	c.Close(cause)
	c.setState(StateDestroyed)
}

// Closed returns a channel closed once the connection has torn down.
func (c *Connection) Closed() <-chan struct{} { return c.closed }

// Ready returns a channel closed once the connection reaches StateOpen for
// the first time, mirroring the teacher's peer.Connection ready channel.
func (c *Connection) Ready() <-chan struct{} { return c.ready }

func (c *Connection) readLoop() {
	defer recovery.RecoverWithLog(c.cfg.Logger, "connection.readLoop")

	dec := frame.NewDecoder(c.preamble)
	buf := make([]byte, 4096)

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			dec.Feed(buf[:n])
			frames, derr := dec.Drain()
			for _, fr := range frames {
				c.dispatch(fr)
			}
			if derr != nil {
				c.Close(fmt.Errorf("connection: frame decode: %w", derr))
				return
			}
			if c.cfg.Metrics != nil {
				c.cfg.Metrics.DecodeBufferedBytes.Set(float64(dec.Buffered()))
			}
		}
		if err != nil {
			c.Close(fmt.Errorf("connection: read: %w", err))
			return
		}
	}
}

func (c *Connection) dispatch(fr frame.Frame) {
	payload := fr.Payload
	msgType := fr.Type
	if c.session != nil {
		opened, err := c.session.OpenFrame(fr.Payload)
		if err != nil {
			c.Close(fmt.Errorf("connection: decrypt frame: %w", err))
			return
		}
		r := wire.NewReader(opened)
		t, err := r.Varint()
		if err != nil {
			c.Close(fmt.Errorf("connection: decode sealed frame type: %w", err))
			return
		}
		msgType = uint32(t)
		payload = r.Remaining()
	}

	if c.cfg.Metrics != nil {
		c.cfg.Metrics.FramesReceived.WithLabelValues(api.TypeName(msgType)).Inc()
	}

	switch msgType {
	case api.TypePingRequest:
		c.Send(api.TypePingResponse, (&api.PingResponse{}).Marshal())
		return
	case api.TypePingResponse:
		c.mu.Lock()
		if c.pendingPing {
			if c.cfg.Metrics != nil {
				c.cfg.Metrics.PingRTT.Observe(time.Since(c.lastPingSent).Seconds())
			}
			c.pendingPing = false
		}
		c.mu.Unlock()
		return
	case api.TypeDisconnectRequest:
		c.Send(api.TypeDisconnectResponse, (&api.DisconnectResponse{}).Marshal())
		c.Close(nil)
		return
	}

	if c.onFrame != nil {
		c.onFrame(msgType, payload)
	}
}

func (c *Connection) keepaliveLoop() {
	defer recovery.RecoverWithLog(c.cfg.Logger, "connection.keepaliveLoop")

	ticker := c.cfg.Timers.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.closed:
			return
		case <-ticker.C():
			if !c.pingEnabled.Load() {
				continue
			}
			c.mu.Lock()
			c.pendingPing = true
			c.lastPingSent = time.Now()
			c.mu.Unlock()

			if err := c.Send(api.TypePingRequest, (&api.PingRequest{}).Marshal()); err != nil {
				c.Close(err)
				return
			}

			c.cfg.Timers.AfterFunc(c.cfg.PingTimeout, func() {
				c.mu.Lock()
				timedOut := c.pendingPing
				c.mu.Unlock()
				if timedOut {
					c.Close(fmt.Errorf("connection: ping timeout after %s", c.cfg.PingTimeout))
				}
			})
		}
	}
}
