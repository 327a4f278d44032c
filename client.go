// Package esphome is a client for the ESPHome Native API: a length-prefixed,
// optionally Noise-encrypted TCP protocol used to control and monitor
// embedded home-automation devices.
package esphome

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LRuesink-WebArray/esphome-native-api/internal/api"
	"github.com/LRuesink-WebArray/esphome-native-api/internal/connection"
	"github.com/LRuesink-WebArray/esphome-native-api/internal/handshake"
	"github.com/LRuesink-WebArray/esphome-native-api/internal/reconnect"
)

// ConnectionState is the observable subset of connection status the Client
// exposes, per spec.md §3 — owned internally by the Connection (raw socket
// state) and the handshake result (authenticated/apiVersion/serverInfo),
// composed here into one read-only snapshot.
type ConnectionState struct {
	Connected       bool
	Authenticated   bool
	APIVersionMajor uint32
	APIVersionMinor uint32
	ServerInfo      string
}

// pendingWaiter is a one-shot registration: the first inbound message of
// Type resolves it by sending into Result and removing it from the queue.
type pendingWaiter struct {
	typ    uint32
	result chan waitResult
}

type waitResult struct {
	payload []byte
	err     error
}

// Client is the Client Facade: request/response correlation, the entity
// catalog, state/log subscriptions, and typed commands, layered on top of
// internal/connection and internal/handshake.
type Client struct {
	cfg    ConnectionConfig
	logger *slog.Logger

	conn        *connection.Connection
	reconnector *reconnect.Reconnector

	mu            sync.Mutex
	waiters       []*pendingWaiter
	authenticated bool
	handshakeInfo *handshake.Result
	entitiesDone  chan struct{}

	entities    *entityCatalog
	entityEvent *entityEventBus
	states      *stateBus
	kindStates  *kindStateBuses
	logs        *logBus
	connEvent   *connEventBus

	closeOnce sync.Once
	closed    chan struct{}
	destroyed atomic.Bool
}

// New constructs a Client. Call Connect to dial.
func New(cfg ConnectionConfig) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:         cfg,
		logger:      cfg.Logger.With("component", "client"),
		entities:    newEntityCatalog(),
		entityEvent: newEntityEventBus(),
		states:      newStateBus(),
		kindStates:  newKindStateBuses(),
		logs:        newLogBus(),
		connEvent:   newConnEventBus(),
		closed:      make(chan struct{}),
	}
	return c, nil
}

// Connect dials the device, runs the Hello/Connect/DeviceInfo handshake,
// and returns once the client is authenticated and usable. It does not
// start reconnection on its own first attempt — that is governed by
// spec.md §4.3's bootstrap backoff policy, driven by Client.Run.
func (c *Client) Connect(ctx context.Context) error {
	if c.destroyed.Load() {
		return newError(KindClosed, "connect", fmt.Errorf("esphome: client destroyed"))
	}

	c.mu.Lock()
	reconnecting := c.conn != nil
	c.mu.Unlock()

	connCfg := connection.Config{
		Address:        c.cfg.Address(),
		ConnectTimeout: c.cfg.ConnectTimeout,
		PingInterval:   c.cfg.PingInterval,
		PingTimeout:    c.cfg.PingTimeout,
		NoisePSK:       c.cfg.NoisePSK,
		ExpectPing:     true,
		Reconnecting:   reconnecting,
		Logger:         c.cfg.Logger,
		Metrics:        c.cfg.Metrics,
	}
	conn := connection.New(connCfg)
	conn.OnFrame(c.route)
	conn.OnDisconnect(c.handleDisconnect)

	if err := conn.Connect(ctx); err != nil {
		return newError(KindConnectionTimeout, "connect", err).withContext("address", c.cfg.Address())
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	driver := &handshake.Driver{ClientInfo: c.cfg.ClientInfo, Password: c.cfg.Password}
	handshakeStart := time.Now()
	result, err := driver.Run(ctx, c)
	if c.cfg.Metrics != nil {
		c.cfg.Metrics.HandshakeDuration.Observe(time.Since(handshakeStart).Seconds())
	}
	if err != nil {
		conn.Close(err)
		switch {
		case errIs(err, handshake.ErrInvalidPassword):
			return newError(KindInvalidPassword, "handshake", err)
		case errIs(err, handshake.ErrAlreadyInProgress):
			return newError(KindAuthenticationInProgress, "handshake", err)
		default:
			return newError(KindHandshakeFailed, "handshake", err)
		}
	}

	c.mu.Lock()
	c.authenticated = true
	c.handshakeInfo = result
	c.mu.Unlock()

	if result.DeviceInfo.HasDeepSleep {
		conn.SetPingEnabled(false)
	}

	c.connEvent.publish(ConnEvent{Kind: ConnEventConnected})
	return nil
}

// Send implements handshake.Waiter and is also used by commands.go/
// subscriptions.go for one-way sends.
func (c *Client) Send(msgType uint32, payload []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	return conn.Send(msgType, payload)
}

// Await implements handshake.Waiter: block for the next inbound message of
// the given type, first match wins, removed from the queue once resolved.
func (c *Client) Await(ctx context.Context, msgType uint32) ([]byte, error) {
	w := &pendingWaiter{typ: msgType, result: make(chan waitResult, 1)}
	c.mu.Lock()
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()

	select {
	case res := <-w.result:
		return res.payload, res.err
	case <-ctx.Done():
		c.removeWaiter(w)
		return nil, ctx.Err()
	case <-c.closed:
		c.removeWaiter(w)
		return nil, ErrClosed
	}
}

func (c *Client) removeWaiter(w *pendingWaiter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, cur := range c.waiters {
		if cur == w {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return
		}
	}
}

// route is internal/connection's FrameHandler: every decoded application
// frame except ping/pong/disconnect (handled inside internal/connection
// itself) arrives here. It implements spec.md §4.5's dispatch table: (b)
// pending waiter match, (c) catalog/subscription routing, (d) unhandled
// logged and dropped.
func (c *Client) route(msgType uint32, payload []byte) {
	c.mu.Lock()
	for i, w := range c.waiters {
		if w.typ == msgType {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			c.mu.Unlock()
			w.result <- waitResult{payload: payload}
			return
		}
	}
	c.mu.Unlock()

	msg, ok, err := api.Decode(msgType, payload)
	if err != nil {
		c.logger.Warn("failed to decode inbound message", "msg_type", msgType, "error", err)
		return
	}
	if !ok {
		c.logger.Debug("unhandled message type", "msg_type", msgType)
		return
	}

	if c.routeEntity(msgType, msg) {
		return
	}
	if c.routeState(msgType, msg) {
		return
	}
	if c.routeLog(msgType, msg) {
		return
	}
	c.logger.Debug("message had no route", "msg_type", api.TypeName(msgType))
}

func (c *Client) handleDisconnect(cause error) {
	c.mu.Lock()
	c.authenticated = false
	wasDeepSleep := c.handshakeInfo != nil && c.handshakeInfo.DeviceInfo != nil && c.handshakeInfo.DeviceInfo.HasDeepSleep
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, w := range waiters {
		w.result <- waitResult{err: fmt.Errorf("esphome: connection closed: %w", ErrClosed)}
	}

	c.connEvent.publish(ConnEvent{Kind: ConnEventDisconnected, Err: cause, ExpectedDeepSleep: wasDeepSleep})
}

// State returns a snapshot of the current connection/authentication state.
func (c *Client) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := ConnectionState{Authenticated: c.authenticated}
	if c.conn != nil {
		st.Connected = c.conn.State() == connection.StateOpen
	}
	if c.handshakeInfo != nil {
		st.APIVersionMajor = c.handshakeInfo.APIVersionMajor
		st.APIVersionMinor = c.handshakeInfo.APIVersionMinor
		st.ServerInfo = c.handshakeInfo.ServerInfo
	}
	return st
}

// Close tears down the connection and fails any pending waiters.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.mu.Lock()
		conn := c.conn
		r := c.reconnector
		c.mu.Unlock()
		if r != nil {
			r.Cancel()
		}
		if conn != nil {
			conn.Close(nil)
		}
	})
	return nil
}

// Destroy permanently shuts down the client: unlike Close, every
// subsequent Connect call fails instead of redialing. Destroy is terminal
// from any state and safe to call more than once.
func (c *Client) Destroy() error {
	c.destroyed.Store(true)
	c.Close()
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn != nil {
		conn.Destroy(nil)
	}
	return nil
}

// requireAuthenticated enforces spec.md §3's invariant: only Ping/Pong,
// Disconnect, Hello, and Connect may cross the wire before authentication.
func (c *Client) requireAuthenticated() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.authenticated {
		return ErrAuthenticationRequired
	}
	return nil
}

// sendAuthenticated is the shared "require authenticated, then Send" helper used by
// commands.go and subscriptions.go.
func (c *Client) sendAuthenticated(msgType uint32, payload []byte) error {
	if err := c.requireAuthenticated(); err != nil {
		return err
	}
	return c.Send(msgType, payload)
}
