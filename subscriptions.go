package esphome

import (
	"github.com/LRuesink-WebArray/esphome-native-api/internal/api"
	"github.com/LRuesink-WebArray/esphome-native-api/internal/eventbus"
)

// StateEvent is one state update for one entity, delivered both on the
// generic state stream (OnState) and, for typed consumers, distinguishable
// by Domain/Detail's concrete type.
type StateEvent struct {
	Key    uint32
	Domain string
	Detail api.Message
}

// LogEvent is one line of device log output from SubscribeLogsResponse.
type LogEvent struct {
	Level      uint32
	Message    string
	SendFailed bool
}

// ConnEventKind distinguishes the two connection lifecycle events the
// Client publishes on its connection-event bus.
type ConnEventKind int

const (
	ConnEventConnected ConnEventKind = iota
	ConnEventDisconnected
)

// ConnEvent reports a connection lifecycle transition.
type ConnEvent struct {
	Kind ConnEventKind
	// Err is set for ConnEventDisconnected when the connection dropped on
	// an error (read, write or decode failure, ping timeout, failed
	// handshake); it is nil after the caller's Close or the device's own
	// DisconnectRequest.
	Err error
	// ExpectedDeepSleep is true when the device that disconnected reported
	// HasDeepSleep in its DeviceInfoResponse, per spec.md §4.3 — not a fault.
	ExpectedDeepSleep bool
}

type stateBus struct{ bus *eventbus.Bus[StateEvent] }

func newStateBus() *stateBus { return &stateBus{bus: eventbus.New[StateEvent]()} }

// kindStateBuses holds the kind-specific channels spec.md §4.5 requires
// alongside the generic state stream: every inbound state message is
// published both on stateBus and on its matching bus here.
type kindStateBuses struct {
	binarySensor *eventbus.Bus[*api.BinarySensorStateResponse]
	switch_      *eventbus.Bus[*api.SwitchStateResponse]
	light        *eventbus.Bus[*api.LightStateResponse]
	sensor       *eventbus.Bus[*api.SensorStateResponse]
	cover        *eventbus.Bus[*api.CoverStateResponse]
	fan          *eventbus.Bus[*api.FanStateResponse]
	textSensor   *eventbus.Bus[*api.TextSensorStateResponse]
}

func newKindStateBuses() *kindStateBuses {
	return &kindStateBuses{
		binarySensor: eventbus.New[*api.BinarySensorStateResponse](),
		switch_:      eventbus.New[*api.SwitchStateResponse](),
		light:        eventbus.New[*api.LightStateResponse](),
		sensor:       eventbus.New[*api.SensorStateResponse](),
		cover:        eventbus.New[*api.CoverStateResponse](),
		fan:          eventbus.New[*api.FanStateResponse](),
		textSensor:   eventbus.New[*api.TextSensorStateResponse](),
	}
}

type logBus struct{ bus *eventbus.Bus[LogEvent] }

func newLogBus() *logBus { return &logBus{bus: eventbus.New[LogEvent]()} }

type connEventBus struct{ bus *eventbus.Bus[ConnEvent] }

func newConnEventBus() *connEventBus { return &connEventBus{bus: eventbus.New[ConnEvent]()} }

func (b *connEventBus) publish(e ConnEvent) { b.bus.Publish(e) }

// SubscribeStates asks the device to start streaming state updates for
// every entity in its catalog. Delivery is via OnState.
func (c *Client) SubscribeStates() error {
	return c.sendAuthenticated(api.TypeSubscribeStatesRequest, (&api.SubscribeStatesRequest{}).Marshal())
}

// OnState registers fn to receive every inbound state update. Subscriber
// panics are recovered and logged, matching spec.md §4.5's "callback
// exceptions must not disrupt delivery to other subscribers" rule — the
// eventbus.Bus Publish loop runs each subscriber directly with no recovery
// of its own, so each subscriber's fn is wrapped in a recover guard here.
func (c *Client) OnState(fn func(StateEvent)) (unsubscribe func()) {
	return c.states.bus.Subscribe(guardedState(c.logger, fn))
}

// OnceState registers fn to receive exactly the next inbound state
// update, then unregisters itself.
func (c *Client) OnceState(fn func(StateEvent)) (unsubscribe func()) {
	return c.states.bus.Once(guardedState(c.logger, fn))
}

// OnBinarySensorState registers fn to receive binary_sensor state updates
// on their kind-specific channel, alongside whatever OnState subscribers
// also receive them on the generic channel.
func (c *Client) OnBinarySensorState(fn func(*api.BinarySensorStateResponse)) (unsubscribe func()) {
	return c.kindStates.binarySensor.Subscribe(guardedKindState(c.logger, fn))
}

// OnSwitchState registers fn to receive switch state updates.
func (c *Client) OnSwitchState(fn func(*api.SwitchStateResponse)) (unsubscribe func()) {
	return c.kindStates.switch_.Subscribe(guardedKindState(c.logger, fn))
}

// OnLightState registers fn to receive light state updates.
func (c *Client) OnLightState(fn func(*api.LightStateResponse)) (unsubscribe func()) {
	return c.kindStates.light.Subscribe(guardedKindState(c.logger, fn))
}

// OnSensorState registers fn to receive sensor state updates.
func (c *Client) OnSensorState(fn func(*api.SensorStateResponse)) (unsubscribe func()) {
	return c.kindStates.sensor.Subscribe(guardedKindState(c.logger, fn))
}

// OnCoverState registers fn to receive cover state updates.
func (c *Client) OnCoverState(fn func(*api.CoverStateResponse)) (unsubscribe func()) {
	return c.kindStates.cover.Subscribe(guardedKindState(c.logger, fn))
}

// OnFanState registers fn to receive fan state updates.
func (c *Client) OnFanState(fn func(*api.FanStateResponse)) (unsubscribe func()) {
	return c.kindStates.fan.Subscribe(guardedKindState(c.logger, fn))
}

// OnTextSensorState registers fn to receive text_sensor state updates.
func (c *Client) OnTextSensorState(fn func(*api.TextSensorStateResponse)) (unsubscribe func()) {
	return c.kindStates.textSensor.Subscribe(guardedKindState(c.logger, fn))
}

func guardedKindState[T any](logger interface{ Warn(string, ...any) }, fn func(T)) func(T) {
	return func(e T) {
		defer func() {
			if r := recover(); r != nil {
				logger.Warn("state subscriber panicked", "recovered", r)
			}
		}()
		fn(e)
	}
}

// SubscribeLogs asks the device to stream its log output at or above
// level, optionally requesting a one-time config dump.
func (c *Client) SubscribeLogs(level uint32, dumpConfig bool) error {
	return c.sendAuthenticated(api.TypeSubscribeLogsRequest, (&api.SubscribeLogsRequest{Level: level, DumpConfig: dumpConfig}).Marshal())
}

// OnLog registers fn to receive every inbound log line.
func (c *Client) OnLog(fn func(LogEvent)) (unsubscribe func()) {
	return c.logs.bus.Subscribe(guardedLog(c.logger, fn))
}

// OnceLog registers fn to receive exactly the next inbound log line, then
// unregisters itself.
func (c *Client) OnceLog(fn func(LogEvent)) (unsubscribe func()) {
	return c.logs.bus.Once(guardedLog(c.logger, fn))
}

// OnConnectionEvent registers fn to receive connect/disconnect lifecycle
// events.
func (c *Client) OnConnectionEvent(fn func(ConnEvent)) (unsubscribe func()) {
	return c.connEvent.bus.Subscribe(fn)
}

// OnceConnectionEvent registers fn to receive exactly the next
// connect/disconnect lifecycle event, then unregisters itself.
func (c *Client) OnceConnectionEvent(fn func(ConnEvent)) (unsubscribe func()) {
	return c.connEvent.bus.Once(fn)
}

func guardedState(logger interface{ Warn(string, ...any) }, fn func(StateEvent)) func(StateEvent) {
	return func(e StateEvent) {
		defer func() {
			if r := recover(); r != nil {
				logger.Warn("state subscriber panicked", "recovered", r)
			}
		}()
		fn(e)
	}
}

func guardedLog(logger interface{ Warn(string, ...any) }, fn func(LogEvent)) func(LogEvent) {
	return func(e LogEvent) {
		defer func() {
			if r := recover(); r != nil {
				logger.Warn("log subscriber panicked", "recovered", r)
			}
		}()
		fn(e)
	}
}

// routeState dispatches a decoded *StateResponse to the state bus. Returns
// true if msg was a state message.
func (c *Client) routeState(_ uint32, msg api.Message) bool {
	switch m := msg.(type) {
	case *api.BinarySensorStateResponse:
		c.states.bus.Publish(StateEvent{Key: m.Key, Domain: "binary_sensor", Detail: m})
		c.kindStates.binarySensor.Publish(m)
	case *api.SwitchStateResponse:
		c.states.bus.Publish(StateEvent{Key: m.Key, Domain: "switch", Detail: m})
		c.kindStates.switch_.Publish(m)
	case *api.LightStateResponse:
		c.states.bus.Publish(StateEvent{Key: m.Key, Domain: "light", Detail: m})
		c.kindStates.light.Publish(m)
	case *api.SensorStateResponse:
		c.states.bus.Publish(StateEvent{Key: m.Key, Domain: "sensor", Detail: m})
		c.kindStates.sensor.Publish(m)
	case *api.CoverStateResponse:
		c.states.bus.Publish(StateEvent{Key: m.Key, Domain: "cover", Detail: m})
		c.kindStates.cover.Publish(m)
	case *api.FanStateResponse:
		c.states.bus.Publish(StateEvent{Key: m.Key, Domain: "fan", Detail: m})
		c.kindStates.fan.Publish(m)
	case *api.TextSensorStateResponse:
		c.states.bus.Publish(StateEvent{Key: m.Key, Domain: "text_sensor", Detail: m})
		c.kindStates.textSensor.Publish(m)
	default:
		return false
	}
	return true
}

// routeLog dispatches a decoded SubscribeLogsResponse to the log bus.
func (c *Client) routeLog(_ uint32, msg api.Message) bool {
	m, ok := msg.(*api.SubscribeLogsResponse)
	if !ok {
		return false
	}
	c.logs.bus.Publish(LogEvent{Level: m.Level, Message: string(m.Message), SendFailed: m.SendFailed})
	return true
}
