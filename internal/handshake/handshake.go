// Package handshake implements the Handshake & Auth Driver: the
// Hello → (Connect) → DeviceInfo sequence run once a Connection reaches
// StateOpen, before the Client Facade exposes the connection as usable.
// Grounded on the teacher's internal/peer.Handshaker.PerformHandshake:
// per-step context deadlines, strict send/await/decode/validate ordering.
package handshake

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LRuesink-WebArray/esphome-native-api/internal/api"
)

// OverallTimeout bounds the entire Hello/Connect/DeviceInfo sequence.
const OverallTimeout = 10 * time.Second

// StepTimeout bounds each individual send-then-await step.
const StepTimeout = 5 * time.Second

// ClientAPIVersionMajor/Minor are the protocol version this client speaks.
const (
	ClientAPIVersionMajor = 1
	ClientAPIVersionMinor = 9
)

// Waiter is the minimal capability the driver needs from whatever owns the
// connection: send a message, and await the next message of a given type.
// The Client Facade satisfies this with its pendingWait registry so the
// driver does not need its own duplicate correlation machinery.
type Waiter interface {
	Send(msgType uint32, payload []byte) error
	Await(ctx context.Context, msgType uint32) ([]byte, error)
}

// Result is everything the driver established: the negotiated server
// version and the device's self-description.
type Result struct {
	ServerInfo     string
	ServerName     string
	APIVersionMajor uint32
	APIVersionMinor uint32
	DeviceInfo     *api.DeviceInfoResponse
}

// ErrInvalidPassword is returned when the device rejects the configured password.
var ErrInvalidPassword = fmt.Errorf("handshake: invalid password")

// ErrAlreadyInProgress is returned by Run when another handshake is
// already in flight on the same Driver.
var ErrAlreadyInProgress = fmt.Errorf("handshake: already in progress")

// Driver runs the handshake sequence with a re-entrancy guard: a second
// Run call while one is already in flight fails fast instead of
// interleaving two handshakes on the same connection.
type Driver struct {
	ClientInfo string
	Password   string

	mu        sync.Mutex
	inFlight  bool
}

// Run executes the 6-step sequence: send Hello, await HelloResponse, send
// Connect (always — ConnectRequest with an empty password is harmless when
// none is configured), await ConnectResponse, send DeviceInfoRequest,
// await DeviceInfoResponse.
func (d *Driver) Run(ctx context.Context, w Waiter) (*Result, error) {
	d.mu.Lock()
	if d.inFlight {
		d.mu.Unlock()
		return nil, ErrAlreadyInProgress
	}
	d.inFlight = true
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.inFlight = false
		d.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, OverallTimeout)
	defer cancel()

	hello, err := d.step(ctx, w, api.TypeHelloResponse, &api.HelloRequest{
		ClientInfo:      d.ClientInfo,
		APIVersionMajor: ClientAPIVersionMajor,
		APIVersionMinor: ClientAPIVersionMinor,
	})
	if err != nil {
		return nil, fmt.Errorf("handshake: hello: %w", err)
	}
	helloResp, ok, err := api.Decode(api.TypeHelloResponse, hello)
	if err != nil || !ok {
		return nil, fmt.Errorf("handshake: decode HelloResponse: %w", err)
	}
	hr := helloResp.(*api.HelloResponse)

	connectResp, err := d.step(ctx, w, api.TypeConnectResponse, &api.ConnectRequest{Password: d.Password})
	if err != nil {
		return nil, fmt.Errorf("handshake: connect: %w", err)
	}
	cr, ok, err := api.Decode(api.TypeConnectResponse, connectResp)
	if err != nil || !ok {
		return nil, fmt.Errorf("handshake: decode ConnectResponse: %w", err)
	}
	if cr.(*api.ConnectResponse).InvalidPassword {
		return nil, ErrInvalidPassword
	}

	diResp, err := d.step(ctx, w, api.TypeDeviceInfoResponse, &api.DeviceInfoRequest{})
	if err != nil {
		return nil, fmt.Errorf("handshake: device info: %w", err)
	}
	di, ok, err := api.Decode(api.TypeDeviceInfoResponse, diResp)
	if err != nil || !ok {
		return nil, fmt.Errorf("handshake: decode DeviceInfoResponse: %w", err)
	}

	return &Result{
		ServerInfo:      hr.ServerInfo,
		ServerName:      hr.Name,
		APIVersionMajor: hr.APIVersionMajor,
		APIVersionMinor: hr.APIVersionMinor,
		DeviceInfo:      di.(*api.DeviceInfoResponse),
	}, nil
}

// step sends req and awaits the expected response type, each bounded by
// StepTimeout (and still subject to the overall ctx deadline).
func (d *Driver) step(ctx context.Context, w Waiter, expect uint32, req api.Message) ([]byte, error) {
	stepCtx, cancel := context.WithTimeout(ctx, StepTimeout)
	defer cancel()

	if err := w.Send(req.TypeID(), req.Marshal()); err != nil {
		return nil, fmt.Errorf("send %s: %w", api.TypeName(req.TypeID()), err)
	}
	payload, err := w.Await(stepCtx, expect)
	if err != nil {
		return nil, fmt.Errorf("await %s: %w", api.TypeName(expect), err)
	}
	return payload, nil
}
