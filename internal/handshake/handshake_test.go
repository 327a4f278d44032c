package handshake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LRuesink-WebArray/esphome-native-api/internal/api"
)

// scriptedWaiter is a fake Waiter driven entirely by test-supplied
// closures, the same shape as internal/noise's simulated-peer tests but
// adapted to the Send/Await interface this package depends on.
type scriptedWaiter struct {
	sendFn  func(msgType uint32, payload []byte) error
	awaitFn func(ctx context.Context, msgType uint32) ([]byte, error)
}

func (w *scriptedWaiter) Send(msgType uint32, payload []byte) error {
	return w.sendFn(msgType, payload)
}

func (w *scriptedWaiter) Await(ctx context.Context, msgType uint32) ([]byte, error) {
	return w.awaitFn(ctx, msgType)
}

func successWaiter() *scriptedWaiter {
	return &scriptedWaiter{
		sendFn: func(uint32, []byte) error { return nil },
		awaitFn: func(_ context.Context, msgType uint32) ([]byte, error) {
			switch msgType {
			case api.TypeHelloResponse:
				return (&api.HelloResponse{APIVersionMajor: 1, APIVersionMinor: 9, ServerInfo: "sim", Name: "device"}).Marshal(), nil
			case api.TypeConnectResponse:
				return (&api.ConnectResponse{InvalidPassword: false}).Marshal(), nil
			case api.TypeDeviceInfoResponse:
				return (&api.DeviceInfoResponse{Name: "device"}).Marshal(), nil
			default:
				return nil, errors.New("unexpected await type")
			}
		},
	}
}

func TestRunSucceeds(t *testing.T) {
	d := &Driver{ClientInfo: "test", Password: "secret"}
	result, err := d.Run(context.Background(), successWaiter())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ServerName != "device" || result.ServerInfo != "sim" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.APIVersionMajor != 1 || result.APIVersionMinor != 9 {
		t.Fatalf("unexpected negotiated version: %+v", result)
	}
}

func TestRunRejectsInvalidPassword(t *testing.T) {
	w := &scriptedWaiter{
		sendFn: func(uint32, []byte) error { return nil },
		awaitFn: func(_ context.Context, msgType uint32) ([]byte, error) {
			switch msgType {
			case api.TypeHelloResponse:
				return (&api.HelloResponse{APIVersionMajor: 1, APIVersionMinor: 9}).Marshal(), nil
			case api.TypeConnectResponse:
				return (&api.ConnectResponse{InvalidPassword: true}).Marshal(), nil
			default:
				return nil, errors.New("unexpected await type")
			}
		},
	}

	d := &Driver{ClientInfo: "test", Password: "wrong"}
	_, err := d.Run(context.Background(), w)
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("got %v, want ErrInvalidPassword", err)
	}
}

func TestRunFailsOnStepTimeout(t *testing.T) {
	w := &scriptedWaiter{
		sendFn: func(uint32, []byte) error { return nil },
		awaitFn: func(ctx context.Context, msgType uint32) ([]byte, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	d := &Driver{ClientInfo: "test"}
	_, err := d.Run(ctx, w)
	if err == nil {
		t.Fatal("expected Run to fail on timeout")
	}
}

func TestRunRejectsConcurrentCalls(t *testing.T) {
	release := make(chan struct{})
	w := &scriptedWaiter{
		sendFn: func(uint32, []byte) error { return nil },
		awaitFn: func(ctx context.Context, msgType uint32) ([]byte, error) {
			if msgType == api.TypeHelloResponse {
				<-release
			}
			return (&api.HelloResponse{APIVersionMajor: 1, APIVersionMinor: 9}).Marshal(), nil
		},
	}

	d := &Driver{ClientInfo: "test"}
	done := make(chan struct{})
	go func() {
		d.Run(context.Background(), w)
		close(done)
	}()

	// Give the first Run a chance to mark itself in-flight before the
	// second call races it.
	time.Sleep(20 * time.Millisecond)

	_, err := d.Run(context.Background(), w)
	if !errors.Is(err, ErrAlreadyInProgress) {
		t.Fatalf("got %v, want ErrAlreadyInProgress", err)
	}

	close(release)
	<-done
}
