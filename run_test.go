package esphome

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LRuesink-WebArray/esphome-native-api/internal/api"
)

func TestIsRetryableBootstrapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"connection timeout retries", newError(KindConnectionTimeout, "connect", nil), true},
		{"connection refused retries", newError(KindConnectionRefused, "connect", nil), true},
		{"connection reset retries", newError(KindConnectionReset, "connect", nil), true},
		{"connection lost retries", newError(KindConnectionLost, "connect", nil), true},
		{"invalid password does not retry", newError(KindInvalidPassword, "handshake", nil), false},
		{"handshake failure does not retry", newError(KindHandshakeFailed, "handshake", nil), false},
		{"unrecognized error retries", errors.New("boom"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isRetryableBootstrapError(tc.err); got != tc.want {
				t.Errorf("isRetryableBootstrapError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

// TestBootstrapStopsImmediatelyOnWrongPassword exercises
// connectWithBootstrap end to end: spec.md §7 requires a handshake/auth
// failure to reject the outer connect on the first attempt rather than
// being retried across §4.3's three-attempt backoff window.
func TestBootstrapStopsImmediatelyOnWrongPassword(t *testing.T) {
	addr, accept := listenOnce(t)
	c := newTestClient(t, addr, "wrong")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- c.connectWithBootstrap(ctx) }()

	conn := accept()
	defer conn.Close()
	peer := newSimulatedPeer(t, conn)

	peer.readFrame() // HelloRequest
	peer.send(api.TypeHelloResponse, (&api.HelloResponse{APIVersionMajor: 1, APIVersionMinor: 9}).Marshal())
	peer.readFrame() // ConnectRequest
	peer.send(api.TypeConnectResponse, (&api.ConnectResponse{InvalidPassword: true}).Marshal())

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrInvalidPassword) {
			t.Fatalf("got %v, want ErrInvalidPassword", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("connectWithBootstrap did not return promptly; it likely retried the auth failure")
	}
}
