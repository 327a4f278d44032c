package esphome

import (
	"context"
	"errors"
	"time"

	"github.com/LRuesink-WebArray/esphome-native-api/internal/reconnect"
)

// Run connects using spec.md §4.3's bootstrap policy (up to three attempts,
// exponential 1s→5s backoff) and, once connected, keeps the client
// connected in the background using the steady-state fixed-interval
// reconnect policy until ctx is cancelled or Close is called. It returns
// once the first connection attempt succeeds or the bootstrap attempts are
// exhausted.
func (c *Client) Run(ctx context.Context) error {
	if err := c.connectWithBootstrap(ctx); err != nil {
		return err
	}

	if !c.cfg.ReconnectDisabled {
		c.mu.Lock()
		c.reconnector = reconnect.New(reconnect.SteadyStatePolicy(c.cfg.ReconnectInterval), reconnect.RealTimerProvider)
		c.mu.Unlock()

		c.OnConnectionEvent(func(e ConnEvent) {
			if e.Kind != ConnEventDisconnected || e.ExpectedDeepSleep {
				return
			}
			select {
			case <-c.closed:
				return
			case <-ctx.Done():
				return
			default:
			}
			c.mu.Lock()
			r := c.reconnector
			c.mu.Unlock()
			if r == nil {
				return
			}
			r.Start(func(attempt int) error {
				if err := ctx.Err(); err != nil {
					r.Cancel()
					return err
				}
				if c.cfg.Metrics != nil {
					c.cfg.Metrics.ReconnectAttempts.Inc()
				}
				return c.Connect(ctx)
			}, func() {})
		})
	}

	return nil
}

func (c *Client) connectWithBootstrap(ctx context.Context) error {
	policy := reconnect.BootstrapPolicy()
	if c.cfg.ReconnectDisabled {
		policy.MaxAttempts = 1
	}
	backoff := reconnect.NewBackoffCalculator(policy)

	var lastErr error
	for attempt := 1; ; attempt++ {
		lastErr = c.Connect(ctx)
		if lastErr == nil {
			return nil
		}
		if !isRetryableBootstrapError(lastErr) {
			return lastErr
		}
		if policy.MaxAttempts > 0 && attempt >= policy.MaxAttempts {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff.Delay(attempt)):
		}
	}
}

// isRetryableBootstrapError reports whether err came from the TCP-level
// dial rather than the Hello/Connect/DeviceInfo handshake. spec.md §7
// requires handshake/auth failures (wrong password, protocol mismatch) to
// reject the outer connect immediately — the caller must re-invoke — while
// only §4.3's bootstrap policy retries transport-level connect failures.
func isRetryableBootstrapError(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return true
	}
	switch e.Kind {
	case KindConnectionTimeout, KindConnectionRefused, KindConnectionReset, KindConnectionLost:
		return true
	default:
		return false
	}
}
