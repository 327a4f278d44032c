package connection

import "time"

// Ticker is the minimal interface connection needs from time.Ticker,
// abstracted so tests can inject a fake clock.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TimerProvider constructs timers and tickers, resolving spec.md §9's
// "inject a timer factory rather than calling time.* directly" design
// note, generalized from the teacher's direct time.AfterFunc calls in
// internal/peer.Reconnector into an injectable seam.
type TimerProvider interface {
	AfterFunc(d time.Duration, f func()) func() // returns a cancel func
	NewTicker(d time.Duration) Ticker
}

// realTimerProvider is the production TimerProvider backed by the time package.
type realTimerProvider struct{}

// RealTimerProvider is the default TimerProvider used outside of tests.
var RealTimerProvider TimerProvider = realTimerProvider{}

func (realTimerProvider) AfterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

func (realTimerProvider) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }
