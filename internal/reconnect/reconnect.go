// Package reconnect implements the exponential-backoff and fixed-interval
// reconnection policies the Connection component's caller (the Client
// facade) drives after losing a connection, grounded on the teacher's
// internal/peer.Reconnector and BackoffCalculator.
package reconnect

import (
	"math/rand"
	"sync"
	"time"
)

// Policy configures one backoff curve. A MaxAttempts of 0 means unlimited.
type Policy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	JitterFraction  float64 // 0.2 = up to ±20% jitter
	MaxAttempts     int
}

// BootstrapPolicy is the policy used for the first connection attempt:
// spec.md's "1s, capped at 5s, exponential, 3 attempts" initial-connect rule.
func BootstrapPolicy() Policy {
	return Policy{
		InitialInterval: time.Second,
		MaxInterval:     5 * time.Second,
		Multiplier:      2,
		JitterFraction:  0.2,
		MaxAttempts:     3,
	}
}

// SteadyStatePolicy is the policy used once a connection has been
// established at least once and is then lost: spec.md's unlimited,
// fixed-interval reconnection rule.
func SteadyStatePolicy(interval time.Duration) Policy {
	return Policy{
		InitialInterval: interval,
		MaxInterval:     interval,
		Multiplier:      1,
		JitterFraction:  0.1,
		MaxAttempts:     0,
	}
}

// BackoffCalculator computes the delay before the next attempt.
type BackoffCalculator struct {
	policy Policy
	rand   *rand.Rand
}

// NewBackoffCalculator returns a calculator for the given policy.
func NewBackoffCalculator(policy Policy) *BackoffCalculator {
	return &BackoffCalculator{
		policy: policy,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Delay returns the delay before attempt number n (1-indexed).
func (b *BackoffCalculator) Delay(attempt int) time.Duration {
	d := float64(b.policy.InitialInterval)
	for i := 1; i < attempt; i++ {
		d *= b.policy.Multiplier
		if d > float64(b.policy.MaxInterval) {
			d = float64(b.policy.MaxInterval)
			break
		}
	}
	if b.policy.JitterFraction > 0 {
		jitter := d * b.policy.JitterFraction
		d += (b.rand.Float64()*2 - 1) * jitter
	}
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}

// TimerProvider is the minimal timer seam Reconnector needs, kept local
// (rather than importing internal/connection.TimerProvider) to avoid a
// package dependency in either direction.
type TimerProvider interface {
	AfterFunc(d time.Duration, f func()) func()
}

type realTimerProvider struct{}

func (realTimerProvider) AfterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// RealTimerProvider is the production TimerProvider.
var RealTimerProvider TimerProvider = realTimerProvider{}

// Reconnector drives repeated attempts on a timer, honoring the policy's
// backoff curve, attempt cap, and pause/resume/cancel controls — the same
// shape as the teacher's peer.Reconnector.
type Reconnector struct {
	policy  Policy
	backoff *BackoffCalculator
	timers  TimerProvider

	mu      sync.Mutex
	attempt int
	paused  bool
	cancel  func()
	running bool
}

// New constructs a Reconnector for the given policy.
func New(policy Policy, timers TimerProvider) *Reconnector {
	if timers == nil {
		timers = RealTimerProvider
	}
	return &Reconnector{
		policy:  policy,
		backoff: NewBackoffCalculator(policy),
		timers:  timers,
	}
}

// Start begins scheduling attempts. onAttempt is called on each tick; a
// nil return stops the reconnector (success). onExhausted is called if
// MaxAttempts is reached without success.
func (r *Reconnector) Start(onAttempt func(attempt int) error, onExhausted func()) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.attempt = 0
	r.mu.Unlock()

	r.scheduleNext(onAttempt, onExhausted)
}

func (r *Reconnector) scheduleNext(onAttempt func(attempt int) error, onExhausted func()) {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.attempt++
	attempt := r.attempt
	if r.policy.MaxAttempts > 0 && attempt > r.policy.MaxAttempts {
		r.running = false
		r.mu.Unlock()
		if onExhausted != nil {
			onExhausted()
		}
		return
	}
	delay := r.backoff.Delay(attempt)
	r.mu.Unlock()

	cancel := r.timers.AfterFunc(delay, func() {
		r.mu.Lock()
		paused := r.paused
		r.mu.Unlock()
		if paused {
			r.scheduleNext(onAttempt, onExhausted)
			return
		}
		if err := onAttempt(attempt); err != nil {
			r.scheduleNext(onAttempt, onExhausted)
			return
		}
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	})

	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()
}

// Pause suspends further attempts without losing the current attempt count.
func (r *Reconnector) Pause() {
	r.mu.Lock()
	r.paused = true
	r.mu.Unlock()
}

// Resume allows attempts to proceed again.
func (r *Reconnector) Resume() {
	r.mu.Lock()
	r.paused = false
	r.mu.Unlock()
}

// Cancel stops the current run of attempts; a later Start begins a new run.
func (r *Reconnector) Cancel() {
	r.mu.Lock()
	r.running = false
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Attempt returns the most recent attempt number (0 before Start).
func (r *Reconnector) Attempt() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempt
}
