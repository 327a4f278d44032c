package reconnect

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeTimers runs AfterFunc callbacks immediately and synchronously so
// tests don't depend on real wall-clock time.
type fakeTimers struct{}

func (fakeTimers) AfterFunc(d time.Duration, f func()) func() {
	f()
	return func() {}
}

func TestReconnectorRetriesUntilSuccess(t *testing.T) {
	r := New(Policy{InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1, MaxAttempts: 5}, fakeTimers{})

	var mu sync.Mutex
	attempts := 0
	done := make(chan struct{})

	r.Start(func(attempt int) error {
		mu.Lock()
		attempts++
		mu.Unlock()
		if attempt < 3 {
			return errors.New("not yet")
		}
		close(done)
		return nil
	}, func() {
		t.Fatal("should not exhaust before success")
	})

	<-done
	mu.Lock()
	defer mu.Unlock()
	if attempts != 3 {
		t.Fatalf("got %d attempts, want 3", attempts)
	}
}

func TestReconnectorExhaustsAfterMaxAttempts(t *testing.T) {
	r := New(Policy{InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1, MaxAttempts: 2}, fakeTimers{})

	exhausted := make(chan struct{})
	r.Start(func(attempt int) error {
		return errors.New("always fails")
	}, func() {
		close(exhausted)
	})

	<-exhausted
}

func TestBackoffCalculatorCapsAtMaxInterval(t *testing.T) {
	b := NewBackoffCalculator(Policy{InitialInterval: time.Second, MaxInterval: 5 * time.Second, Multiplier: 2, JitterFraction: 0})
	d := b.Delay(10)
	if d != 5*time.Second {
		t.Fatalf("got %v, want capped at 5s", d)
	}
}
