// Package connection implements the Connection component: socket
// lifecycle, frame I/O, liveness, and the Idle/Connecting/Open/Reconnecting
// state machine, grounded on the teacher's internal/peer.Connection and
// internal/peer.Manager.
package connection

import "sync/atomic"

// State is one point in the connection lifecycle.
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateHandshakingNoise
	StateOpen
	StateReconnecting
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateHandshakingNoise:
		return "handshaking_noise"
	case StateOpen:
		return "open"
	case StateReconnecting:
		return "reconnecting"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// stateBox is an atomically-readable/writable State, mirroring the
// teacher's use of atomic.Int32 for Connection.state.
type stateBox struct {
	v atomic.Int32
}

func (b *stateBox) load() State {
	return State(b.v.Load())
}

func (b *stateBox) store(s State) {
	b.v.Store(int32(s))
}

// compareAndSwap atomically transitions the state iff it currently equals
// from, returning whether the transition happened.
func (b *stateBox) compareAndSwap(from, to State) bool {
	return b.v.CompareAndSwap(int32(from), int32(to))
}
