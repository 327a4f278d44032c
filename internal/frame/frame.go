// Package frame implements the ESPHome Native API plaintext wire framing:
// a one-byte preamble, a varint payload length, a varint message type, and
// the payload itself. Encode is pure and stateless; Decoder is the
// stateful streaming counterpart that accumulates partial reads.
package frame

import (
	"errors"

	"github.com/LRuesink-WebArray/esphome-native-api/internal/wire"
)

// PreamblePlain marks an unencrypted frame. PreambleEncrypted marks a frame
// whose payload is a Noise-sealed ciphertext (see internal/noise), resolving
// spec Open Question (a): the post-handshake stream still uses frame
// preambles, just a different constant value than the plaintext variant.
const (
	PreamblePlain     byte = 0x00
	PreambleEncrypted byte = 0x01
)

// MaxPayloadSize bounds a single frame's payload to guard against a
// corrupt or malicious peer driving unbounded memory growth.
const MaxPayloadSize = 1 << 20 // 1 MiB

// ErrMessageTooLarge is returned when a declared payload length exceeds MaxPayloadSize.
var ErrMessageTooLarge = errors.New("frame: message exceeds maximum size")

// ErrMalformedVarint is returned when a varint does not terminate within 10 bytes.
var ErrMalformedVarint = errors.New("frame: malformed varint")

// Frame is one decoded protocol message: a type identifier and its raw
// (still wire-format-encoded) payload.
type Frame struct {
	Type    uint32
	Payload []byte
}

// Encode serializes a plaintext frame: preamble, length, type, payload, all
// in cleartext. Used only when no encryption is configured; Noise handshake
// messages carry their own framing, and encrypted frames use EncodeOpaque.
func Encode(preamble byte, msgType uint32, payload []byte) []byte {
	out := make([]byte, 0, 1+10+10+len(payload))
	out = append(out, preamble)
	out = wire.AppendVarint(out, uint64(len(payload)))
	out = wire.AppendVarint(out, uint64(msgType))
	out = append(out, payload...)
	return out
}

// EncodeOpaque serializes an encrypted frame: preamble, length, and an
// opaque ciphertext blob. The message type is never written in cleartext
// here — the caller (internal/connection) folds it into the plaintext it
// seals with internal/noise before calling this, so nothing but the
// ciphertext's length is visible on the wire once a Noise session is
// active.
func EncodeOpaque(preamble byte, ciphertext []byte) []byte {
	out := make([]byte, 0, 1+10+len(ciphertext))
	out = append(out, preamble)
	out = wire.AppendVarint(out, uint64(len(ciphertext)))
	out = append(out, ciphertext...)
	return out
}
