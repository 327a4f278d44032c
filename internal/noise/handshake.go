package noise

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"
)

var timeZero time.Time

// Session holds the two transport-phase ciphers produced by a completed
// handshake: one for frames this client sends, one for frames it receives.
type Session struct {
	send *TransportCipher
	recv *TransportCipher
}

// SealFrame encrypts one frame payload for transmission.
func (s *Session) SealFrame(payload []byte) ([]byte, error) {
	return s.send.Seal(payload)
}

// OpenFrame decrypts one received frame payload.
func (s *Session) OpenFrame(ciphertext []byte) ([]byte, error) {
	return s.recv.Open(ciphertext)
}

// Close zeroes both directions' key material.
func (s *Session) Close() {
	s.send.Zero()
	s.recv.Zero()
}

// PerformHandshake drives the two-message Noise_NNpsk0_25519_ChaChaPoly_SHA256
// handshake as the initiator (this client always dials; ESPHome devices
// never initiate). psk is the pre-shared key configured out of band
// (ConnectionConfig.NoisePSK). Per SPEC_FULL.md's resolution of Open
// Question (a), handshake messages are framed as uint16BE(length) || bytes
// directly on conn, with no frame-codec preamble.
func PerformHandshake(ctx context.Context, conn net.Conn, psk [32]byte) (*Session, error) {
	ss := newSymmetricState()
	ss.mixHash(Prologue)
	ss.mixKeyAndHash(psk[:])

	ephPriv, ephPub, err := generateEphemeral()
	if err != nil {
		return nil, err
	}
	ss.mixHash(ephPub[:])
	ss.mixKey(ephPub[:])

	payload1, err := ss.encryptAndHash(nil)
	if err != nil {
		return nil, fmt.Errorf("noise: encode message 1: %w", err)
	}
	msg1 := append(append([]byte(nil), ephPub[:]...), payload1...)
	if err := writeHandshakeMessage(ctx, conn, msg1); err != nil {
		return nil, fmt.Errorf("noise: send message 1: %w", err)
	}

	msg2, err := readHandshakeMessage(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("noise: receive message 2: %w", err)
	}
	if len(msg2) < KeySize {
		return nil, fmt.Errorf("noise: message 2 too short (%d bytes)", len(msg2))
	}
	var rePub [KeySize]byte
	copy(rePub[:], msg2[:KeySize])
	ss.mixHash(rePub[:])
	ss.mixKey(rePub[:])

	shared, err := dh(ephPriv, rePub)
	if err != nil {
		return nil, fmt.Errorf("noise: ee: %w", err)
	}
	ss.mixKey(shared[:])

	if _, err := ss.decryptAndHash(msg2[KeySize:]); err != nil {
		return nil, fmt.Errorf("noise: decode message 2 payload: %w", err)
	}

	i2r, r2i := ss.split()
	return &Session{
		send: newTransportCipher(i2r),
		recv: newTransportCipher(r2i),
	}, nil
}

func writeHandshakeMessage(ctx context.Context, conn net.Conn, msg []byte) error {
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetWriteDeadline(deadline)
		defer conn.SetWriteDeadline(timeZero)
	}
	var hdr [2]byte
	binary.BigEndian.PutUint16(hdr[:], uint16(len(msg)))
	if _, err := conn.Write(hdr[:]); err != nil {
		return err
	}
	_, err := conn.Write(msg)
	return err
}

func readHandshakeMessage(ctx context.Context, conn net.Conn) ([]byte, error) {
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		defer conn.SetReadDeadline(timeZero)
	}
	var hdr [2]byte
	if _, err := io.ReadFull(conn, hdr[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint16(hdr[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(conn, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
