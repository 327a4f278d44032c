package noise

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"testing"
	"time"
)

// respondHandshake plays the responder side of the same two-message
// exchange PerformHandshake drives, so tests can exercise a full handshake
// without a real ESPHome device.
func respondHandshake(conn net.Conn, psk [32]byte) (*Session, error) {
	ctx := context.Background()

	ss := newSymmetricState()
	ss.mixHash(Prologue)
	ss.mixKeyAndHash(psk[:])

	msg1, err := readHandshakeMessage(ctx, conn)
	if err != nil {
		return nil, err
	}
	if len(msg1) < KeySize {
		return nil, errShortMessage
	}
	var rePub [KeySize]byte
	copy(rePub[:], msg1[:KeySize])
	ss.mixHash(rePub[:])
	ss.mixKey(rePub[:])
	if _, err := ss.decryptAndHash(msg1[KeySize:]); err != nil {
		return nil, err
	}

	ephPriv, ephPub, err := generateEphemeral()
	if err != nil {
		return nil, err
	}
	ss.mixHash(ephPub[:])
	ss.mixKey(ephPub[:])

	shared, err := dh(ephPriv, rePub)
	if err != nil {
		return nil, err
	}
	ss.mixKey(shared[:])

	payload2, err := ss.encryptAndHash(nil)
	if err != nil {
		return nil, err
	}
	msg2 := append(append([]byte(nil), ephPub[:]...), payload2...)
	if err := writeHandshakeMessage(ctx, conn, msg2); err != nil {
		return nil, err
	}

	i2r, r2i := ss.split()
	// Responder's send/recv are the mirror of the initiator's.
	return &Session{send: newTransportCipher(r2i), recv: newTransportCipher(i2r)}, nil
}

var errShortMessage = fmt.Errorf("noise test: message too short")

func TestHandshakeProducesMatchingSessions(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	psk := [32]byte{1, 2, 3, 4}

	type result struct {
		session *Session
		err     error
	}
	clientCh := make(chan result, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s, err := PerformHandshake(ctx, clientConn, psk)
		clientCh <- result{s, err}
	}()

	serverSession, err := respondHandshake(serverConn, psk)
	if err != nil {
		t.Fatalf("server handshake: %v", err)
	}
	clientResult := <-clientCh
	if clientResult.err != nil {
		t.Fatalf("client handshake: %v", clientResult.err)
	}
	clientSession := clientResult.session

	plaintext := []byte("hello esphome")
	ciphertext, err := clientSession.SealFrame(plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	got, err := serverSession.OpenFrame(ciphertext)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("got %q, want %q", got, plaintext)
	}
}

func TestHandshakeFailsOnPSKMismatch(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	clientPSK := [32]byte{1}
	serverPSK := [32]byte{2}

	errCh := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err := PerformHandshake(ctx, clientConn, clientPSK)
		errCh <- err
	}()

	respondHandshake(serverConn, serverPSK)

	if err := <-errCh; err == nil {
		t.Fatalf("expected handshake to fail on PSK mismatch")
	}
}
