package noise

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// TransportCipher seals and opens application-phase frame payloads with a
// single derived key and a monotonically increasing nonce counter, mirroring
// internal/crypto's SessionKey but split into one instance per direction
// (as Noise's Split() produces) instead of the teacher's single bidirectional
// key with a direction-flag bit, since after Split each side already holds
// two independently-keyed ciphers.
type TransportCipher struct {
	mu     sync.Mutex
	key    [32]byte
	nonce  uint64
	closed bool
}

func newTransportCipher(key [32]byte) *TransportCipher {
	return &TransportCipher{key: key}
}

// Seal encrypts plaintext with the next nonce and empty associated data,
// per ESPHome's Noise transport framing.
func (c *TransportCipher) Seal(plaintext []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("noise: cipher closed")
	}
	aead, err := chacha20poly1305.New(c.key[:])
	if err != nil {
		return nil, err
	}
	nonce := handshakeNonce(c.nonce)
	c.nonce++
	return aead.Seal(nil, nonce[:], plaintext, nil), nil
}

// Open decrypts a ciphertext produced by the peer's matching Seal call, in
// strict arrival order (ESPHome's single TCP stream guarantees ordering,
// so the nonce advances in lockstep with the peer's send counter).
func (c *TransportCipher) Open(ciphertext []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("noise: cipher closed")
	}
	aead, err := chacha20poly1305.New(c.key[:])
	if err != nil {
		return nil, err
	}
	nonce := handshakeNonce(c.nonce)
	c.nonce++
	plaintext, err := aead.Open(nil, nonce[:], ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("noise: decrypt: %w", err)
	}
	return plaintext, nil
}

// Zero destroys the key material, following internal/crypto's ZeroKey
// convention for session teardown.
func (c *TransportCipher) Zero() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.key {
		c.key[i] = 0
	}
	c.closed = true
}
