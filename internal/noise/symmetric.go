package noise

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// symmetricState tracks the running chaining key and hash across a
// handshake, per the Noise Protocol Framework's SymmetricState object.
type symmetricState struct {
	ck      [32]byte // chaining key
	h       [32]byte // running handshake hash
	k       [32]byte // handshake-phase cipher key, once derived
	n       uint64   // handshake-phase nonce counter
	hasKey  bool
}

func newSymmetricState() *symmetricState {
	s := &symmetricState{}
	if len(protocolName) <= 32 {
		copy(s.h[:], protocolName)
	} else {
		sum := sha256.Sum256([]byte(protocolName))
		s.h = sum
	}
	s.ck = s.h
	return s
}

func (s *symmetricState) mixHash(data []byte) {
	h := sha256.New()
	h.Write(s.h[:])
	h.Write(data)
	copy(s.h[:], h.Sum(nil))
}

func (s *symmetricState) mixKey(ikm []byte) {
	ck, tempK := hkdf2(s.ck[:], ikm)
	s.ck = ck
	s.k = tempK
	s.n = 0
	s.hasKey = true
}

// mixKeyAndHash implements the PSK token: it mixes the PSK into both the
// chaining key and the handshake hash in one step.
func (s *symmetricState) mixKeyAndHash(ikm []byte) {
	ck, tempH, tempK := hkdf3(s.ck[:], ikm)
	s.ck = ck
	s.mixHash(tempH[:])
	s.k = tempK
	s.n = 0
	s.hasKey = true
}

func (s *symmetricState) encryptAndHash(plaintext []byte) ([]byte, error) {
	if !s.hasKey {
		s.mixHash(plaintext)
		return append([]byte(nil), plaintext...), nil
	}
	aead, err := chacha20poly1305.New(s.k[:])
	if err != nil {
		return nil, err
	}
	nonce := handshakeNonce(s.n)
	s.n++
	ciphertext := aead.Seal(nil, nonce[:], plaintext, s.h[:])
	s.mixHash(ciphertext)
	return ciphertext, nil
}

func (s *symmetricState) decryptAndHash(ciphertext []byte) ([]byte, error) {
	if !s.hasKey {
		s.mixHash(ciphertext)
		return append([]byte(nil), ciphertext...), nil
	}
	aead, err := chacha20poly1305.New(s.k[:])
	if err != nil {
		return nil, err
	}
	nonce := handshakeNonce(s.n)
	s.n++
	plaintext, err := aead.Open(nil, nonce[:], ciphertext, s.h[:])
	if err != nil {
		return nil, fmt.Errorf("noise: handshake decrypt: %w", err)
	}
	s.mixHash(ciphertext)
	return plaintext, nil
}

// split derives the two transport-phase cipher keys once the handshake
// completes. By NNpsk0 convention the initiator's send key is the
// responder's receive key, and vice versa.
func (s *symmetricState) split() (initiatorToResponder, responderToInitiator [32]byte) {
	return hkdf2(s.ck[:], nil)
}

// handshakeNonce encodes a handshake-phase message counter as a 12-byte
// little-endian nonce, per the Noise spec's cipher-nonce convention.
func handshakeNonce(n uint64) [12]byte {
	var nonce [12]byte
	for i := 0; i < 8; i++ {
		nonce[4+i] = byte(n >> (8 * i))
	}
	return nonce
}
