package sealmsg

import (
	"crypto/rand"
	"fmt"
	"io"
)

var defaultRandSrc = rand.Reader

// Sealer seals and opens single messages. A zero-value Sealer is ready to use
// with default settings: the cipher is DefaultCipher and nonces are read from
// crypto/rand.Reader. A Sealer holds no state between calls and may be used
// concurrently.
type Sealer struct {
	Cipher string    // registered cipher name, see Ciphers
	Rand   io.Reader // cryptographically secure random source for nonces
}

// Default is a zero-value Sealer ready to use with default settings.
var Default = new(Sealer)

// Seal encrypts plaintext under key with a fresh random nonce and returns the
// sealed box. The nonce is never reused or supplied by the caller.
func (s *Sealer) Seal(plaintext []byte, key SymmetricKey) (*SealedBox, error) {
	aead, err := newAEAD(s.Cipher, key)
	if err != nil {
		return nil, err
	}

	box := new(SealedBox)
	if _, err := io.ReadFull(s.rand(), box.Nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: failed to generate nonce: %w", ErrEngineFailure, err)
	}

	sealed := aead.Seal(nil, box.Nonce[:], plaintext, nil)
	box.Ciphertext = sealed[:len(plaintext):len(plaintext)]
	copy(box.Tag[:], sealed[len(plaintext):])
	return box, nil
}

// Open verifies and decrypts box with key. No plaintext is returned unless the
// tag verifies. A failed verification always yields ErrAuthenticationFailed.
func (s *Sealer) Open(box *SealedBox, key SymmetricKey) ([]byte, error) {
	if box == nil {
		return nil, fmt.Errorf("%w: nil sealed box", ErrMalformedInput)
	}

	aead, err := newAEAD(s.Cipher, key)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(box.Ciphertext)+TagSize)
	sealed = append(sealed, box.Ciphertext...)
	sealed = append(sealed, box.Tag[:]...)

	plaintext, err := aead.Open(nil, box.Nonce[:], sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// OpenCombined opens a message in combined form (nonce ‖ ciphertext ‖ tag).
// Input shorter than Overhead fails with ErrMalformedInput before any
// verification.
func (s *Sealer) OpenCombined(combined []byte, key SymmetricKey) ([]byte, error) {
	box, err := ParseCombined(combined)
	if err != nil {
		return nil, err
	}
	return s.Open(box, key)
}

// OpenParts opens a message whose nonce, ciphertext and tag arrive separately.
func (s *Sealer) OpenParts(nonce, ciphertext, tag []byte, key SymmetricKey) ([]byte, error) {
	box, err := boxFromParts(nonce, ciphertext, tag)
	if err != nil {
		return nil, err
	}
	return s.Open(box, key)
}

func (s *Sealer) rand() io.Reader {
	if s.Rand == nil {
		return defaultRandSrc
	}
	return s.Rand
}

// Seal a message using the default sealer.
func Seal(plaintext []byte, key SymmetricKey) (*SealedBox, error) {
	return Default.Seal(plaintext, key)
}

// Open a sealed box using the default sealer.
func Open(box *SealedBox, key SymmetricKey) ([]byte, error) {
	return Default.Open(box, key)
}

// OpenCombined opens a combined message using the default sealer.
func OpenCombined(combined []byte, key SymmetricKey) ([]byte, error) {
	return Default.OpenCombined(combined, key)
}

// OpenParts opens a pre-split message using the default sealer.
func OpenParts(nonce, ciphertext, tag []byte, key SymmetricKey) ([]byte, error) {
	return Default.OpenParts(nonce, ciphertext, tag, key)
}
