package sealmsg

import (
	"crypto/rand"
	"fmt"
	"io"
)

// SymmetricKey is a one-time secret for a single Seal or Open call. It is
// always exactly KeySize bytes.
type SymmetricKey struct {
	b []byte
}

// NewSymmetricKey copies b into a new key. b must be exactly KeySize bytes.
func NewSymmetricKey(b []byte) (SymmetricKey, error) {
	if len(b) != KeySize {
		return SymmetricKey{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(b), KeySize)
	}

	k := make([]byte, KeySize)
	copy(k, b)
	return SymmetricKey{b: k}, nil
}

// GenerateKey reads a fresh key from random. If random is nil,
// crypto/rand.Reader is used.
func GenerateKey(random io.Reader) (SymmetricKey, error) {
	if random == nil {
		random = rand.Reader
	}

	k := make([]byte, KeySize)
	if _, err := io.ReadFull(random, k); err != nil {
		return SymmetricKey{}, fmt.Errorf("%w: failed to generate key: %w", ErrEngineFailure, err)
	}
	return SymmetricKey{b: k}, nil
}

// Bytes returns a copy of the key material.
func (k SymmetricKey) Bytes() []byte {
	b := make([]byte, len(k.b))
	copy(b, k.b)
	return b
}

// Len returns the key length in bytes. The zero SymmetricKey has length 0.
func (k SymmetricKey) Len() int { return len(k.b) }

// Destroy overwrites the key material with zeros. The key is unusable
// afterwards.
func (k SymmetricKey) Destroy() {
	clear(k.b)
}

func (k SymmetricKey) String() string { return "SymmetricKey(redacted)" }

func (k SymmetricKey) GoString() string { return k.String() }

// ReadKey reads KeySize bytes of raw key material from r. A source that ends
// early or holds more than KeySize bytes is an error rather than a different
// key.
func ReadKey(r io.Reader) (SymmetricKey, error) {
	b := make([]byte, KeySize)
	defer clear(b)

	n, err := io.ReadFull(r, b)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		return SymmetricKey{}, fmt.Errorf("%w: key source holds %d bytes, want %d", ErrInvalidKey, n, KeySize)
	default:
		return SymmetricKey{}, fmt.Errorf("%w: failed to read key: %w", ErrIO, err)
	}

	var extra [1]byte
	switch n, err := io.ReadFull(r, extra[:]); {
	case n > 0:
		return SymmetricKey{}, fmt.Errorf("%w: key source holds more than %d bytes", ErrInvalidKey, KeySize)
	case err != io.EOF:
		return SymmetricKey{}, fmt.Errorf("%w: failed to read key: %w", ErrIO, err)
	}

	return NewSymmetricKey(b)
}

// KeyFromFile reads a key from the file at path, which must hold exactly
// KeySize bytes.
func KeyFromFile(path string) (key SymmetricKey, err error) {
	f, err := openFile(path)
	if err != nil {
		return SymmetricKey{}, err
	}
	defer func() {
		err = closeFile(f, path, err)
		if err != nil {
			key.Destroy()
			key = SymmetricKey{}
		}
	}()

	key, err = ReadKey(f)
	if err != nil {
		return SymmetricKey{}, fmt.Errorf("secret file %s: %w", path, err)
	}
	return key, nil
}
