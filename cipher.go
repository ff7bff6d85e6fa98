package sealmsg

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"sort"

	"golang.org/x/crypto/chacha20poly1305"
)

// DefaultCipher is used when a Sealer does not name one. Its combined form
// matches AES.GCM.SealedBox.combined from Apple CryptoKit.
const DefaultCipher = "aes-256-gcm"

type mode struct {
	description string
	aead        func(key []byte) (cipher.AEAD, error)
}

// Every registered mode takes a KeySize key and uses NonceSize nonces and
// TagSize tags, so the combined format is the same for all of them.
var modes = map[string]mode{
	"aes-256-gcm": {
		description: "AES 256-bit in Galois Counter Mode",
		aead: func(key []byte) (cipher.AEAD, error) {
			b, err := aes.NewCipher(key)
			if err != nil {
				return nil, err
			}

			return cipher.NewGCM(b)
		},
	},
	"chacha20-poly1305": {
		description: "ChaCha20 with Poly1305 MAC",
		aead:        chacha20poly1305.New,
	},
}

// CipherInfo describes a registered AEAD.
type CipherInfo struct {
	Name        string
	Description string
}

// Ciphers returns the registered AEADs sorted by name.
func Ciphers() []CipherInfo {
	infos := make([]CipherInfo, 0, len(modes))
	for name, m := range modes {
		infos = append(infos, CipherInfo{Name: name, Description: m.description})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// newAEAD returns the named AEAD keyed with key.
func newAEAD(name string, key SymmetricKey) (cipher.AEAD, error) {
	if name == "" {
		name = DefaultCipher
	}

	m, ok := modes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCipher, name)
	}
	if key.Len() != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, key.Len(), KeySize)
	}

	aead, err := m.aead(key.b)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create %s: %w", ErrEngineFailure, name, err)
	}
	if aead.NonceSize() != NonceSize || aead.Overhead() != TagSize {
		return nil, fmt.Errorf("%w: %s does not use %d byte nonces and %d byte tags", ErrEngineFailure, name, NonceSize, TagSize)
	}

	return aead, nil
}
