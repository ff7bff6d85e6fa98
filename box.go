package sealmsg

import "fmt"

const (
	// KeySize is the size of a one-time secret in bytes.
	KeySize = 32
	// NonceSize is the size of the random nonce in bytes.
	NonceSize = 12
	// TagSize is the size of the authentication tag in bytes.
	TagSize = 16
	// Overhead is the number of bytes a sealed message adds to its plaintext.
	Overhead = NonceSize + TagSize
)

// SealedBox is a sealed message held as separate nonce, ciphertext and tag.
// The ciphertext has the same length as the plaintext it protects.
type SealedBox struct {
	Nonce      [NonceSize]byte
	Ciphertext []byte
	Tag        [TagSize]byte
}

// Combined returns the wire form of the box: nonce ‖ ciphertext ‖ tag.
func (b *SealedBox) Combined() []byte {
	out := make([]byte, 0, NonceSize+len(b.Ciphertext)+TagSize)
	out = append(out, b.Nonce[:]...)
	out = append(out, b.Ciphertext...)
	out = append(out, b.Tag[:]...)
	return out
}

// Len returns the length of the combined form.
func (b *SealedBox) Len() int { return Overhead + len(b.Ciphertext) }

// ParseCombined splits a combined sealed message into its parts. The first
// NonceSize bytes are the nonce, the last TagSize bytes the tag and
// everything in between the ciphertext. The returned box does not alias
// combined.
func ParseCombined(combined []byte) (*SealedBox, error) {
	if len(combined) < Overhead {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedInput, len(combined), Overhead)
	}

	b := new(SealedBox)
	copy(b.Nonce[:], combined[:NonceSize])
	b.Ciphertext = append([]byte{}, combined[NonceSize:len(combined)-TagSize]...)
	copy(b.Tag[:], combined[len(combined)-TagSize:])
	return b, nil
}

// boxFromParts builds a SealedBox from pre-split parts.
func boxFromParts(nonce, ciphertext, tag []byte) (*SealedBox, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce is %d bytes, want %d", ErrMalformedInput, len(nonce), NonceSize)
	}
	if len(tag) != TagSize {
		return nil, fmt.Errorf("%w: tag is %d bytes, want %d", ErrMalformedInput, len(tag), TagSize)
	}

	b := &SealedBox{Ciphertext: append([]byte{}, ciphertext...)}
	copy(b.Nonce[:], nonce)
	copy(b.Tag[:], tag)
	return b, nil
}
