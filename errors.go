package sealmsg

import "errors"

var (
	// ErrIO is returned when a source cannot be read or a sink cannot be
	// written.
	ErrIO = errors.New("sealmsg: i/o failure")

	// ErrMalformedInput is returned when a sealed message cannot be parsed
	// into nonce, ciphertext and tag. Verification is not attempted.
	ErrMalformedInput = errors.New("sealmsg: malformed sealed message")

	// ErrAuthenticationFailed is returned when the authentication tag does not
	// verify. It carries no detail about which part of the message or key was
	// wrong.
	ErrAuthenticationFailed = errors.New("sealmsg: message authentication failed")

	// ErrEngineFailure is returned when the AEAD primitive or the random
	// source fails.
	ErrEngineFailure = errors.New("sealmsg: cipher engine failure")

	// ErrInvalidKey is returned when key material is not exactly KeySize
	// bytes.
	ErrInvalidKey = errors.New("sealmsg: invalid key")

	// ErrInputTooLarge is returned by the pipelines when the input exceeds
	// the read limit.
	ErrInputTooLarge = errors.New("sealmsg: input exceeds limit")

	// ErrUnknownCipher is returned for a cipher name that is not registered.
	ErrUnknownCipher = errors.New("sealmsg: unknown cipher")
)
