// Package sealmsg seals and opens single messages with a one-time 256-bit
// symmetric key.
//
// A sealed message is the concatenation nonce ‖ ciphertext ‖ tag, where the
// nonce is 12 random bytes chosen at seal time, the ciphertext has the same
// length as the plaintext, and the tag is 16 bytes. There is no header,
// version or length prefix, so a sealed message is always exactly 28 bytes
// longer than its plaintext.
//
// Keys are used for a single call and must be exactly 32 bytes. Reading a key
// from a missing or short file is an error.
package sealmsg
