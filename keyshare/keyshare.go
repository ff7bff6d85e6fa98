// Package keyshare splits a one-time secret into shares using Shamir's Secret
// Sharing over GF(2^16), so that any threshold number of shares reconstructs
// the key and fewer reveal nothing about it.
//
// A share is a big endian sequence of 16-bit words: the x coordinate
// followed by one y value per key word. Shares of a 32-byte key are 34 bytes
// long and are exchanged as hexadecimal text, one share per line.
package keyshare

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wbrc/gf65536"
	"github.com/wbrc/sealmsg"
)

var (
	defaultField   = gf65536.Default
	defaultRandSrc = rand.Reader
)

// maxShares is the number of distinct non-zero x coordinates in GF(2^16).
const maxShares = 1<<16 - 1

var (
	ErrInvalidParams = errors.New("keyshare: invalid threshold or share count")
	ErrInvalidShares = errors.New("keyshare: invalid shares")
)

// Share is one share of a split key.
type Share []byte

// String returns the share in hexadecimal.
func (s Share) String() string { return hex.EncodeToString(s) }

// ParseShare decodes a hexadecimal share.
func ParseShare(s string) (Share, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShares, err)
	}
	return Share(b), nil
}

// ReadShares reads hexadecimal shares from r, one per line. Blank lines are
// skipped.
func ReadShares(r io.Reader) ([]Share, error) {
	var shares []Share
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}

		share, err := ParseShare(line)
		if err != nil {
			return nil, fmt.Errorf("failed to read share %d: %w", len(shares)+1, err)
		}
		shares = append(shares, share)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shares: %w", err)
	}

	return shares, nil
}

// WriteShares writes shares to w in hexadecimal, one per line.
func WriteShares(w io.Writer, shares []Share) error {
	bw := bufio.NewWriter(w)
	for _, share := range shares {
		if _, err := fmt.Fprintf(bw, "%x\n", []byte(share)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Dealer splits and combines keys. A zero-value Dealer is ready to use with
// default settings: the field is gf65536.Default and the random source is
// crypto/rand.Reader. Shares must be combined with a Dealer using the same
// field they were split with.
type Dealer struct {
	F    gf65536.Field // the GF(2^16) field to use
	Rand io.Reader     // cryptographically secure random source
}

// Default is a zero-value Dealer ready to use with default settings.
var Default = new(Dealer)

// Split splits key into n shares such that any threshold of them recover it.
// 0 < threshold <= n <= 65535.
func (d *Dealer) Split(key sealmsg.SymmetricKey, threshold, n int) ([]Share, error) {
	if threshold < 1 || n < threshold || n > maxShares {
		return nil, fmt.Errorf("%w: threshold %d, count %d", ErrInvalidParams, threshold, n)
	}
	if key.Len() == 0 || key.Len()%2 != 0 {
		return nil, fmt.Errorf("%w: key length %d is not a positive multiple of 2", sealmsg.ErrInvalidKey, key.Len())
	}

	f, random := d.field(), d.rand()

	raw := key.Bytes()
	defer clear(raw)
	words := make([]uint16, len(raw)/2)
	defer clear(words)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(raw[2*i:])
	}

	xs, err := distinctXes(random, n)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to pick share coordinates: %w", sealmsg.ErrEngineFailure, err)
	}

	shares := make([]Share, n)
	for i, x := range xs {
		shares[i] = make(Share, 2+len(raw))
		binary.BigEndian.PutUint16(shares[i], x)
	}

	coeffs := make([]uint16, threshold)
	defer clear(coeffs)
	for w, word := range words {
		coeffs[0] = word
		if threshold > 1 {
			if err := binary.Read(random, binary.BigEndian, coeffs[1:]); err != nil {
				return nil, fmt.Errorf("%w: failed to draw polynomial: %w", sealmsg.ErrEngineFailure, err)
			}
		}

		for i, x := range xs {
			binary.BigEndian.PutUint16(shares[i][2+2*w:], evalPoly(f, coeffs, x))
		}
	}

	return shares, nil
}

// Combine recovers a key from shares. At least the threshold used at split
// time is needed; fewer shares produce a wrong key that fails to open any
// message rather than an error.
func (d *Dealer) Combine(shares []Share) (sealmsg.SymmetricKey, error) {
	if len(shares) == 0 {
		return sealmsg.SymmetricKey{}, fmt.Errorf("%w: no shares", ErrInvalidShares)
	}

	size := len(shares[0])
	if size < 4 || size%2 != 0 {
		return sealmsg.SymmetricKey{}, fmt.Errorf("%w: share length %d", ErrInvalidShares, size)
	}

	xs := make([]uint16, len(shares))
	seen := make(map[uint16]struct{}, len(shares))
	for i, share := range shares {
		if len(share) != size {
			return sealmsg.SymmetricKey{}, fmt.Errorf("%w: inconsistent share length", ErrInvalidShares)
		}

		xs[i] = binary.BigEndian.Uint16(share)
		if xs[i] == 0 {
			return sealmsg.SymmetricKey{}, fmt.Errorf("%w: share %d has x = 0", ErrInvalidShares, i+1)
		}
		if _, ok := seen[xs[i]]; ok {
			return sealmsg.SymmetricKey{}, fmt.Errorf("%w: duplicate share", ErrInvalidShares)
		}
		seen[xs[i]] = struct{}{}
	}

	f := d.field()
	basis := lagrangeBasis(f, xs)

	key := make([]byte, size-2)
	defer clear(key)
	ys := make([]uint16, len(shares))
	defer clear(ys)
	for off := 2; off < size; off += 2 {
		for i, share := range shares {
			ys[i] = binary.BigEndian.Uint16(share[off:])
		}
		binary.BigEndian.PutUint16(key[off-2:], interpolate(f, basis, ys))
	}

	return sealmsg.NewSymmetricKey(key)
}

// Split a key using the default dealer.
func Split(key sealmsg.SymmetricKey, threshold, n int) ([]Share, error) {
	return Default.Split(key, threshold, n)
}

// Combine shares using the default dealer.
func Combine(shares []Share) (sealmsg.SymmetricKey, error) {
	return Default.Combine(shares)
}

func (d *Dealer) field() gf65536.Field {
	if d.F == 0 {
		return defaultField
	}
	return d.F
}

func (d *Dealer) rand() io.Reader {
	if d.Rand == nil {
		return defaultRandSrc
	}
	return d.Rand
}

// returns n random distinct values of GF(2^16)\0
func distinctXes(random io.Reader, n int) ([]uint16, error) {
	xs := make([]uint16, 0, n)
	seen := make(map[uint16]struct{}, n)
	for len(xs) < n {
		var x uint16
		if err := binary.Read(random, binary.BigEndian, &x); err != nil {
			return nil, err
		}

		if x == 0 {
			continue
		}
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		xs = append(xs, x)
	}

	return xs, nil
}
