package okhash

import (
	"encoding/hex"
	"fmt"
)

// Sum is an O(K)Hash: one or more level digests in level order.
type Sum []byte

// Levels returns the number of whole digests held in s.
func (s Sum) Levels() int {
	return len(s) / DigestSize
}

// Level returns the digest of level k (1-indexed).
func (s Sum) Level(k int) (Digest, bool) {
	var d Digest
	if k < 1 || k > s.Levels() {
		return d, false
	}
	copy(d[:], s[(k-1)*DigestSize:k*DigestSize])
	return d, true
}

// Truncate returns the first levels digests of s. It returns s unchanged when
// s holds no more than levels digests.
func (s Sum) Truncate(levels int) Sum {
	if levels < 0 {
		levels = 0
	}
	if levels >= s.Levels() {
		return s
	}
	return s[:levels*DigestSize]
}

// Hex returns the lowercase hexadecimal encoding of s.
func (s Sum) Hex() string {
	return hex.EncodeToString(s)
}

func (s Sum) String() string {
	return s.Hex()
}

// ParseHex decodes a hex-encoded O(K)Hash. The input must encode at least one
// whole level.
func ParseHex(s string) (Sum, error) {
	if len(s) == 0 || len(s)%(2*DigestSize) != 0 {
		return nil, fmt.Errorf("%w: got %d characters", ErrMalformedSum, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSum, err)
	}
	return Sum(b), nil
}

// MarshalText encodes s as lowercase hex.
func (s Sum) MarshalText() ([]byte, error) {
	return []byte(s.Hex()), nil
}

// UnmarshalText decodes hex produced by MarshalText.
func (s *Sum) UnmarshalText(text []byte) error {
	sum, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*s = sum
	return nil
}
