package okhash

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"math/bits"
	"strconv"
)

// entropyStream is a growable buffer of pseudo-random bytes seeded with a
// digest. Every extension appends SHA-256(hex(buf) || decimal(size)), where
// buf is the whole stream so far. The hex re-encoding is part of the format:
// hashing the raw bytes instead produces different positions.
type entropyStream struct {
	buf  []byte
	size string
}

func newEntropyStream(seed []byte, size int64) *entropyStream {
	buf := make([]byte, len(seed), len(seed)+sha256.Size)
	copy(buf, seed)
	return &entropyStream{buf: buf, size: strconv.FormatInt(size, 10)}
}

// grow appends one more digest to the stream.
func (e *entropyStream) grow() {
	h := sha256.New()
	h.Write([]byte(hex.EncodeToString(e.buf)))
	h.Write([]byte(e.size))
	e.buf = h.Sum(e.buf)
}

// take returns the first n bytes of the stream, extending it as needed.
// Bytes already produced never change.
func (e *entropyStream) take(n int) []byte {
	for len(e.buf) < n {
		e.grow()
	}
	return e.buf[:n]
}

// nextPosition derives an offset in [0, size) from the current digest of
// state. Reading the digest does not modify state. size must be positive.
func nextPosition(state hash.Hash, size int64) int64 {
	addressBits := bits.Len64(uint64(size))
	bytesNeeded := (addressBits + 7) / 8

	stream := newEntropyStream(state.Sum(nil), size)

	var address uint64
	for _, b := range stream.take(bytesNeeded) {
		address = address<<8 | uint64(b)
	}
	return int64(address % uint64(size))
}
