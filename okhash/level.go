package okhash

import (
	"crypto/sha256"
	"io"
	"math"
	"strconv"
)

// chunkSize is the read size used when a level hashes its input in full.
const chunkSize = 8 * 1024

// Digest is the SHA-256 output of a single level.
type Digest [sha256.Size]byte

// baseSize returns 2^(10k), the base size of level k. Levels whose base size
// does not fit in an int64 saturate at math.MaxInt64, which no input size can
// exceed.
func baseSize(k int) int64 {
	if 10*k >= 63 {
		return math.MaxInt64
	}
	return 1 << (10 * k)
}

// blockSize returns the sampled block size of level k: 2^(6k) rounded up to
// a whole KiB.
func blockSize(k int) int64 {
	return 1024 * ceilDiv(1<<(6*k), 1024)
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// fitsInFull reports whether an input of size bytes is hashed in full at a
// level with the given base size, i.e. size <= 2*base.
func fitsInFull(size, base int64) bool {
	return size-base <= base
}

// levelDigest computes the digest of level k. The source must be positioned
// at offset 0. buf is scratch space reused across reads. The source cursor is
// left wherever the last read ended.
func levelDigest(r io.ReadSeeker, k int, size int64, buf []byte) (Digest, error) {
	var d Digest
	base := baseSize(k)

	h := sha256.New()
	if fitsInFull(size, base) {
		if _, err := io.CopyBuffer(h, r, buf); err != nil {
			return d, err
		}
		h.Sum(d[:0])
		return d, nil
	}

	bs := blockSize(k)
	samples := ceilDiv(base, bs)

	// Seeding with the size keeps same-prefix inputs of different lengths apart.
	io.WriteString(h, strconv.FormatInt(size, 10))

	for range samples {
		pos := nextPosition(h, size)
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return d, err
		}
		// A block running past the end of the input is hashed short.
		if _, err := io.CopyBuffer(h, io.LimitReader(r, bs), buf); err != nil {
			return d, err
		}
	}
	h.Sum(d[:0])
	return d, nil
}
