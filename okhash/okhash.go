package okhash

import (
	"bytes"
	"crypto/sha256"
	"io"
	"os"
	"strings"
)

const (
	// DefaultK is the strength used when the caller has no preference.
	DefaultK = 2

	// DigestSize is the length in bytes of one level of an O(K)Hash.
	DigestSize = sha256.Size
)

type options struct {
	size      int64
	sizeKnown bool
}

// Option configures a single computation.
type Option func(*options)

// WithSize supplies the input size so that Compute does not have to seek to
// the end of the source to find it.
func WithSize(size int64) Option {
	return func(o *options) {
		o.size = size
		o.sizeKnown = true
	}
}

// EffectiveK returns the number of levels an input of size bytes produces
// when k levels are requested: the first level whose base size is at least
// size, or k when every requested level is smaller than the input.
// An empty input always produces a single level.
func EffectiveK(size int64, k int) int {
	for level := 1; level <= k; level++ {
		if size <= baseSize(level) {
			return level
		}
	}
	return k
}

// Compute returns the O(K)Hash of the content of r with k requested levels.
//
// The result holds between 1 and k digests and depends only on the content of
// r and on k. r is rewound before every level; its final position is
// unspecified. Read and seek errors are returned as-is and no partial result
// is produced.
func Compute(r io.ReadSeeker, k int, opts ...Option) (Sum, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if r == nil {
		return nil, ErrNilSource
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	size := o.size
	if !o.sizeKnown {
		end, err := r.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, err
		}
		size = end
	}
	if size < 0 {
		return nil, ErrNegativeSize
	}

	levels := EffectiveK(size, k)
	sum := make(Sum, 0, levels*DigestSize)
	buf := make([]byte, chunkSize)

	for level := 1; level <= levels; level++ {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		d, err := levelDigest(r, level, size, buf)
		if err != nil {
			return nil, err
		}
		sum = append(sum, d[:]...)
	}
	return sum, nil
}

// ComputeBytes returns the O(K)Hash of b.
func ComputeBytes(b []byte, k int) (Sum, error) {
	return Compute(bytes.NewReader(b), k, WithSize(int64(len(b))))
}

// ComputeString returns the O(K)Hash of the UTF-8 bytes of s.
func ComputeString(s string, k int) (Sum, error) {
	return Compute(strings.NewReader(s), k, WithSize(int64(len(s))))
}

// ComputeFile opens the file at path and returns its O(K)Hash.
func ComputeFile(path string, k int) (Sum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Compute(f, k)
}
