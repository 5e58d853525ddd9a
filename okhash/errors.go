package okhash

import "errors"

// Sentinel errors for package okhash.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Argument errors
	ErrInvalidK     = errors.New("K must be at least 1")
	ErrNilSource    = errors.New("input source cannot be nil")
	ErrNegativeSize = errors.New("input size cannot be negative")

	// Sum errors
	ErrMalformedSum = errors.New("malformed O(K)Hash: want hex of a positive multiple of 64 characters")
)
