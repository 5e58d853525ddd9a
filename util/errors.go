package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrUnexpectedSymlink = errors.New("expected file, got symlink")

	// Input errors
	ErrStdinInUse = errors.New("standard input is already in use")
)
