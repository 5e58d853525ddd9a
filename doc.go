// Package main provides the okhash command-line interface.
//
// okhash prints and checks O(K)Hash checksums with the interface of
// sha256sum. An O(K)Hash is a size-aware fingerprint made of up to K SHA-256
// digests: small inputs are hashed in full, large inputs are sampled at
// positions derived from their size, so fingerprinting a large file reads only
// a bounded part of it.
//
// Usage:
//
//	okhash [-K n] [-j n] [-z] [FILE]...
//	okhash -c [--ignore-missing] [--quiet] [--status] [--strict] [-w] [FILE]...
//
// The companion binary okhash-util (cmd/okhash-util) compares files level by
// level, finds duplicates and generates test files.
package main
