// Package okhash computes O(K)Hash fingerprints of byte streams.
//
// An O(K)Hash is the concatenation of up to K SHA-256 digests, one per
// resolution level. Level k is associated with a base size of 2^(10k) bytes.
// Inputs no larger than twice a level's base size are hashed in full at that
// level; larger inputs are sampled: a fixed number of fixed-size blocks is read
// from positions derived from the input size and the running digest, so the
// cost of a level does not grow with the size of the input.
//
// Inputs smaller than a level's base size stop the computation early, so an
// O(K)Hash may hold fewer than K levels. This downgrade is silent; use
// EffectiveK to learn how many levels a given size produces.
//
// Levels are prefix-stable: level 1 of a given input is identical whatever K
// was requested. Two sums can therefore be compared at the strength of the
// shorter one with Compare.
//
// A computation takes exclusive use of its source for the duration of the
// call. Sources must not be shared between concurrent computations.
package okhash
