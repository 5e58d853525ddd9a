// Package checksum reads and writes O(K)Hash checksum lists and verifies
// files against them.
//
// A checksum line is "HEX  NAME": the lowercase hex of an O(K)Hash, a space,
// a second space or a tab, and the file name. Names containing whitespace are
// not representable. Verification produces one Result per line; callers
// aggregate them with a Report to decide the overall outcome.
package checksum
