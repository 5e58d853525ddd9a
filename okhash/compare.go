package okhash

import "bytes"

// CommonLevels returns the number of whole levels present in both a and b.
func CommonLevels(a, b []byte) int {
	return min(len(a), len(b)) / DigestSize
}

// Compare reports whether a and b agree on every level they have in common.
// Sums of different strengths are compared at the strength of the shorter
// one. A sum holding no whole level never matches anything.
func Compare(a, b []byte) bool {
	n := CommonLevels(a, b) * DigestSize
	if n == 0 {
		return false
	}
	return bytes.Equal(a[:n], b[:n])
}

// LevelMatch describes one level of a side-by-side comparison.
type LevelMatch struct {
	Level int
	A, B  Digest
	HasA  bool
	HasB  bool
	Equal bool
}

// Compared reports whether the level is present in both sums.
func (m LevelMatch) Compared() bool {
	return m.HasA && m.HasB
}

// Diff lines up a and b level by level, up to the strength of the longer one.
// Levels present in only one of them are reported with Equal set to false.
func Diff(a, b Sum) []LevelMatch {
	n := max(a.Levels(), b.Levels())
	out := make([]LevelMatch, 0, n)
	for level := 1; level <= n; level++ {
		m := LevelMatch{Level: level}
		m.A, m.HasA = a.Level(level)
		m.B, m.HasB = b.Level(level)
		m.Equal = m.Compared() && m.A == m.B
		out = append(out, m)
	}
	return out
}
