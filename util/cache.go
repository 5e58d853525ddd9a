package util

import (
	"os"

	"github.com/xaled/okhash/okhash"
)

// SumCache holds the entries of an earlier scan, keyed by path. A nil
// *SumCache is valid and never hits.
type SumCache struct {
	k       int
	entries map[string]SumEntry
}

// NewSumCache indexes t, which was built with strength k.
func NewSumCache(t SumTable, k int) *SumCache {
	c := &SumCache{k: k, entries: make(map[string]SumEntry, len(t.entries))}
	for e := range t.Iterate {
		c.entries[e.Name] = e
	}
	return c
}

// Len returns the number of cached entries.
func (c *SumCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// SumEntry returns the entry for path at strength k. A cached entry is reused
// when the file still has the recorded size and modification time and the
// cache was built with at least k levels; the second result reports that.
// Otherwise the file is hashed again.
func (c *SumCache) SumEntry(path string, k int) (SumEntry, bool, error) {
	if c != nil && c.k >= k {
		if cached, ok := c.entries[path]; ok {
			info, err := os.Lstat(path)
			if err == nil && info.Mode().IsRegular() &&
				info.Size() == cached.FileSize && info.ModTime().Equal(cached.Modified) {
				cached.Sum = cached.Sum.Truncate(okhash.EffectiveK(cached.FileSize, k))
				return cached, true, nil
			}
		}
	}
	e, err := CreateSumEntry(path, k)
	return e, false, err
}
