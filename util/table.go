package util

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/taigrr/colorhash"
	"github.com/xaled/okhash/okhash"
)

type (
	SumEntry struct {
		FileSize int64      `json:"size"`     // size of the file in bytes
		Modified time.Time  `json:"modified"` // modification time of the file
		Name     string     `json:"name"`     // path of the file as scanned
		Sum      okhash.Sum `json:"sum"`      // O(K)Hash of the file content
	}
	SumTable struct {
		entries []SumEntry
		sorted  bool
	}
)

func (t *SumTable) UnmarshalJSON(data []byte) error {
	var aux struct {
		Entries []SumEntry `json:"entries"`
		Sorted  bool       `json:"sorted"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.entries = aux.Entries
	t.sorted = aux.Sorted
	return nil
}

func (t SumTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Entries []SumEntry `json:"entries"`
		Sorted  bool       `json:"sorted"`
	}{
		Entries: t.entries,
		Sorted:  t.sorted,
	})
}

func (t SumTable) Iterate(yield func(SumEntry) bool) {
	for _, entry := range t.entries {
		if !yield(entry) {
			return
		}
	}
}

func (t *SumTable) Add(e SumEntry) {
	t.sorted = false
	t.entries = append(t.entries, e)
}

// Sort orders entries by size, then sum, then name, so that files with equal
// sums end up next to each other.
func (t *SumTable) Sort() {
	sort.Sort(t)
	t.sorted = true
}

func (t *SumTable) Len() int {
	return len(t.entries)
}

func (t *SumTable) Swap(i, j int) {
	t.entries[i], t.entries[j] = t.entries[j], t.entries[i]
}

func (t *SumTable) Less(i, j int) bool {
	a, b := t.entries[i], t.entries[j]
	if a.FileSize != b.FileSize {
		return a.FileSize < b.FileSize
	}
	if c := slices.Compare(a.Sum, b.Sum); c != 0 {
		return c < 0
	}
	return a.Name < b.Name
}

// Group is a set of files whose sums compare equal.
type Group struct {
	Label    string     `json:"label"`
	FileSize int64      `json:"size"`
	Sum      okhash.Sum `json:"sum"`
	Names    []string   `json:"names"`
}

// Wasted returns the bytes taken by every copy but one.
func (g Group) Wasted() int64 {
	return g.FileSize * int64(len(g.Names)-1)
}

// Groups returns the sets of two or more files that have the same size and
// whose sums compare equal, ordered by size.
func (t *SumTable) Groups() []Group {
	if !t.sorted {
		t.Sort()
	}

	var groups []Group
	for i := 0; i < len(t.entries); {
		j := i + 1
		for j < len(t.entries) && sameContent(t.entries[i], t.entries[j]) {
			j++
		}
		if j-i > 1 {
			g := Group{
				Label:    GroupLabel(t.entries[i].Sum),
				FileSize: t.entries[i].FileSize,
				Sum:      t.entries[i].Sum,
			}
			for _, e := range t.entries[i:j] {
				g.Names = append(g.Names, e.Name)
			}
			groups = append(groups, g)
		}
		i = j
	}
	return groups
}

func sameContent(a, b SumEntry) bool {
	return a.FileSize == b.FileSize && okhash.Compare(a.Sum, b.Sum)
}

// GroupLabel derives a short, stable label for a sum from its first level,
// so that groups found at different strengths keep the same label.
// The label is a three digit bucket number followed by the first eight hex
// characters of the sum.
func GroupLabel(sum okhash.Sum) string {
	first := sum.Truncate(1).Hex()
	bucket := colorhash.HashString(first) % 1000
	if bucket < 0 {
		bucket = -bucket
	}
	prefix := first
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("%03d-%s", bucket, prefix)
}

// TotalSize returns the sum of the sizes of all entries.
func (t SumTable) TotalSize() int64 {
	var total int64
	for e := range t.Iterate {
		total += e.FileSize
	}
	return total
}

// Oldest returns the earliest modification time in the table.
func (t SumTable) Oldest() time.Time {
	var oldest time.Time
	for e := range t.Iterate {
		if oldest.IsZero() || e.Modified.Before(oldest) {
			oldest = e.Modified
		}
	}
	return oldest
}

// Newest does the opposite of Oldest.
func (t SumTable) Newest() time.Time {
	var newest time.Time
	for e := range t.Iterate {
		if e.Modified.After(newest) {
			newest = e.Modified
		}
	}
	return newest
}
