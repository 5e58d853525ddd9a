package util

import (
	"encoding/json"
	"os"
	"time"

	"github.com/xaled/okhash/version"
)

type Summary struct {
	OKHashVersion      string    `json:"okhash_version"`
	K                  int       `json:"k"`
	TotalFileCount     int       `json:"total_file_count"`
	TotalSize          int64     `json:"total_size"`
	GroupCount         int       `json:"group_count"`
	DuplicateFileCount int       `json:"duplicate_file_count"`
	ReclaimableSize    int64     `json:"reclaimable_size"`
	NewestFileTS       time.Time `json:"newest_file_ts"`
	OldestFileTS       time.Time `json:"oldest_file_ts"`
}

// Summarize reports totals for the table and for the duplicate groups found
// in it. k is the strength the table was built with.
func (t *SumTable) Summarize(k int) Summary {
	s := Summary{
		OKHashVersion:  version.GetVersion(),
		K:              k,
		TotalFileCount: t.Len(),
		TotalSize:      t.TotalSize(),
		NewestFileTS:   t.Newest(),
		OldestFileTS:   t.Oldest(),
	}
	for _, g := range t.Groups() {
		s.GroupCount++
		s.DuplicateFileCount += len(g.Names) - 1
		s.ReclaimableSize += g.Wasted()
	}
	return s
}

// WriteJSONFile writes any value as JSON to the specified file path.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSONFile decodes the JSON file at path into v.
func ReadJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
