package checksum

import (
	"errors"
	"io/fs"

	"github.com/xaled/okhash/okhash"
)

// Status is the outcome of verifying one listed file.
type Status int

const (
	StatusOK Status = iota
	StatusFailed
	StatusReadError
	StatusMissing
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusFailed:
		return "FAILED"
	case StatusReadError, StatusMissing:
		return "FAILED open or read"
	default:
		return "unknown"
	}
}

// SumFunc computes the O(K)Hash of the named file with k levels.
type SumFunc func(name string, k int) (okhash.Sum, error)

// Result is the outcome of verifying a single entry.
type Result struct {
	Filename string
	Status   Status
	Expected okhash.Sum
	Actual   okhash.Sum
	Err      error
}

// Verify recomputes the sum of the entry's file at the strength of the listed
// sum and compares the two. A file that does not exist is StatusMissing; any
// other error is StatusReadError.
func Verify(e Entry, sum SumFunc) Result {
	res := Result{Filename: e.Filename, Expected: e.Sum}

	actual, err := sum(e.Filename, e.Sum.Levels())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		res.Status = StatusMissing
		res.Err = err
	case err != nil:
		res.Status = StatusReadError
		res.Err = err
	case okhash.Compare(e.Sum, actual):
		res.Status = StatusOK
		res.Actual = actual
	default:
		res.Status = StatusFailed
		res.Actual = actual
	}
	return res
}

// Policy controls which conditions make a check fail.
type Policy struct {
	IgnoreMissing bool
	Strict        bool
}

// Report aggregates the results of checking one checksum list.
type Report struct {
	Lines      int
	Malformed  int
	OK         int
	Mismatched int
	Unreadable int
	Missing    int
}

// AddMalformed records a line that could not be parsed.
func (r *Report) AddMalformed() {
	r.Lines++
	r.Malformed++
}

// Add records the result of verifying a well formed line.
func (r *Report) Add(res Result) {
	r.Lines++
	switch res.Status {
	case StatusOK:
		r.OK++
	case StatusFailed:
		r.Mismatched++
	case StatusReadError:
		r.Unreadable++
	case StatusMissing:
		r.Missing++
	}
}

// WellFormed returns the number of lines that parsed.
func (r Report) WellFormed() int {
	return r.Lines - r.Malformed
}

// Verified returns the number of files that were read and compared.
func (r Report) Verified() int {
	return r.OK + r.Mismatched
}

// Err returns nil when the checked list passes under p, and otherwise an
// error describing the first reason it does not. Mismatches and read errors
// are reported to the user per line, so they only yield a generic failure.
func (r Report) Err(p Policy) error {
	switch {
	case r.WellFormed() == 0:
		return ErrNoValidLines
	case p.IgnoreMissing && r.Verified() == 0 && r.Unreadable == 0:
		return ErrNoneVerified
	case r.Mismatched > 0, r.Unreadable > 0:
		return ErrVerifyFailed
	case r.Missing > 0 && !p.IgnoreMissing:
		return ErrVerifyFailed
	case r.Malformed > 0 && p.Strict:
		return ErrMalformedLine
	}
	return nil
}
