package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/xaled/okhash/okhash"
	"golang.org/x/sync/errgroup"
)

// StdinName is the file name that refers to standard input.
const StdinName = "-"

// FileSum hashes the file at path with k requested levels.
func FileSum(path string, k int) (okhash.Sum, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrExpectedFile)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReaderSum(file, k)
}

// ReaderSum hashes the content of r with k requested levels. Regular files
// and other seekable readers are hashed in place; anything else is copied to
// a temporary file first, since sampling needs random access.
func ReaderSum(r io.Reader, k int) (okhash.Sum, error) {
	switch src := r.(type) {
	case *os.File:
		info, err := src.Stat()
		if err != nil {
			return nil, err
		}
		if info.Mode().IsRegular() {
			return okhash.Compute(src, k, okhash.WithSize(info.Size()))
		}
	case io.ReadSeeker:
		return okhash.Compute(src, k)
	}
	return spoolSum(r, k)
}

func spoolSum(r io.Reader, k int) (okhash.Sum, error) {
	spool, err := os.CreateTemp("", "okhash-spool-*")
	if err != nil {
		return nil, fmt.Errorf("create spool file: %w", err)
	}
	defer os.Remove(spool.Name())
	defer spool.Close()

	n, err := io.Copy(spool, r)
	if err != nil {
		return nil, err
	}
	return okhash.Compute(spool, k, okhash.WithSize(n))
}

// Summer hashes named inputs, reading StdinName from Stdin.
type Summer struct {
	Stdin io.Reader

	stdinTaken bool
}

// WithoutStdin returns a copy of s that fails with ErrStdinInUse for
// StdinName, for when standard input is already being read for something
// else.
func (s Summer) WithoutStdin() Summer {
	s.stdinTaken = true
	return s
}

// Sum hashes the named input with k requested levels.
func (s Summer) Sum(name string, k int) (okhash.Sum, error) {
	if name == StdinName {
		if s.stdinTaken {
			return nil, ErrStdinInUse
		}
		if s.Stdin == nil {
			return ReaderSum(os.Stdin, k)
		}
		return ReaderSum(s.Stdin, k)
	}
	return FileSum(name, k)
}

// FileResult is the outcome of hashing one named input.
type FileResult struct {
	Name string
	Sum  okhash.Sum
	Err  error
}

// SumFiles hashes names with up to jobs concurrent workers and calls emit
// once per name, in the order of names. jobs < 1 means one worker per CPU.
// Once ctx is done, inputs not yet started are reported with ctx.Err().
func SumFiles(ctx context.Context, names []string, k, jobs int, sum func(string, int) (okhash.Sum, error), emit func(FileResult)) {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	results := make([]FileResult, len(names))
	done := make([]chan struct{}, len(names))
	for i := range done {
		done[i] = make(chan struct{})
	}

	go func() {
		var g errgroup.Group
		g.SetLimit(jobs)
		for i, name := range names {
			g.Go(func() error {
				defer close(done[i])
				results[i].Name = name
				if err := ctx.Err(); err != nil {
					results[i].Err = err
					return nil
				}
				results[i].Sum, results[i].Err = sum(name, k)
				return nil
			})
		}
		g.Wait()
	}()

	for i := range names {
		<-done[i]
		emit(results[i])
	}
}

// WalkFiles returns the regular files found below roots, sorted by path.
// Symlinks and special files are skipped. A root that is itself a regular
// file is returned as-is.
func WalkFiles(roots []string) ([]string, error) {
	var files []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("error walking path %s: %w", path, err)
			}
			if d.IsDir() {
				return nil
			}
			if d.Type()&fs.ModeSymlink != 0 {
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// CreateSumEntry hashes the file at path and records its size and
// modification time.
func CreateSumEntry(path string, k int) (SumEntry, error) {
	var e SumEntry
	info, err := os.Lstat(path)
	if err != nil {
		return e, err
	}
	if info.Mode()&os.ModeSymlink == os.ModeSymlink {
		return e, errors.Join(ErrUnexpectedSymlink, fmt.Errorf("skipping unsupported symlink %s", path))
	}
	if info.IsDir() {
		return e, fmt.Errorf("%s: %w", path, ErrExpectedFile)
	}
	sum, err := FileSum(path, k)
	if err != nil {
		return e, err
	}
	e.Name = path
	e.FileSize = info.Size()
	e.Modified = info.ModTime()
	e.Sum = sum
	return e, nil
}
