package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xaled/okhash/checksum"
	"github.com/xaled/okhash/util"
)

// runCheck verifies every checksum list in args and returns the exit status.
func runCheck(ctx context.Context, e *env, opts *sumOptions, args []string) int {
	lists := args
	if len(lists) == 0 {
		lists = []string{util.StdinName}
	}

	code := 0
	for _, name := range lists {
		if err := checkList(ctx, e, opts, name); err != nil {
			e.log.Debugw("check failed", "list", name, "error", err)
			code = 1
		}
	}
	return code
}

// checkList verifies the entries of one checksum list.
func checkList(ctx context.Context, e *env, opts *sumOptions, name string) error {
	var r io.Reader
	summer := e.summer
	if name == util.StdinName {
		r = e.stdin
		// The list occupies standard input, so "-" entries cannot be read.
		summer = summer.WithoutStdin()
	} else {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(e.stderr, "okhash: %s\n", describeError(name, err))
			return err
		}
		defer f.Close()
		r = f
	}

	var report checksum.Report
	err := checksum.ReadEntries(r, func(lineNo int, entry checksum.Entry, perr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if perr != nil {
			report.AddMalformed()
			e.log.Debugw("malformed checksum line", "list", name, "line", lineNo, "error", perr)
			if opts.warn {
				fmt.Fprintf(e.stderr, "okhash: %s: %d: %v\n", name, lineNo, checksum.ErrMalformedLine)
			}
			return nil
		}

		res := checksum.Verify(entry, summer.Sum)
		report.Add(res)
		printResult(e, opts, res)
		return nil
	})
	if err != nil {
		fmt.Fprintf(e.stderr, "okhash: %s\n", describeError(name, err))
		return err
	}

	verr := report.Err(checksum.Policy{IgnoreMissing: opts.ignoreMissing, Strict: opts.strict})
	if !opts.status {
		printWarnings(e.stderr, name, report, opts, verr)
	}
	return verr
}

func printResult(e *env, opts *sumOptions, res checksum.Result) {
	switch res.Status {
	case checksum.StatusMissing:
		if opts.ignoreMissing {
			return
		}
		fallthrough
	case checksum.StatusReadError:
		e.log.Debugw("listed file unreadable", "file", res.Filename, "error", res.Err)
		if opts.status {
			return
		}
		fmt.Fprintf(e.stderr, "okhash: %s\n", describeError(res.Filename, res.Err))
		fmt.Fprintf(e.stdout, "%s: %s\n", res.Filename, res.Status)
	case checksum.StatusFailed:
		e.log.Debugw("checksum mismatch", "file", res.Filename, "expected", res.Expected.Hex(), "actual", res.Actual.Hex())
		if !opts.status {
			fmt.Fprintf(e.stdout, "%s: %s\n", res.Filename, res.Status)
		}
	case checksum.StatusOK:
		if !opts.status && !opts.quiet {
			fmt.Fprintf(e.stdout, "%s: %s\n", res.Filename, res.Status)
		}
	}
}

func printWarnings(w io.Writer, name string, report checksum.Report, opts *sumOptions, verr error) {
	switch {
	case errors.Is(verr, checksum.ErrNoValidLines):
		fmt.Fprintf(w, "okhash: %s: %v\n", name, checksum.ErrNoValidLines)
		return
	case errors.Is(verr, checksum.ErrNoneVerified):
		fmt.Fprintf(w, "okhash: %s: %v\n", name, checksum.ErrNoneVerified)
	}

	if n := report.Malformed; n > 0 {
		fmt.Fprintf(w, "okhash: WARNING: %d %s improperly formatted\n", n, plural(n, "line is", "lines are"))
	}
	unread := report.Unreadable
	if !opts.ignoreMissing {
		unread += report.Missing
	}
	if unread > 0 {
		fmt.Fprintf(w, "okhash: WARNING: %d listed %s could not be read\n", unread, plural(unread, "file", "files"))
	}
	if n := report.Mismatched; n > 0 {
		fmt.Fprintf(w, "okhash: WARNING: %d computed %s did NOT match\n", n, plural(n, "checksum", "checksums"))
	}
}
