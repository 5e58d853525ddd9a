package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/xaled/okhash/checksum"
	"github.com/xaled/okhash/util"
)

// runSum prints one checksum line per input and returns the exit status.
func runSum(ctx context.Context, e *env, opts *sumOptions, args []string) int {
	names := args
	if len(names) == 0 {
		names = []string{util.StdinName}
	}

	jobs := opts.jobs
	if slices.Contains(names, util.StdinName) {
		// Standard input can only be consumed by one reader.
		jobs = 1
	}

	code := 0
	util.SumFiles(ctx, names, opts.k, jobs, e.summer.Sum, func(r util.FileResult) {
		if r.Err != nil {
			e.log.Debugw("hash failed", "file", r.Name, "error", r.Err)
			fmt.Fprintf(e.stderr, "okhash: %s\n", describeError(r.Name, r.Err))
			code = 1
			return
		}
		if r.Sum.Levels() < opts.k {
			e.log.Debugw("strength downgraded for small input", "file", r.Name, "requested", opts.k, "levels", r.Sum.Levels())
		}
		fmt.Fprint(e.stdout, checksum.FormatLine(r.Sum, r.Name, opts.zero))
	})
	return code
}
