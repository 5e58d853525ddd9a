package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/xaled/okhash/okhash"
	"github.com/xaled/okhash/util"
)

type dupesOptions struct {
	k        int
	jobs     int
	json     bool
	report   string
	previous string
	styled   bool
}

// dupesReport is the JSON form of a dupes run. Files holds every scanned
// file, so a report can seed the next scan with --previous.
type dupesReport struct {
	Summary util.Summary  `json:"summary"`
	Groups  []util.Group  `json:"groups"`
	Files   util.SumTable `json:"files"`
}

// NewDupesCmd creates and returns the dupes subcommand for okhash-util.
// It hashes every regular file below the given paths and lists the files
// whose checksums match.
func NewDupesCmd() *cobra.Command {
	var opts dupesOptions

	cmd := &cobra.Command{
		Use:   "dupes [PATH]...",
		Short: "Find files with matching checksums",
		Long: `Find files with matching O(K)Hash checksums below a set of paths.

Every regular file below each PATH (default the current directory) is
hashed. Files of the same size whose checksums compare equal are listed
together. Lower strengths are faster and may group files that only share
the sampled blocks, so use -K to trade speed for certainty.

With --previous, sums recorded in an earlier --report are reused for files
whose size and modification time have not changed, provided that report
was made with at least the requested strength.`,
		Example: `  okhash-util dupes ~/Photos
  okhash-util dupes -K 3 -j 8 --report scan.json --previous scan.json /srv/data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			opts.k = intFlag(cmd, "strength", e.cfg.DefaultK)
			opts.jobs = intFlag(cmd, "jobs", e.cfg.Jobs)
			opts.styled = isTerminal(e.stdout)
			if len(args) == 0 {
				args = []string{"."}
			}
			return runDupes(cmd.Context(), e, opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.k, "strength", "K", okhash.DefaultK, "Number of O(K)Hash levels to compute")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 1, "Number of files to hash concurrently (0 means one per CPU)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the groups and summary as JSON")
	cmd.Flags().StringVar(&opts.report, "report", "", "Also write the JSON report to this file")
	cmd.Flags().StringVar(&opts.previous, "previous", "", "Reuse unchanged sums from this earlier report (a missing file is ignored)")

	return cmd
}

func runDupes(ctx context.Context, e *env, opts dupesOptions, roots []string) error {
	if opts.k < 1 {
		return fmt.Errorf("invalid -K %d: %w", opts.k, okhash.ErrInvalidK)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cache, err := loadPrevious(e, opts.previous)
	if err != nil {
		return err
	}
	files, err := util.WalkFiles(roots)
	if err != nil {
		return err
	}
	e.log.Infow("scanning", "files", len(files), "k", opts.k, "jobs", opts.jobs, "cached", cache.Len())

	var (
		mu      sync.Mutex
		entries = make(map[string]util.SumEntry, len(files))
		sums    util.SumTable
		skipped int
		reused  int
	)
	sum := func(name string, k int) (okhash.Sum, error) {
		entry, hit, err := cache.SumEntry(name, k)
		if err != nil {
			return nil, err
		}
		mu.Lock()
		entries[name] = entry
		if hit {
			reused++
		}
		mu.Unlock()
		return entry.Sum, nil
	}
	util.SumFiles(ctx, files, opts.k, opts.jobs, sum, func(r util.FileResult) {
		if r.Err != nil {
			skipped++
			e.log.Warnw("skipping file", "path", r.Name, "error", r.Err)
			return
		}
		mu.Lock()
		sums.Add(entries[r.Name])
		mu.Unlock()
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	if reused > 0 {
		e.log.Infow("reused previous sums", "files", reused)
	}

	summary := sums.Summarize(opts.k)
	groups := sums.Groups()
	report := dupesReport{
		Summary: summary,
		Groups:  groups,
		Files:   sums,
	}
	if report.Groups == nil {
		report.Groups = []util.Group{}
	}
	if opts.report != "" {
		if err := util.WriteJSONFile(opts.report, report); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		e.log.Debugw("wrote report", "path", opts.report)
	}

	if opts.json {
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printDupes(e, opts, report, skipped)
	return nil
}

// loadPrevious reads the files table of an earlier report. A missing report
// yields an empty cache, so --report and --previous can name the same file.
func loadPrevious(e *env, path string) (*util.SumCache, error) {
	if path == "" {
		return nil, nil
	}
	var prev dupesReport
	err := util.ReadJSONFile(path, &prev)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		e.log.Debugw("no previous report", "path", path)
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read previous report %s: %w", path, err)
	}
	return util.NewSumCache(prev.Files, prev.Summary.K), nil
}

func printDupes(e *env, opts dupesOptions, report dupesReport, skipped int) {
	s := report.Summary
	if len(report.Groups) > 0 {
		tw := groupTable(opts.styled)
		for _, g := range report.Groups {
			tw.AppendRow(table.Row{
				g.Label,
				humanize.Bytes(uint64(g.FileSize)),
				len(g.Names),
				strings.Join(g.Names, "\n"),
			})
		}
		fmt.Fprintln(e.stdout, tw.Render())
	}

	fmt.Fprintf(e.stdout, "%d %s scanned (%s) at K=%d\n",
		s.TotalFileCount, plural(s.TotalFileCount, "file", "files"), humanize.Bytes(uint64(s.TotalSize)), s.K)
	if s.GroupCount == 0 {
		fmt.Fprintln(e.stdout, "no duplicates found")
	} else {
		fmt.Fprintf(e.stdout, "%d duplicate %s in %d %s, %s reclaimable\n",
			s.DuplicateFileCount, plural(s.DuplicateFileCount, "file", "files"),
			s.GroupCount, plural(s.GroupCount, "group", "groups"),
			humanize.Bytes(uint64(s.ReclaimableSize)))
	}
	if skipped > 0 {
		fmt.Fprintf(e.stderr, "okhash-util: %d %s skipped\n", skipped, plural(skipped, "file", "files"))
	}
}
