package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/xaled/okhash/okhash"
	"github.com/xaled/okhash/util"
)

type compareOptions struct {
	k       int
	digests bool
	full    bool
	styled  bool
}

// NewCompareCmd creates and returns the compare subcommand for okhash-util.
// It compares two files, or two hex checksums, level by level.
func NewCompareCmd() *cobra.Command {
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "compare A B",
		Short: "Compare two files or checksums level by level",
		Long: `Compare two files, or two hex checksums with --digests, level by level.

Every level present in both is shown side by side. The overall verdict
uses the levels the two have in common, so a K=1 checksum matches a K=3
checksum of the same content. Exits with status 1 when they differ.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			opts.k = intFlag(cmd, "strength", e.cfg.DefaultK)
			opts.styled = isTerminal(e.stdout)
			same, err := runCompare(e, opts, args[0], args[1])
			if err != nil {
				return err
			}
			if !same {
				e.log.Sync()
				exit(1)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.k, "strength", "K", okhash.DefaultK, "Number of O(K)Hash levels to compute for files")
	cmd.Flags().BoolVar(&opts.digests, "digests", false, "Treat A and B as hex checksums instead of file names")
	cmd.Flags().BoolVar(&opts.full, "full", false, "Show whole digests instead of a 16 character prefix")

	return cmd
}

type compareSide struct {
	name string
	sum  okhash.Sum
	size int64
}

func resolveSide(summer util.Summer, name string, opts compareOptions) (compareSide, error) {
	side := compareSide{name: name, size: -1}
	if opts.digests {
		sum, err := okhash.ParseHex(name)
		if err != nil {
			return side, fmt.Errorf("%s: %w", name, err)
		}
		side.sum = sum
		return side, nil
	}
	if opts.k < 1 {
		return side, fmt.Errorf("invalid -K %d: %w", opts.k, okhash.ErrInvalidK)
	}

	sum, err := summer.Sum(name, opts.k)
	if err != nil {
		return side, errors.New(describeError(name, err))
	}
	side.sum = sum
	if name != util.StdinName {
		if info, err := os.Stat(name); err == nil {
			side.size = info.Size()
		}
	}
	return side, nil
}

// runCompare prints the comparison of a and b and reports whether they match.
func runCompare(e *env, opts compareOptions, a, b string) (bool, error) {
	summer := e.summer
	left, err := resolveSide(summer, a, opts)
	if err != nil {
		return false, err
	}
	if !opts.digests && a == util.StdinName {
		summer = summer.WithoutStdin()
	}
	right, err := resolveSide(summer, b, opts)
	if err != nil {
		return false, err
	}

	for _, side := range []compareSide{left, right} {
		if side.size >= 0 {
			fmt.Fprintf(e.stdout, "%s: %s, %d %s\n", side.name, humanize.Bytes(uint64(side.size)),
				side.sum.Levels(), plural(side.sum.Levels(), "level", "levels"))
		}
	}

	tw := levelTable(opts.styled)
	for _, m := range okhash.Diff(left.sum, right.sum) {
		tw.AppendRow(table.Row{
			m.Level,
			digestCell(m.A, m.HasA, opts.full),
			digestCell(m.B, m.HasB, opts.full),
			matchCell(m),
		})
	}
	fmt.Fprintln(e.stdout, tw.Render())

	common := okhash.CommonLevels(left.sum, right.sum)
	same := okhash.Compare(left.sum, right.sum)
	switch {
	case common == 0:
		fmt.Fprintln(e.stdout, "DIFFERENT: nothing to compare")
	case same:
		fmt.Fprintf(e.stdout, "MATCH at K=%d\n", common)
	default:
		fmt.Fprintf(e.stdout, "DIFFERENT at K=%d\n", common)
	}
	e.log.Debugw("compared", "a", a, "b", b, "common_levels", common, "match", same)
	return same, nil
}

func digestCell(d okhash.Digest, ok, full bool) string {
	if !ok {
		return "-"
	}
	s := hex.EncodeToString(d[:])
	if !full {
		s = s[:16]
	}
	return s
}

func matchCell(m okhash.LevelMatch) string {
	switch {
	case m.Equal:
		return "match"
	case m.Compared():
		return "differs"
	case m.HasA:
		return "only A"
	default:
		return "only B"
	}
}
