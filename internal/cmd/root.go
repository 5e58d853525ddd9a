package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xaled/okhash/okhash"
	"github.com/xaled/okhash/version"
)

type sumOptions struct {
	k             int
	jobs          int
	check         bool
	zero          bool
	ignoreMissing bool
	quiet         bool
	status        bool
	strict        bool
	warn          bool
}

// NewRootCmd creates the okhash command: print or check O(K)Hash checksums,
// with the flags of the coreutils checksum tools.
func NewRootCmd() *cobra.Command {
	opts := &sumOptions{}

	rootCmd := &cobra.Command{
		Use:   "okhash [FILE]...",
		Short: "Print or check O(K)Hash checksums",
		Long: `Print or check O(K)Hash checksums.

An O(K)Hash is a size-aware fingerprint made of up to K SHA-256 digests.
Small files are hashed in full; large files are sampled, so hashing a
multi-gigabyte file at K=2 reads about a megabyte of it. Higher K reads
more of the file and produces a longer, stronger checksum.

With no FILE, or when FILE is -, read standard input.

Checksums of different strengths compare at the strength of the shorter
one, so a list written with -K 3 can be checked by any okhash.`,
		Example: `  okhash -K 3 *.iso > SUMS
  okhash -c SUMS
  find . -type f -print0 | xargs -0 okhash -j 8`,
		Version:      version.GetFullVersion(),
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			opts.k = intFlag(cmd, "strength", e.cfg.DefaultK)
			opts.jobs = intFlag(cmd, "jobs", e.cfg.Jobs)
			if !cmd.Flags().Changed("zero") {
				opts.zero = e.cfg.Zero
			}
			if err := opts.validate(); err != nil {
				return err
			}

			var code int
			if opts.check {
				code = runCheck(cmd.Context(), e, opts, args)
			} else {
				code = runSum(cmd.Context(), e, opts, args)
			}
			if code != 0 {
				e.log.Sync()
				exit(code)
			}
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.IntVarP(&opts.k, "strength", "K", okhash.DefaultK, "Number of O(K)Hash levels to compute")
	flags.IntVarP(&opts.jobs, "jobs", "j", 1, "Files to hash concurrently (0 means one per CPU)")
	flags.BoolVarP(&opts.check, "check", "c", false, "Read checksums from the FILEs and check them")
	flags.BoolVarP(&opts.zero, "zero", "z", false, "End each output line with NUL, not newline")
	flags.BoolVar(&opts.ignoreMissing, "ignore-missing", false, "Don't fail or report status for missing files")
	flags.BoolVar(&opts.quiet, "quiet", false, "Don't print OK for each successfully verified file")
	flags.BoolVar(&opts.status, "status", false, "Don't output anything, status code shows success")
	flags.BoolVar(&opts.strict, "strict", false, "Exit non-zero for improperly formatted checksum lines")
	flags.BoolVarP(&opts.warn, "warn", "w", false, "Warn about improperly formatted checksum lines")
	addCommonFlags(rootCmd, false)

	return rootCmd
}

var errCheckOnly = errors.New("option is meaningful only when verifying checksums")

func (o *sumOptions) validate() error {
	if o.k < 1 {
		return fmt.Errorf("invalid -K %d: %w", o.k, okhash.ErrInvalidK)
	}
	if o.jobs < 0 {
		return fmt.Errorf("invalid --jobs %d: must not be negative", o.jobs)
	}
	if !o.check {
		switch {
		case o.ignoreMissing:
			return fmt.Errorf("--ignore-missing: %w", errCheckOnly)
		case o.quiet:
			return fmt.Errorf("--quiet: %w", errCheckOnly)
		case o.status:
			return fmt.Errorf("--status: %w", errCheckOnly)
		case o.strict:
			return fmt.Errorf("--strict: %w", errCheckOnly)
		case o.warn:
			return fmt.Errorf("--warn: %w", errCheckOnly)
		}
	}
	return nil
}
