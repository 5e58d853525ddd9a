package cmd

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Variants written next to every seeded file.
const (
	variantAppended  = "appended"
	variantTruncated = "truncated"
	variantByteFlip  = "byteflip"
)

var seedVariants = []string{variantAppended, variantTruncated, variantByteFlip}

var errInvalidSeed = errors.New("invalid seed options")

// randomSource feeds file contents and variant choices; replaced in tests.
var randomSource io.Reader = rand.Reader

type seedOptions struct {
	output   string
	size     int64
	count    int
	variants bool
	verbose  bool
}

// NewSeedCmd creates and returns the seed subcommand for okhash-util.
// It generates random files, and modified copies of them, to compare with
// okhash-util compare or okhash -c.
func NewSeedCmd() *cobra.Command {
	var (
		opts seedOptions
		size string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate random test files and modified variants",
		Long: `Generate random test files for exercising O(K)Hash comparisons.

Each file is named after a random UUID and filled with random bytes. Unless
--variants=false is given, three modified copies are written next to it:
  - appended: 1024 to 2048 random bytes added at the end
  - truncated: up to 1024 bytes removed from the end (never below 1000 bytes)
  - byteflip: one byte at a random offset replaced

The path of every file written is printed, one per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			n, err := humanize.ParseBytes(size)
			if err != nil {
				return fmt.Errorf("--size %q: %w", size, err)
			}
			opts.size = int64(n)
			return runSeed(e, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().StringVarP(&size, "size", "s", "4MiB", "Size of each generated file, e.g. 3000, 64KiB or 2MB")
	cmd.Flags().IntVarP(&opts.count, "count", "c", 1, "Number of files to generate")
	cmd.Flags().BoolVar(&opts.variants, "variants", true, "Also write appended, truncated and byteflip variants")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Report progress and sizes on stderr")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(e *env, opts seedOptions) error {
	if opts.size < 1 {
		return fmt.Errorf("%w: size must be positive", errInvalidSeed)
	}
	if opts.count < 1 {
		return fmt.Errorf("%w: count must be positive", errInvalidSeed)
	}
	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if opts.verbose {
		fmt.Fprintf(e.stderr, "Generating %d %s of %s in %s\n",
			opts.count, plural(opts.count, "file", "files"), humanize.IBytes(uint64(opts.size)), opts.output)
	}

	for i := range opts.count {
		base := filepath.Join(opts.output, uuid.New().String())
		name := base + ".bin"
		if err := writeRandomFile(name, opts.size); err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, name)
		if !opts.variants {
			continue
		}
		for _, v := range seedVariants {
			variant := base + "_" + v + ".bin"
			detail, err := writeVariant(name, variant, v, opts.size)
			if err != nil {
				return err
			}
			e.log.Debugw("wrote variant", "path", variant, "variant", v, "detail", detail)
			fmt.Fprintln(e.stdout, variant)
		}
		if opts.verbose {
			fmt.Fprintf(e.stderr, "Created %d/%d files\n", i+1, opts.count)
		}
	}
	return nil
}

func writeRandomFile(path string, size int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.CopyN(f, randomSource, size); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// writeVariant copies src to dst and applies the named modification. It
// returns a short description of what was changed.
func writeVariant(src, dst, variant string, size int64) (string, error) {
	if err := copyFile(src, dst); err != nil {
		return "", err
	}
	f, err := os.OpenFile(dst, os.O_RDWR, 0)
	if err != nil {
		return "", err
	}
	defer f.Close()

	switch variant {
	case variantAppended:
		extra, err := randInt64(1025)
		if err != nil {
			return "", err
		}
		extra += 1024
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			return "", err
		}
		if _, err := io.CopyN(f, randomSource, extra); err != nil {
			return "", err
		}
		return fmt.Sprintf("+%d bytes", extra), f.Close()
	case variantTruncated:
		cut, err := randInt64(1025)
		if err != nil {
			return "", err
		}
		newSize := min(max(size-cut, 1000), size)
		if err := f.Truncate(newSize); err != nil {
			return "", err
		}
		return fmt.Sprintf("%d bytes", newSize), f.Close()
	case variantByteFlip:
		index, err := randInt64(size)
		if err != nil {
			return "", err
		}
		delta, err := randInt64(255)
		if err != nil {
			return "", err
		}
		old := make([]byte, 1)
		if _, err := f.ReadAt(old, index); err != nil {
			return "", err
		}
		// xor with a non-zero value so the byte always changes
		flipped := []byte{old[0] ^ byte(1+delta)}
		if _, err := f.WriteAt(flipped, index); err != nil {
			return "", err
		}
		return fmt.Sprintf("offset %d", index), f.Close()
	}
	return "", fmt.Errorf("%w: unknown variant %q", errInvalidSeed, variant)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// randInt64 returns a uniform value in [0, n). n must be positive.
func randInt64(n int64) (int64, error) {
	v, err := rand.Int(randomSource, big.NewInt(n))
	if err != nil {
		return 0, fmt.Errorf("random number: %w", err)
	}
	return v.Int64(), nil
}
