package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xaled/okhash/internal/config"
)

// NewConfigCmd creates and returns the config subcommand for okhash-util.
func NewConfigCmd() *cobra.Command {
	var write string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print a sample configuration file",
		Long: `Print a sample configuration file holding the built-in defaults.

okhash and okhash-util read their config from --config, else $` + config.EnvPath + `,
else config.toml in the okhash directory under the user config dir. Flags
always take precedence over the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, write)
		},
	}

	cmd.Flags().StringVarP(&write, "write", "w", "", "Write the sample to this path instead of stdout")

	return cmd
}

func runConfig(cmd *cobra.Command, write string) error {
	sample, err := config.Sample()
	if err != nil {
		return err
	}
	if write == "" {
		if path, err := config.DefaultPath(); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "# default location: %s\n", path)
		}
		fmt.Fprint(cmd.OutOrStdout(), sample)
		return nil
	}
	if _, err := os.Stat(write); err == nil {
		return fmt.Errorf("%s: %w", write, os.ErrExist)
	}
	if err := os.WriteFile(write, []byte(sample), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", write)
	return nil
}
