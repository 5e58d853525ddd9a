package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xaled/okhash/version"
)

// NewUtilCmd creates and returns the root command of okhash-util, which
// groups the tools built around O(K)Hash that do not fit the checksum-tool
// interface of okhash itself.
func NewUtilCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "okhash-util",
		Short: "okhash-util - tools for comparing files by O(K)Hash",
		Long: `okhash-util groups tools built on O(K)Hash fingerprints.

Use subcommands to perform different operations:
  - compare: Compare two files or two checksums level by level
  - dupes: Find files with matching checksums below a set of paths
  - seed: Generate random test files and modified variants of them
  - config: Print a sample configuration file
  - version: Show version information`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
	}
	addCommonFlags(rootCmd, true)

	groupComparison := "comparison"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupComparison,
		Title: "Comparison Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	compareCmd := NewCompareCmd()
	dupesCmd := NewDupesCmd()
	seedCmd := NewSeedCmd()
	configCmd := NewConfigCmd()
	versionCmd := NewVersionCmd()

	compareCmd.GroupID = groupComparison
	dupesCmd.GroupID = groupComparison
	seedCmd.GroupID = groupUtilities
	configCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(dupesCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
