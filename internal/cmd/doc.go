// Package cmd provides the command-line interfaces of okhash and okhash-util.
//
// It uses the Cobra library for command structure and Fang for styled help and
// errors. NewRootCmd builds the okhash checksum tool, which follows the
// interface of sha256sum: it prints one checksum line per input, and with
// --check it verifies the lines of checksum files.
//
// NewUtilCmd builds okhash-util, which groups the following commands:
//   - compare: level by level comparison of two files or checksums
//   - dupes: duplicate detection below a set of paths
//   - seed: random test files and modified variants of them
//   - config: sample configuration file
//   - version: version information
//
// Each command is implemented in a separate file with its own constructor
// function that returns a *cobra.Command. Hashing is done by the util
// package, checksum line handling by the checksum package.
package cmd
