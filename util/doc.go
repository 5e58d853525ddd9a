// Package util provides the file-level plumbing around the okhash package.
//
// Key Components:
//
// File Hashing:
//   - FileSum hashes a file on disk, using its stat size
//   - ReaderSum hashes any reader, spooling unseekable input (pipes, stdin)
//     to a temporary file first
//   - Summer resolves "-" to standard input, the way checksum tools do
//   - SumFiles hashes many files with a bounded pool of workers and hands
//     results back in input order
//
// Directory Scanning:
//   - WalkFiles lists the regular files below a set of roots, skipping
//     symlinks and special files
//
// Sum Tables:
//   - SumTable and SumEntry record the sum, size and modification time of
//     scanned files
//   - Groups finds files whose sums compare equal
//   - Summarize reports file counts and how many bytes duplicates occupy
//
// Every computation opens its own file handle, so hashing different files
// concurrently is safe.
package util
