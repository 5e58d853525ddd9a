// Package version provides version information and build metadata for okhash.
//
// Version information comes from, in order of preference:
//   - Compile-time variables (Version, Commit, Date) set via -ldflags
//   - Runtime build info from debug.ReadBuildInfo()
//   - Fallback defaults for development builds
//
// Release builds set them with:
//
//	-ldflags "-X github.com/xaled/okhash/version.Version=v1.0.0 -X github.com/xaled/okhash/version.Commit=abc123 -X github.com/xaled/okhash/version.Date=2024-01-01T00:00:00Z"
//
// Both okhash and okhash-util report the same information.
package version
