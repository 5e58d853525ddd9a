// Package config loads optional okhash defaults from a TOML file.
//
// The file is looked up in this order:
//   - the path given with --config
//   - the OKHASH_CONFIG environment variable
//   - $XDG_CONFIG_HOME/okhash/config.toml (or the platform equivalent)
//
// Only the first two are required to exist. Command-line flags always win
// over values from the file.
package config
