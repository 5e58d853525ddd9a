package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/xaled/okhash/internal/logger"
	"github.com/xaled/okhash/okhash"
)

// EnvPath names the environment variable holding a config file path.
const EnvPath = "OKHASH_CONFIG"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the defaults that flags fall back to.
type Config struct {
	DefaultK int    `toml:"default_k"`
	Jobs     int    `toml:"jobs"`
	LogLevel string `toml:"log_level"`
	Zero     bool   `toml:"zero"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultK: okhash.DefaultK,
		Jobs:     1,
		LogLevel: logger.DefaultLevel,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "okhash", "config.toml"), nil
}

// Load resolves, parses and validates the config file. It returns the
// config, the path it was read from, or "" when none was found.
func Load(path string) (Config, string, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return cfg, "", err
	}
	if resolved == "" {
		return cfg, "", nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		return cfg, "", fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, "", fmt.Errorf("parse config %s: %w", resolved, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, "", fmt.Errorf("%s: %w", resolved, err)
	}
	return cfg, resolved, nil
}

// resolvePath returns the config file to read, or "" when no file applies.
// Explicit paths must exist; the default location is optional.
func resolvePath(path string) (string, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvPath))
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("stat config: %w", err)
		}
		return path, nil
	}

	defaultPath, err := DefaultPath()
	if err != nil {
		return "", nil
	}
	info, err := os.Stat(defaultPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("stat config: %w", err)
	case info.IsDir():
		return "", nil
	}
	return defaultPath, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = logger.DefaultLevel
	}
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("%w: default_k must be at least 1, got %d", ErrInvalidConfig, c.DefaultK)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs cannot be negative, got %d", ErrInvalidConfig, c.Jobs)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Sample returns a commented config file holding the built-in defaults.
func Sample() (string, error) {
	data, err := toml.Marshal(Default())
	if err != nil {
		return "", err
	}
	return "# okhash configuration\n# jobs = 0 uses one worker per CPU.\n" + string(data), nil
}
