package cmd

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xaled/okhash/internal/config"
	"github.com/xaled/okhash/internal/logger"
	"github.com/xaled/okhash/util"
)

// exit is replaced in tests.
var exit = os.Exit

// env carries what a command needs once flags and config are resolved.
type env struct {
	cfg    config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *zap.SugaredLogger
	summer util.Summer
}

// addCommonFlags registers the flags every command shares.
func addCommonFlags(cmd *cobra.Command, persistent bool) {
	flags := cmd.Flags()
	if persistent {
		flags = cmd.PersistentFlags()
	}
	flags.String("config", "", "Path to a TOML config file (default $"+config.EnvPath+" or the user config dir)")
	flags.String("log-level", "", "Diagnostic log level: debug, info, warn or error")
}

// loadEnv loads the config file and builds the logger for cmd.
func loadEnv(cmd *cobra.Command) (*env, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, path, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		level = f.Value.String()
	}
	log, err := logger.New(cmd.Root().Name(), level, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Debugw("loaded config", "path", path)
	}

	stdin := cmd.InOrStdin()
	return &env{
		cfg:    cfg,
		stdin:  stdin,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
		log:    log,
		summer: util.Summer{Stdin: stdin},
	}, nil
}

// intFlag returns the named flag when it was set, else fallback.
func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return fallback
}

// describeError renders err for name the way coreutils does,
// e.g. "a.txt: No such file or directory".
func describeError(name string, err error) string {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, util.ErrExpectedFile):
		return name + ": Is a directory"
	case errors.As(err, &pathErr):
		msg := pathErr.Err.Error()
		if msg != "" {
			msg = strings.ToUpper(msg[:1]) + msg[1:]
		}
		return name + ": " + msg
	}
	return name + ": " + err.Error()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
