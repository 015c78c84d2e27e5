package main

import (
	"fmt"
	"path/filepath"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	homedir "github.com/mitchellh/go-homedir"
	flag "github.com/spf13/pflag"

	"github.com/availproject/avail-crawler/logs"
)

const (
	configFlag   = "config"
	logLevelFlag = "log.level"
)

// Flags gives the flag set shared by all commands.
func Flags() *flag.FlagSet {
	flags := &flag.FlagSet{}

	flags.String(
		configFlag,
		"",
		"Path to the TOML config file (default ~/.avail-crawler/config.toml)",
	)

	flags.String(
		logLevelFlag,
		"INFO",
		`DEBUG, INFO, WARN, ERROR, DPANIC, PANIC, FATAL
and their lower-case forms`,
	)

	return flags
}

// ParseFlags resolves the config path and applies the log level. It returns
// the path the config should be read from or written to.
func ParseFlags(flags *flag.FlagSet) (string, error) {
	level, err := flags.GetString(logLevelFlag)
	if err != nil {
		return "", err
	}
	lvl, err := logging.LevelFromString(strings.ToLower(level))
	if err != nil {
		return "", fmt.Errorf("while parsing '%s': %w", logLevelFlag, err)
	}
	logs.SetAllLoggers(lvl)

	path, err := flags.GetString(configFlag)
	if err != nil {
		return "", err
	}
	if path != "" {
		return homedir.Expand(path)
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".avail-crawler", "config.toml"), nil
}
