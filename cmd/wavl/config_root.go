package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type baseConfiguration struct {
	// The wavl home directory
	HomeDir string
	// Configuration file URL. If it's relative, then it's relative from the HomeDir.
	CfgFile string
	// One of zerolog's level names.
	LogLevel string
	// console or json
	LogFormat string

	log zerolog.Logger
}

const (
	// The prefix for configuration keys inside environment.
	envPrefix = "WAVL"
	// The default name for config file.
	defaultConfigFile = "wavl.yaml"
	// the default wavl directory.
	defaultWavlDir = ".wavl"
	// The configuration key for home directory.
	keyHome = "home"
	// The configuration key for config file name.
	keyConfig = "config"

	flagNameLogLevel  = "log-level"
	flagNameLogFormat = "log-format"

	logFormatConsole = "console"
	logFormatJSON    = "json"
)

func (r *baseConfiguration) addConfigurationFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&r.HomeDir, keyHome, "", fmt.Sprintf("set the WAVL_HOME for this invocation (default is %s)", wavlHomeDir()))
	cmd.PersistentFlags().StringVar(&r.CfgFile, keyConfig, "", fmt.Sprintf("config file URL (default is $WAVL_HOME/%s)", defaultConfigFile))
	cmd.PersistentFlags().StringVar(&r.LogLevel, flagNameLogLevel, "info", "logging level, one of: trace, debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&r.LogFormat, flagNameLogFormat, logFormatConsole, "log format, one of: console, json")
}

func (r *baseConfiguration) initConfigFileLocation() {
	// Home dir comes from the flag, then from env, then the default.
	if r.HomeDir == "" {
		r.HomeDir = os.Getenv(envKey(keyHome))
		if r.HomeDir == "" {
			r.HomeDir = wavlHomeDir()
		}
	}
	if r.CfgFile == "" {
		r.CfgFile = os.Getenv(envKey(keyConfig))
		if r.CfgFile == "" {
			r.CfgFile = defaultConfigFile
		}
	}
	if !filepath.IsAbs(r.CfgFile) {
		r.CfgFile = filepath.Join(r.HomeDir, r.CfgFile)
	}
}

func (r *baseConfiguration) configFileExists() bool {
	_, err := os.Stat(r.CfgFile)
	return err == nil
}

/*
initLogger builds the logger from the log-level and log-format flags. Console output
goes through zerolog's ConsoleWriter, json output is written as is.
*/
func (r *baseConfiguration) initLogger(out io.Writer) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(r.LogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	switch strings.ToLower(r.LogFormat) {
	case logFormatConsole, "":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	case logFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", r.LogFormat)
	}
	r.log = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return nil
}

func envKey(key string) string {
	return strings.ToUpper(envPrefix + "_" + key)
}

func wavlHomeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		panic("default user home dir not defined: " + err.Error())
	}
	return filepath.Join(dir, defaultWavlDir)
}
