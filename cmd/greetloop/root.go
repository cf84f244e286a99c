package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/greetloop"
	"github.com/hupe1980/greetloop/config"
	"github.com/hupe1980/greetloop/logging"
)

// errAlreadyReported signals a failure whose payload already went to stdout,
// so Execute only sets the exit code.
var errAlreadyReported = errors.New("already reported")

var (
	cfgPath   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "greetloop",
	Short: "Multi-language greeting agent with Phoenix tracing",
	Long: `greetloop drives a greeting conversation through a language model that must
delegate every greeting to a per-language capability, and ships the resulting
traces to a Phoenix collector. The projects and traces subcommands wrap the
Phoenix GraphQL API for trace maintenance.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errAlreadyReported) {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = greetloop.Version

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(greetCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(tracesCmd)
}

// loadConfig assembles the runtime configuration with the persistent flag
// overrides applied on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	return cfg, nil
}

func newLogger(cfg config.Config) (logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return logging.New(level, cfg.LogFormat), nil
}
