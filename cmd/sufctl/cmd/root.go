package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	sufErrors "github.com/sufgraph/suf/pkg/errors"
	"github.com/sufgraph/suf/pkg/telemetry"
	"github.com/sufgraph/suf/pkg/utils"

	"github.com/sufgraph/suf/pkg/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger utils.Logger
	cfg    *config.Config

	telemetryShutdown telemetry.ShutdownFunc = func(context.Context) error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "sufctl",
	Short: "Drive a slotted union-find / e-graph instance",
	Long: `sufctl runs scripts against an in-process slotted union-find
and minimal e-graph, and persists named snapshots of the resulting
class table to a database-backed store.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		if err := cfg.EnsureDataDir(); err != nil {
			return err
		}

		shutdown, err := telemetry.InitForCommand(context.Background(), cmd.Name())
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		telemetryShutdown = shutdown

		return nil
	},
}

// Execute adds all child commands to the root command and runs it. A
// panicking pkg/errors.Contract — raised by internal/suf or
// internal/slot when a programming invariant is broken — is recovered
// here, logged at LevelFatal, and turned into a non-zero exit instead
// of a bare stack trace.
func Execute() {
	defer func() {
		_ = telemetryShutdown(context.Background())

		if r := recover(); r != nil {
			var contract sufErrors.Contract
			if err, ok := r.(error); ok && errors.As(err, &contract) {
				if logger != nil {
					logger.LogErr(err)
				} else {
					fmt.Fprintln(os.Stderr, err)
				}
				os.Exit(1)
			}
			panic(r)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: search ., ./configs and /etc/sufctl for config.yaml)")

	binName := BinName()
	rootCmd.Example = `  # Run a script against a fresh e-graph
  ` + binName + ` run -f ./examples/union.suf

  # Save a snapshot after running a script
  ` + binName + ` run -f ./examples/union.suf --snapshot run-1

  # List and inspect saved snapshots
  ` + binName + ` snapshot list
  ` + binName + ` snapshot show run-1`
}

// GetLogger returns the logger configured by the root command.
func GetLogger() utils.Logger {
	return logger
}

// GetConfig returns the configuration loaded by the root command.
func GetConfig() *config.Config {
	return cfg
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
