// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

// Package main is the entry point for the gramtest CLI, a test harness for
// Giella/Divvun grammar checkers.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/giellalt/gramtest/internal/harness"
	"github.com/giellalt/gramtest/internal/testfile"
)

// version is set at build time via ldflags.
var version = "dev"

// Exit codes. Hard errors (99) halt an enclosing build pipeline instead of
// counting as ordinary test failures.
const (
	exitOK          = 0
	exitTestsFailed = 1
	exitHardError   = 99
	exitInterrupted = 130
)

// errTestsFailed marks a completed run where at least one sentence failed.
var errTestsFailed = errors.New("tests failed")

// errHardExit marks configuration problems detected by the CLI itself,
// such as duplicate test sentences that were just rewritten away.
var errHardExit = errors.New("hard configuration error")

// logger is built once verbosity is known; nop unless --verbose.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "gramtest",
	Short: "Test harness for Giella/Divvun grammar checkers",
	Long: `gramtest runs error-annotated test sentences through external grammar
checking engines and scores the reported errors against the manual markup.

Test sentences come from YAML test files or from error-annotated corpus
files. Results are classified into true/false positives and negatives and
summarized as precision, recall and F1.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			log, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			logger = log
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gramtest.yaml or ~/.config/gramtest/config.yaml)")
	rootCmd.PersistentFlags().Bool("colour", false, "colour the report output")
	rootCmd.PersistentFlags().StringP("output", "o", "normal", "report style: normal, compact, terse, final or silent")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable diagnostic logging")

	viper.BindPFlag("colour", rootCmd.PersistentFlags().Lookup("colour"))   //nolint:errcheck // flag exists
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))   //nolint:errcheck // flag exists
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gramtest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gramtest"))
		}
	}

	viper.SetEnvPrefix("GRAMTEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// exitCode maps run errors to the harness exit-code contract.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, errTestsFailed) {
		return exitTestsFailed
	}
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}

	var structureErr *testfile.StructureError
	var alteredErr *harness.AlteredTextError
	if errors.As(err, &structureErr) || errors.As(err, &alteredErr) || errors.Is(err, errHardExit) {
		return exitHardError
	}
	return exitTestsFailed
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errTestsFailed) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCode(err))
}
