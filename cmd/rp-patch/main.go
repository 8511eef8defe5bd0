// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/toasterparty/randomprime-sub001/config"
	"github.com/toasterparty/randomprime-sub001/internal/logging"
	. "github.com/toasterparty/randomprime-sub001/internal/util/cmd"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
)

var cmdMain = &cobra.Command{
	Use:   "rp-patch",
	Short: "Inspect and patch game resources",
	Run:   printUsageAndExit1,
	PersistentPreRun: func(*cobra.Command, []string) {
		if Verbose {
			errors.EnableLocationTracking()
		}
	},
}

var flagMain struct {
	LogLevel  string
	LogFormat string
}

func init() {
	cmdMain.SetGlobalNormalizationFunc(normalizeFlag)
	cmdMain.PersistentFlags().StringVar(&flagMain.LogLevel, "log-level", config.DefaultLogLevels, "Log level, for example info or debug;scly=trace")
	cmdMain.PersistentFlags().StringVar(&flagMain.LogFormat, "log-format", logging.LogFormatPlain, "Log format (plain or json)")
	cmdMain.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Print call stacks with errors")
}

func main() {
	_ = cmdMain.Execute()
}

// normalizeFlag accepts --log_level for --log-level.
func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func printUsageAndExit1(cmd *cobra.Command, args []string) {
	_ = cmd.Usage()
	os.Exit(1)
}

// newLogger builds the logger from the command line flags, unless the patch
// file sets them and the flags were not given.
func newLogger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	level, format := flagMain.LogLevel, flagMain.LogFormat
	if cfg != nil && !cmd.Flags().Changed("log-level") && cfg.Log.Level != "" {
		level = cfg.Log.Level
	}
	if cfg != nil && !cmd.Flags().Changed("log-format") && cfg.Log.Format != "" {
		format = cfg.Log.Format
	}

	logger, err := logging.NewLogger(os.Stderr, format, level)
	Checkf(err, "logging")
	slog.SetDefault(logging.NewSlogger(logger))
	return logger
}

func contextForMainProcess() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
